package service

import (
	"context"

	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

type ProductoService interface {
	Buscar(ctx context.Context, term string) ([]model.Producto, error)
	// PrecioPorBarcode returns (nil, nil) when the barcode is unknown.
	PrecioPorBarcode(ctx context.Context, barcode string) (*dto.PrecioResponse, error)
	Registrar(ctx context.Context, req dto.RegistrarProductoRequest, operadorID string) (int64, error)
}

type productoService struct {
	productos gateway.ProductoGateway
}

func NewProductoService(productos gateway.ProductoGateway) ProductoService {
	return &productoService{productos: productos}
}

func (s *productoService) Buscar(ctx context.Context, term string) ([]model.Producto, error) {
	return s.productos.Buscar(ctx, term)
}

func (s *productoService) PrecioPorBarcode(ctx context.Context, barcode string) (*dto.PrecioResponse, error) {
	producto, err := s.productos.BuscarPorBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return &dto.PrecioResponse{
		SKU:    producto.SKU,
		Nombre: producto.Nombre,
		Precio: producto.Precio,
	}, nil
}

func (s *productoService) Registrar(ctx context.Context, req dto.RegistrarProductoRequest, operadorID string) (int64, error) {
	// Typed characteristics are validated before anything leaves the terminal.
	if err := req.Caracteristicas.Validar(); err != nil {
		return 0, err
	}
	return s.productos.Registrar(ctx, model.ProductoRegistro{
		NombrePrincipal:    req.NombrePrincipal,
		ProveedorID:        req.ProveedorID,
		Caracteristicas:    req.Caracteristicas,
		NombreProveedor:    req.NombreProveedor,
		NombreML:           req.NombreML,
		NombreExportador:   req.NombreExportador,
		Garantia:           req.Garantia,
		UnidadesPorPaquete: req.UnidadesPorPaquete,
		PaquetesPorCaja:    req.PaquetesPorCaja,
		CajasPorPallet:     req.CajasPorPallet,
		FotoURL:            req.FotoURL,
		Rubro:              req.Rubro,
		Categoria:          req.Categoria,
		Subcategoria:       req.Subcategoria,
		Perecedero:         req.Perecedero,
		TiempoVencimiento:  req.TiempoVencimiento,
		TemporadaVenta:     req.TemporadaVenta,
		CodigoBarras:       req.CodigoBarras,
	}, operadorID)
}
