package service

import (
	"context"
	"errors"

	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

var ErrSinCambios = errors.New("no hay cambios para aplicar")

type InventarioService interface {
	Buscar(ctx context.Context, filter dto.InventarioFilter) ([]model.InventarioItem, error)
	OpcionesFiltros(ctx context.Context) (*model.OpcionesFiltros, error)
	ActualizarItem(ctx context.Context, id int64, req dto.ActualizarInventarioRequest, operadorID string) error
}

type inventarioService struct {
	inventario gateway.InventarioGateway
}

func NewInventarioService(inventario gateway.InventarioGateway) InventarioService {
	return &inventarioService{inventario: inventario}
}

func (s *inventarioService) Buscar(ctx context.Context, filter dto.InventarioFilter) ([]model.InventarioItem, error) {
	return s.inventario.Buscar(ctx, gateway.FiltroInventario{
		Term:         filter.Term,
		StockFilter:  filter.Stock,
		Categoria:    filter.Categoria,
		Subcategoria: filter.Subcategoria,
		Rubro:        filter.Rubro,
		Temporada:    filter.Temporada,
	})
}

func (s *inventarioService) OpcionesFiltros(ctx context.Context) (*model.OpcionesFiltros, error) {
	return s.inventario.OpcionesFiltros(ctx)
}

func (s *inventarioService) ActualizarItem(ctx context.Context, id int64, req dto.ActualizarInventarioRequest, operadorID string) error {
	if req.Stock == nil && req.Precio == nil && req.Link == nil {
		return ErrSinCambios
	}
	if req.Precio != nil && req.Precio.IsNegative() {
		return errors.New("el precio no puede ser negativo")
	}
	return s.inventario.ActualizarItem(ctx, id, gateway.CambiosInventario{
		Stock:  req.Stock,
		Precio: req.Precio,
		Link:   req.Link,
	}, operadorID)
}
