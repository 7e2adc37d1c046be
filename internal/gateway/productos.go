package gateway

import (
	"context"

	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ProductoGateway covers product search and registration.
type ProductoGateway interface {
	Buscar(ctx context.Context, term string) ([]model.Producto, error)
	BuscarPorBarcode(ctx context.Context, barcode string) (*model.Producto, error)
	Registrar(ctx context.Context, reg model.ProductoRegistro, operadorID string) (int64, error)
}

type productoGateway struct{ db *gorm.DB }

func NewProductoGateway(db *gorm.DB) ProductoGateway { return &productoGateway{db: db} }

func (g *productoGateway) Buscar(ctx context.Context, term string) ([]model.Producto, error) {
	var productos []model.Producto
	err := jsonList(ctx, g.db, &productos,
		"SELECT COALESCE(jsonb_agg(p), '[]'::jsonb) FROM buscar_productos(?) p", term)
	return productos, err
}

// BuscarPorBarcode serves the public price check. Not-found is a normal
// branch: (nil, nil).
func (g *productoGateway) BuscarPorBarcode(ctx context.Context, barcode string) (*model.Producto, error) {
	productos, err := g.Buscar(ctx, barcode)
	if err != nil {
		return nil, err
	}
	for i := range productos {
		if productos[i].CodigoBarras == barcode {
			return &productos[i], nil
		}
	}
	return nil, nil
}

func (g *productoGateway) Registrar(ctx context.Context, reg model.ProductoRegistro, operadorID string) (int64, error) {
	caracteristicas, err := reg.Caracteristicas.JSONB()
	if err != nil {
		return 0, err
	}
	var id int64
	row := g.db.WithContext(ctx).Raw(
		`SELECT registrar_producto(?, ?, ?::jsonb, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.NombrePrincipal, reg.ProveedorID, caracteristicas,
		reg.NombreProveedor, reg.NombreML, reg.NombreExportador,
		reg.Garantia, reg.UnidadesPorPaquete, reg.PaquetesPorCaja, reg.CajasPorPallet,
		reg.FotoURL, reg.Rubro, reg.Categoria, reg.Subcategoria,
		reg.Perecedero, reg.TiempoVencimiento, reg.TemporadaVenta, reg.CodigoBarras,
		operadorID,
	).Row()
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
