package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// FiltroInventario narrows the advanced inventory search.
// StockFilter: "all" | "in-stock" | "low-stock" | "out-of-stock".
type FiltroInventario struct {
	Term         string
	StockFilter  string
	Categoria    *string
	Subcategoria *string
	Rubro        *string
	Temporada    *string
}

// CambiosInventario carries the editable fields of one inventory row. Nil
// means "leave untouched".
type CambiosInventario struct {
	Stock  *int
	Precio *decimal.Decimal
	Link   *string
}

// InventarioGateway covers the advanced inventory search, its filter options
// and the direct row upsert (the one non-procedure write the backend allows).
type InventarioGateway interface {
	Buscar(ctx context.Context, f FiltroInventario) ([]model.InventarioItem, error)
	OpcionesFiltros(ctx context.Context) (*model.OpcionesFiltros, error)
	ActualizarItem(ctx context.Context, id int64, cambios CambiosInventario, operadorID string) error
}

type inventarioGateway struct{ db *gorm.DB }

func NewInventarioGateway(db *gorm.DB) InventarioGateway { return &inventarioGateway{db: db} }

func (g *inventarioGateway) Buscar(ctx context.Context, f FiltroInventario) ([]model.InventarioItem, error) {
	if f.StockFilter == "" {
		f.StockFilter = "all"
	}
	var items []model.InventarioItem
	err := jsonList(ctx, g.db, &items,
		"SELECT COALESCE(jsonb_agg(i), '[]'::jsonb) FROM buscar_inventario_avanzado(?, ?, ?, ?, ?, ?) i",
		f.Term, f.StockFilter, f.Categoria, f.Subcategoria, f.Rubro, f.Temporada)
	return items, err
}

func (g *inventarioGateway) OpcionesFiltros(ctx context.Context) (*model.OpcionesFiltros, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT obtener_opciones_filtros()")
	if err != nil {
		return nil, err
	}
	opciones := &model.OpcionesFiltros{}
	if len(raw) == 0 {
		return opciones, nil
	}
	if err := json.Unmarshal(raw, opciones); err != nil {
		return nil, fmt.Errorf("obtener_opciones_filtros: respuesta ilegible: %w", err)
	}
	return opciones, nil
}

// ActualizarItem updates stock/precio/link in place on the inventario table.
func (g *inventarioGateway) ActualizarItem(ctx context.Context, id int64, cambios CambiosInventario, operadorID string) error {
	valores := map[string]interface{}{
		"updated_at": time.Now().UTC(),
		"updated_by": operadorID,
	}
	if cambios.Stock != nil {
		valores["stock"] = *cambios.Stock
	}
	if cambios.Precio != nil {
		valores["precio"] = *cambios.Precio
	}
	if cambios.Link != nil {
		valores["link"] = *cambios.Link
	}

	res := g.db.WithContext(ctx).Table("inventario").Where("id = ?", id).Updates(valores)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("inventario: fila %d inexistente", id)
	}
	return nil
}
