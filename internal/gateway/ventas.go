package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// VentaGateway covers sale registration, budget search and budget conversion.
type VentaGateway interface {
	Registrar(ctx context.Context, p model.RegistrarVentaParams) (int64, error)
	BuscarPresupuestos(ctx context.Context, term string) ([]model.Presupuesto, error)
	ConvertirPresupuesto(ctx context.Context, presupuestoID int64, pagos []model.PagoVenta) error
}

type ventaGateway struct{ db *gorm.DB }

func NewVentaGateway(db *gorm.DB) VentaGateway { return &ventaGateway{db: db} }

// Registrar persists a sale/budget/consignment record and returns the
// generated id. The backend owns numbering, stock movement and auditing.
func (g *ventaGateway) Registrar(ctx context.Context, p model.RegistrarVentaParams) (int64, error) {
	detalles, err := json.Marshal(p.Detalles)
	if err != nil {
		return 0, err
	}
	pagos, err := json.Marshal(p.Pagos)
	if err != nil {
		return 0, err
	}

	var id int64
	row := g.db.WithContext(ctx).Raw(
		"SELECT registrar_venta(?, ?, ?, ?, ?, ?::jsonb, ?::jsonb, ?)",
		p.ClienteID, p.Origen, p.TipoConsumidor, p.TipoIVA, p.Observaciones,
		detalles, pagos, p.OperadorID,
	).Row()
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("registrar_venta: %w", err)
	}
	return id, nil
}

func (g *ventaGateway) BuscarPresupuestos(ctx context.Context, term string) ([]model.Presupuesto, error) {
	var presupuestos []model.Presupuesto
	err := jsonList(ctx, g.db, &presupuestos,
		"SELECT COALESCE(jsonb_agg(p), '[]'::jsonb) FROM buscar_presupuestos(?) p", term)
	return presupuestos, err
}

// ConvertirPresupuesto settles an existing budget record as a sale. The
// backend updates the record in place — no new sale id is generated.
func (g *ventaGateway) ConvertirPresupuesto(ctx context.Context, presupuestoID int64, pagos []model.PagoVenta) error {
	data, err := json.Marshal(pagos)
	if err != nil {
		return err
	}
	var ok bool
	row := g.db.WithContext(ctx).Raw(
		"SELECT convertir_presupuesto(?, ?::jsonb)", presupuestoID, data,
	).Row()
	if err := row.Scan(&ok); err != nil {
		return fmt.Errorf("convertir_presupuesto: %w", err)
	}
	if !ok {
		return fmt.Errorf("convertir_presupuesto: el presupuesto %d no pudo convertirse", presupuestoID)
	}
	return nil
}
