package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// CajaGateway covers the cash-register lifecycle: open-session lookup,
// opening, the closing summary and the close itself.
type CajaGateway interface {
	// Abierta returns (nil, nil) when the operator has no open register.
	Abierta(ctx context.Context, operadorID string) (*model.Caja, error)
	Abrir(ctx context.Context, operadorID string, montoApertura decimal.Decimal) (*model.Caja, error)
	ResumenCierre(ctx context.Context, cajaID int64) (*model.CierreCaja, error)
	Cerrar(ctx context.Context, cajaID int64, montoCierre decimal.Decimal, operadorID string) error
}

type cajaGateway struct{ db *gorm.DB }

func NewCajaGateway(db *gorm.DB) CajaGateway { return &cajaGateway{db: db} }

func (g *cajaGateway) Abierta(ctx context.Context, operadorID string) (*model.Caja, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT obtener_caja_abierta(?)", operadorID)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	caja := &model.Caja{}
	if err := json.Unmarshal(raw, caja); err != nil {
		return nil, fmt.Errorf("obtener_caja_abierta: respuesta ilegible: %w", err)
	}
	return caja, nil
}

func (g *cajaGateway) Abrir(ctx context.Context, operadorID string, montoApertura decimal.Decimal) (*model.Caja, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT registrar_apertura_caja(?, ?)", operadorID, montoApertura)
	if err != nil {
		return nil, fmt.Errorf("registrar_apertura_caja: %w", err)
	}
	caja := &model.Caja{}
	if err := json.Unmarshal(raw, caja); err != nil {
		return nil, fmt.Errorf("registrar_apertura_caja: respuesta ilegible: %w", err)
	}
	return caja, nil
}

// ResumenCierre asks the backend for the shift reconciliation grouped by
// origen, tipo de consumidor, estado and metodo de pago. The terminal never
// recomputes these buckets from raw sale rows.
func (g *cajaGateway) ResumenCierre(ctx context.Context, cajaID int64) (*model.CierreCaja, error) {
	raw, err := jsonRow(ctx, g.db, "SELECT resumen_cierre_caja(?)", cajaID)
	if err != nil {
		return nil, fmt.Errorf("resumen_cierre_caja: %w", err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("resumen_cierre_caja: la caja %d no existe", cajaID)
	}
	resumen := &model.CierreCaja{}
	if err := json.Unmarshal(raw, resumen); err != nil {
		return nil, fmt.Errorf("resumen_cierre_caja: respuesta ilegible: %w", err)
	}
	return resumen, nil
}

func (g *cajaGateway) Cerrar(ctx context.Context, cajaID int64, montoCierre decimal.Decimal, operadorID string) error {
	var ok bool
	row := g.db.WithContext(ctx).Raw(
		"SELECT registrar_cierre_caja(?, ?, ?)", cajaID, montoCierre, operadorID,
	).Row()
	if err := row.Scan(&ok); err != nil {
		return fmt.Errorf("registrar_cierre_caja: %w", err)
	}
	if !ok {
		return fmt.Errorf("registrar_cierre_caja: la caja %d ya estaba cerrada", cajaID)
	}
	return nil
}
