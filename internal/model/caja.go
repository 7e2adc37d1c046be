package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Caja is an open cash-register session for one operator's shift. The backend
// enforces at most one open session per operator; the terminal treats "none
// found" as the precondition failure that gates the sale flow.
type Caja struct {
	ID            int64           `json:"id"`
	OperadorID    string          `json:"operador_id"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	AbiertaEn     time.Time       `json:"abierta_en"`
}

// DesgloseEntrada is one bucket of a closing breakdown.
type DesgloseEntrada struct {
	Cantidad int             `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// Desglose groups sale/payment amounts by an enum key (origen, tipo de
// consumidor, estado, metodo de pago).
type Desglose map[string]DesgloseEntrada

// CierreCaja is the server-computed reconciliation summary for a shift.
type CierreCaja struct {
	Inicio           time.Time       `json:"inicio"`
	Fin              time.Time       `json:"fin"`
	MontoApertura    decimal.Decimal `json:"monto_apertura"`
	VentasOrigen     Desglose        `json:"ventas_origen"`
	VentasConsumidor Desglose        `json:"ventas_consumidor"`
	VentasEstado     Desglose        `json:"ventas_estado"`
	PagosMetodo      Desglose        `json:"pagos_metodo"`
}

// CajaFinal is the expected cash in the drawer at close: the opening float
// plus every payment settled in efectivo during the shift.
func (c *CierreCaja) CajaFinal() decimal.Decimal {
	return c.MontoApertura.Add(c.PagosMetodo["efectivo"].Monto)
}
