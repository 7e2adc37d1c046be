package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaComprobante is one printed line of a receipt or quote.
type LineaComprobante struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// Comprobante is a self-contained snapshot of a registered sale or budget,
// captured at save time so the renderer never has to query the backend.
type Comprobante struct {
	VentaID   int64              `json:"venta_id"`
	Estado    string             `json:"estado"` // entregado | presupuesto | consigna
	Fecha     time.Time          `json:"fecha"`
	Operador  string             `json:"operador"`
	Cliente   string             `json:"cliente"`
	Lineas    []LineaComprobante `json:"lineas"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Descuento decimal.Decimal    `json:"descuento"`
	Impuesto  decimal.Decimal    `json:"impuesto"`
	Total     decimal.Decimal    `json:"total"`
	Pagos     []PagoVenta        `json:"pagos"`
	Vuelto    decimal.Decimal    `json:"vuelto"`
}
