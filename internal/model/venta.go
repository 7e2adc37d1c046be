package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVenta is one line item as the registrar_venta procedure expects it.
type DetalleVenta struct {
	SKU            string          `json:"sku"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// PagoVenta is one settled payment as the backend expects it.
type PagoVenta struct {
	Metodo string          `json:"metodo"`
	Monto  decimal.Decimal `json:"monto"`
}

// RegistrarVentaParams mirrors the parameter list of the registrar_venta
// procedure, the single entry point for persisting entregado, presupuesto
// and consigna records.
type RegistrarVentaParams struct {
	ClienteID      int64
	Origen         string
	TipoConsumidor string
	TipoIVA        string
	Observaciones  string
	Detalles       []DetalleVenta
	Pagos          []PagoVenta
	OperadorID     string
}

// DetallePresupuesto is a line of a stored budget, enriched with the product
// name and barcode so the terminal can rebuild a cart from it.
type DetallePresupuesto struct {
	SKU            string          `json:"sku"`
	Nombre         string          `json:"nombre"`
	CodigoBarras   string          `json:"codigo_barras"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// Presupuesto is a sale record with estado "presupuesto", as returned by the
// budget search. Loading one into a session enables the conversion path.
type Presupuesto struct {
	ID             int64                `json:"id"`
	ClienteID      int64                `json:"cliente_id"`
	ClienteNombre  string               `json:"cliente_nombre"`
	ClienteApellido string              `json:"cliente_apellido"`
	Origen         string               `json:"origen"`
	TipoConsumidor string               `json:"tipo_consumidor"`
	Estado         string               `json:"estado"`
	Total          decimal.Decimal      `json:"total"`
	Observaciones  string               `json:"observaciones"`
	TipoIVA        string               `json:"tipo_iva"`
	CreatedAt      time.Time            `json:"created_at"`
	Detalles       []DetallePresupuesto `json:"detalles"`
	Pagos          []PagoVenta          `json:"pagos,omitempty"`
}

// BorradorItem is a cart line frozen inside a draft.
type BorradorItem struct {
	SKU          string          `json:"sku"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Editable     bool            `json:"editable"`
	Cantidad     int             `json:"cantidad"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Borrador is a serializable snapshot of an in-progress sale. Drafts are a
// terminal-local convenience: they live in local durable storage, never in
// the backend.
type Borrador struct {
	ID            string         `json:"id"`
	Items         []BorradorItem `json:"items"`
	Cliente       *Cliente       `json:"cliente,omitempty"`
	Pagos         []PagoVenta    `json:"pagos"`
	Origen        string         `json:"origen"`
	Consumidor    string         `json:"consumidor"`
	Observaciones string         `json:"observaciones"`
	TipoIVA       string         `json:"tipo_iva"`
	GuardadoEn    time.Time      `json:"guardado_en"`
}
