package dto

import (
	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AgregarItemRequest adds units of a product to the session cart. The product
// is resolved by barcode through the backend so the cart always carries the
// authoritative price.
type AgregarItemRequest struct {
	CodigoBarras string `json:"codigo_barras" validate:"required"`
	// Cantidad defaults to 1 when omitted.
	Cantidad int `json:"cantidad" validate:"omitempty,min=1"`
}

// ActualizarItemRequest edits one cart line. Precio is honored only when the
// product allows price override.
type ActualizarItemRequest struct {
	Cantidad *int             `json:"cantidad" validate:"omitempty,min=1"`
	Precio   *decimal.Decimal `json:"precio"`
}

// ActualizarSesionRequest edits the sale classification. Absent fields keep
// their current value.
type ActualizarSesionRequest struct {
	Origen        *string          `json:"origen"        validate:"omitempty,oneof=Puerta Web Redes Mercado_libre"`
	Consumidor    *string          `json:"consumidor"    validate:"omitempty,oneof=minorista mayorista consumidor_final monotributo"`
	TipoIVA       *string          `json:"tipo_iva"      validate:"omitempty,oneof=sin_iva media_iva iva"`
	Observaciones *string          `json:"observaciones" validate:"omitempty,max=500"`
	Descuento     *decimal.Decimal `json:"descuento"`
}

// AsignarClienteRequest attaches a customer looked up by document number.
type AsignarClienteRequest struct {
	Documento string `json:"documento" validate:"required,min=6,max=13"`
}

type AlternarPagoRequest struct {
	Metodo string `json:"metodo" validate:"required,oneof=efectivo tarjeta transferencia"`
}

type FijarPagoRequest struct {
	Metodo string          `json:"metodo" validate:"required,oneof=efectivo tarjeta transferencia"`
	Monto  decimal.Decimal `json:"monto"`
}

// GuardarSesionRequest commits the session. Sessions loaded from a budget
// ignore Estado and go through the conversion path.
type GuardarSesionRequest struct {
	Estado string `json:"estado" validate:"required,oneof=entregado presupuesto consigna"`
	// ClienteEmail: optional — when present, the comprobante worker mails the PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type CargarPresupuestoRequest struct {
	PresupuestoID int64 `json:"presupuesto_id" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemSesionResponse struct {
	SKU          string          `json:"sku"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	Editable     bool            `json:"editable"`
	Cantidad     int             `json:"cantidad"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type PagosResponse struct {
	Activos     []string                   `json:"activos"`
	Montos      map[string]decimal.Decimal `json:"montos"`
	TotalPagado decimal.Decimal            `json:"total_pagado"`
	Restante    decimal.Decimal            `json:"restante"`
	Vuelto      decimal.Decimal            `json:"vuelto"`
}

type TotalesResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Impuesto decimal.Decimal `json:"impuesto"`
	Total    decimal.Decimal `json:"total"`
}

type SesionResponse struct {
	ID            string               `json:"id"`
	Fase          string               `json:"fase"`
	Origen        string               `json:"origen"`
	Consumidor    string               `json:"consumidor"`
	TipoIVA       string               `json:"tipo_iva"`
	Observaciones string               `json:"observaciones"`
	Descuento     decimal.Decimal      `json:"descuento"`
	Cliente       *model.Cliente       `json:"cliente,omitempty"`
	Items         []ItemSesionResponse `json:"items"`
	Totales       TotalesResponse      `json:"totales"`
	Pagos         PagosResponse        `json:"pagos"`
	PresupuestoID *int64               `json:"presupuesto_id,omitempty"`
	Reinicios     int                  `json:"reinicios"`
}

type GuardarSesionResponse struct {
	VentaID    int64  `json:"venta_id,omitempty"`
	Convertida bool   `json:"convertida"`
	Estado     string `json:"estado"`
}
