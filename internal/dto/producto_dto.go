package dto

import (
	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarProductoRequest mirrors the registrar_producto parameter set.
// Caracteristicas are the typed attributes; they are validated before the
// request leaves the terminal.
type RegistrarProductoRequest struct {
	NombrePrincipal    string                `json:"nombre_principal"     validate:"required,min=2,max=150"`
	ProveedorID        *int64                `json:"proveedor_id"         validate:"omitempty,min=1"`
	Caracteristicas    model.Caracteristicas `json:"caracteristicas"`
	NombreProveedor    string                `json:"nombre_proveedor"     validate:"omitempty,max=150"`
	NombreML           string                `json:"nombre_ml"            validate:"omitempty,max=150"`
	NombreExportador   string                `json:"nombre_exportador"    validate:"omitempty,max=150"`
	Garantia           bool                  `json:"garantia"`
	UnidadesPorPaquete int                   `json:"unidades_por_paquete" validate:"omitempty,min=1"`
	PaquetesPorCaja    int                   `json:"paquetes_por_caja"    validate:"omitempty,min=1"`
	CajasPorPallet     int                   `json:"cajas_por_pallet"     validate:"omitempty,min=1"`
	FotoURL            string                `json:"foto_url"             validate:"omitempty,url"`
	Rubro              string                `json:"rubro"                validate:"required"`
	Categoria          string                `json:"categoria"            validate:"required"`
	Subcategoria       string                `json:"subcategoria"         validate:"omitempty"`
	Perecedero         bool                  `json:"perecedero"`
	TiempoVencimiento  int                   `json:"tiempo_vencimiento"   validate:"omitempty,min=0"`
	TemporadaVenta     string                `json:"temporada_venta"      validate:"omitempty"`
	CodigoBarras       string                `json:"codigo_barras"        validate:"required,min=8,max=14"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistrarProductoResponse struct {
	ID int64 `json:"id"`
}

// PrecioResponse is the public price-check answer keyed by barcode.
type PrecioResponse struct {
	SKU    string          `json:"sku"`
	Nombre string          `json:"nombre"`
	Precio decimal.Decimal `json:"precio"`
}
