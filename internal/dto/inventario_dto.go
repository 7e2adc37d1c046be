package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// InventarioFilter is bound from the query string of GET /v1/inventario.
type InventarioFilter struct {
	Term         string  `form:"term"`
	Stock        string  `form:"stock,default=all" validate:"oneof=all in-stock low-stock out-of-stock"`
	Rubro        *string `form:"rubro"`
	Categoria    *string `form:"categoria"`
	Subcategoria *string `form:"subcategoria"`
	Temporada    *string `form:"temporada"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ActualizarInventarioRequest patches one inventory row. At least one field
// must be present; absent fields are left untouched.
type ActualizarInventarioRequest struct {
	Stock  *int             `json:"stock"  validate:"omitempty,min=0"`
	Precio *decimal.Decimal `json:"precio"`
	Link   *string          `json:"link"   validate:"omitempty,url"`
}
