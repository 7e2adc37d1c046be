package dto

import (
	"github.com/shopspring/decimal"

	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"required"`
}

// CerrarCajaRequest closes the shift. Codigo must match the configured close
// secret; MontoCierre defaults to the opening float when absent.
type CerrarCajaRequest struct {
	Codigo      string           `json:"codigo" validate:"required"`
	MontoCierre *decimal.Decimal `json:"monto_cierre"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID            int64           `json:"id"`
	OperadorID    string          `json:"operador_id"`
	MontoApertura decimal.Decimal `json:"monto_apertura"`
	AbiertaEn     string          `json:"abierta_en"`
}

// ResumenCierreResponse is the pre-close reconciliation screen: the backend's
// grouped totals plus the expected drawer cash.
type ResumenCierreResponse struct {
	Caja      CajaResponse     `json:"caja"`
	Resumen   model.CierreCaja `json:"resumen"`
	CajaFinal decimal.Decimal  `json:"caja_final"`
}
