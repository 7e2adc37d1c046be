package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SugerenciaRequest is an operator feedback note. Contexto carries whatever
// screen state the terminal wants attached (vista, sesion id, filters).
type SugerenciaRequest struct {
	Nota     string            `json:"nota"     validate:"required,min=3,max=1000"`
	Contexto map[string]string `json:"contexto" validate:"omitempty,max=20"`
}

type SugerenciaResponse struct {
	ID int64 `json:"id"`
}
