package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarClienteRequest creates a customer. Natural customers carry
// nombre/apellido + DNI; juridicos carry razon social + CUIT.
type RegistrarClienteRequest struct {
	Tipo        string `json:"tipo"         validate:"required,oneof=natural juridico"`
	Nombre      string `json:"nombre"       validate:"required_if=Tipo natural,omitempty,min=2,max=100"`
	Apellido    string `json:"apellido"     validate:"required_if=Tipo natural,omitempty,min=2,max=100"`
	RazonSocial string `json:"razon_social" validate:"required_if=Tipo juridico,omitempty,min=2,max=150"`
	Documento   string `json:"documento"    validate:"required,min=6,max=13"`
	Telefono    string `json:"telefono"     validate:"omitempty,max=30"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Direccion   string `json:"direccion"    validate:"omitempty,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistrarClienteResponse struct {
	ID int64 `json:"id"`
}
