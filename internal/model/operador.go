package model

// Operador stores a terminal operator with role-based access.
// Rol: "cajero" | "supervisor" | "administrador"
type Operador struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Nombre       string `json:"nombre"`
	Rol          string `json:"rol"`
	PasswordHash string `json:"-"`
	Activo       bool   `json:"activo"`
}

// Sugerencia is an operator feedback note with the screen context it was
// raised from.
type Sugerencia struct {
	OperadorID string            `json:"operador_id"`
	Contexto   map[string]string `json:"contexto"`
	Nota       string            `json:"nota"`
}
