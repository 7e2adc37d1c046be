package model

// TipoCliente: "natural" (persona fisica, DNI) | "juridico" (razon social, CUIT)
type TipoCliente string

const (
	ClienteNatural  TipoCliente = "natural"
	ClienteJuridico TipoCliente = "juridico"
)

// Cliente is a customer record as returned by the document lookup.
type Cliente struct {
	ID          int64       `json:"id"`
	Tipo        TipoCliente `json:"tipo"`
	Nombre      string      `json:"nombre"`
	Apellido    string      `json:"apellido"`
	RazonSocial string      `json:"razon_social"`
	Documento   string      `json:"documento"` // DNI o CUIT
	Telefono    string      `json:"telefono"`
	Email       string      `json:"email"`
	Direccion   string      `json:"direccion"`
}

// ClienteConsumidorFinalID is the backend's placeholder customer used when a
// sale is registered without selecting a customer.
const ClienteConsumidorFinalID int64 = 1
