// Package apierror defines the JSON error envelopes the terminal returns.
// Handlers never expose raw backend errors to the UI; everything a client
// sees passes through one of these shapes.
package apierror

// APIError is the envelope for every 4xx/5xx response.
type APIError struct {
	Detail string `json:"detail"`
}

func New(detail string) *APIError {
	return &APIError{Detail: detail}
}

// ValidationError carries per-field tags from request validation so the UI
// can highlight the offending inputs.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
