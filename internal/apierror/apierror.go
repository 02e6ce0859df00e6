// Package apierror defines the error envelopes every 4xx/5xx response uses.
// Routing all client-visible errors through here keeps the wire format
// uniform and keeps internals (SQL errors, stack traces) out of responses.
package apierror

// APIError is the canonical error envelope.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field failures from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ConflictoError is the 409 envelope for closes blocked by a mismatched
// reconciliation. Pistas names each failing track so the cashier knows
// what to recount.
type ConflictoError struct {
	Detail string   `json:"detail"`
	Pistas []string `json:"pistas,omitempty"`
}

func NewConflicto(msg string, pistas []string) *ConflictoError {
	return &ConflictoError{Detail: msg, Pistas: pistas}
}
