package dto

import "github.com/iho/barberledger/internal/domain"

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string               `json:"error"`
	Message string               `json:"message,omitempty"`
	Fields  []FieldErrorResponse `json:"fields,omitempty"`
}

// FieldErrorResponse names the input field a validation error belongs to.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldsFromValidation converts field errors to their wire form.
func FieldsFromValidation(fields []domain.FieldError) []FieldErrorResponse {
	if len(fields) == 0 {
		return nil
	}
	result := make([]FieldErrorResponse, len(fields))
	for i, f := range fields {
		result[i] = FieldErrorResponse{Field: f.Field, Message: f.Message}
	}
	return result
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
