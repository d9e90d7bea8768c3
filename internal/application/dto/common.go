package dto

import "github.com/jhoicas/invoice-builder/internal/domain/invoice"

// ErrorResponse cuerpo de error HTTP.
// Fields solo se llena cuando la factura no pasa la validación.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Code   string               `json:"code,omitempty"`
	Fields []invoice.FieldError `json:"fields,omitempty"`
}

// UserResponse identidad de la sesión para GET /api/user.
type UserResponse struct {
	UserID string `json:"userId"`
}
