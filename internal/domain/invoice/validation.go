package invoice

import (
	"fmt"
	"strings"

	"github.com/jhoicas/invoice-builder/internal/domain"
	"github.com/jhoicas/invoice-builder/internal/domain/entity"
)

// FieldError campo requerido ausente o inválido.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos que bloquean la generación del documento.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidation, strings.Join(parts, "; "))
}

// Unwrap permite errors.Is(err, domain.ErrValidation).
func (e *ValidationError) Unwrap() error { return domain.ErrValidation }

// Validate comprueba los campos requeridos antes de generar el documento:
// nombre y email del cliente, descripción de cada línea y precio unitario > 0.
// Devuelve nil o un *ValidationError con todos los fallos encontrados.
func Validate(inv entity.Invoice) error {
	var fields []FieldError

	customer := inv.Customer()
	if strings.TrimSpace(customer.Name) == "" {
		fields = append(fields, FieldError{Field: "customer.name", Message: "requerido"})
	}
	if strings.TrimSpace(customer.Email) == "" {
		fields = append(fields, FieldError{Field: "customer.email", Message: "requerido"})
	}

	for i, item := range inv.Items() {
		if strings.TrimSpace(item.Description) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("items[%d].description", i),
				Message: "requerido",
			})
		}
		if !item.UnitPrice.IsPositive() {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("items[%d].unitPrice", i),
				Message: "debe ser mayor que 0",
			})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
