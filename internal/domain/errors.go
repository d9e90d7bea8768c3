package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrValidation       = errors.New("factura incompleta")
	ErrRendering        = errors.New("no se pudo generar el documento")
	ErrLineItemNotFound = errors.New("línea de factura no encontrada")
	ErrLastLineItem     = errors.New("la factura debe conservar al menos una línea")
)
