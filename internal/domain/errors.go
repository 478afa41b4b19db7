package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrReferentialIntegrity = errors.New("existen registros dependientes")
)

// ValidationError indica qué campo no pasó la validación.
// errors.Is(err, ErrInvalidInput) es true para cualquier *ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye el error para el campo dado.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// MissingField atajo para campos requeridos vacíos.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "campo requerido"}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrInvalidInput.Error(), e.Reason, e.Field)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
