// Package stock contiene las reglas puras del libro de movimientos:
// cómo cada tipo transforma la cantidad de un producto y cómo se compensa al anularlo.
package stock

import (
	"fmt"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ValidateMagnitude comprueba el tipo y la cantidad sin mirar el stock actual.
// entry/exit requieren cantidad positiva; los ajustes aceptan cero.
func ValidateMagnitude(kind entity.MovementKind, magnitude int) error {
	switch kind {
	case entity.MovementEntry, entity.MovementExit:
		if magnitude <= 0 {
			return domain.NewValidationError("quantity", "la cantidad debe ser positiva")
		}
	case entity.MovementAdjustment, entity.MovementInventoryCount:
		if magnitude < 0 {
			return domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
		}
	default:
		return domain.NewValidationError("kind", fmt.Sprintf("tipo de movimiento inválido: %q", kind))
	}
	return nil
}

// Apply calcula la cantidad resultante de aplicar un movimiento a la cantidad actual.
//   - entry: before + magnitude
//   - exit: before - magnitude; ErrInsufficientStock si magnitude > before
//   - adjustment / inventory_count: magnitude es la cantidad final
//
// Cualquier otro tipo (incluidas las anulaciones) es inválido aquí.
func Apply(kind entity.MovementKind, before, magnitude int) (int, error) {
	if err := ValidateMagnitude(kind, magnitude); err != nil {
		return before, err
	}
	switch kind {
	case entity.MovementEntry:
		return before + magnitude, nil
	case entity.MovementExit:
		if magnitude > before {
			return before, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, before, magnitude)
		}
		return before - magnitude, nil
	default:
		return magnitude, nil
	}
}

// Reversal describe la compensación de anular un movimiento.
type Reversal struct {
	Kind  entity.MovementKind
	Delta int // efecto sobre la cantidad actual
}

// Reverse devuelve la compensación para un movimiento del tipo dado.
// Los ajustes no se pueden invertir sin conocer la cantidad previa con certeza:
// producen una anulación genérica sin efecto, igual que las anulaciones de anulaciones.
func Reverse(kind entity.MovementKind, magnitude int) Reversal {
	switch kind {
	case entity.MovementEntry:
		return Reversal{Kind: entity.MovementReversalOfEntry, Delta: -magnitude}
	case entity.MovementExit:
		return Reversal{Kind: entity.MovementReversalOfExit, Delta: magnitude}
	default:
		return Reversal{Kind: entity.MovementReversalGeneric, Delta: 0}
	}
}

// ApplyReversal aplica la compensación a la cantidad actual.
// Falla con ErrInsufficientStock si el resultado sería negativo.
func ApplyReversal(r Reversal, current int) (int, error) {
	after := current + r.Delta
	if after < 0 {
		return current, fmt.Errorf("%w: la anulación dejaría el stock en %d", domain.ErrInsufficientStock, after)
	}
	return after, nil
}
