package inventory

import (
	"context"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ApplyMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, MovementInput).
// actor es el usuario autenticado (vacío = system).
func (uc *LedgerUseCase) ApplyMovementFromRequest(ctx context.Context, actor string, in dto.RegisterMovementRequest) (string, error) {
	input := MovementInput{
		ProductID:   in.ProductID,
		Kind:        entity.MovementKind(in.Kind),
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Actor:       actor,
		DocumentRef: in.DocumentRef,
	}
	return uc.ApplyMovement(ctx, input)
}

// ToMovementResponse convierte un movimiento de dominio al DTO de salida.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Kind:           string(m.Kind),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Actor:          m.Actor,
		DocumentRef:    m.DocumentRef,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementDetailResponse convierte el detalle (movimiento + stock actual) al DTO.
func ToMovementDetailResponse(d *entity.MovementDetail) *dto.MovementDetailResponse {
	out := &dto.MovementDetailResponse{
		MovementResponse: ToMovementResponse(&d.Movement),
		CurrentStock:     d.CurrentStock,
		MinThreshold:     d.MinThreshold,
	}
	out.ProductReference = d.ProductReference
	out.ProductName = d.ProductName
	return out
}
