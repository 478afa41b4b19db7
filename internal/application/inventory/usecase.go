package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/jhoicas/stockflow/internal/domain/stock"
	"github.com/jhoicas/stockflow/pkg/logger"
)

// LedgerUseCase es el único camino autorizado para cambiar la cantidad de un producto.
// Cada operación corre en una transacción: bloquea la fila del producto (SELECT FOR UPDATE),
// actualiza la cantidad y escribe el movimiento, con Commit o Rollback de ambos.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	log      *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.MovementRepository, log *logger.Logger) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, log: log.Component("ledger")}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es la magnitud (entry/exit) o la cantidad final (adjustment/inventory_count).
type MovementInput struct {
	ProductID   string
	Kind        entity.MovementKind
	Quantity    int
	Reason      string
	Actor       string
	DocumentRef string
}

// ApplyMovement valida, aplica el movimiento a la cantidad del producto y lo registra.
// Devuelve el ID del movimiento creado.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) (string, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return "", domain.MissingField("product_id")
	}
	if err := stock.ValidateMagnitude(in.Kind, in.Quantity); err != nil {
		return "", err
	}
	actor := in.Actor
	if actor == "" {
		actor = entity.SystemActor
	}

	var movementID string
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before := product.Quantity
		after, err := stock.Apply(in.Kind, before, in.Quantity)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := productRepo.UpdateQuantity(ctx, product.ID, after, now); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			Kind:           in.Kind,
			Quantity:       in.Quantity,
			QuantityBefore: &before,
			QuantityAfter:  &after,
			Reason:         in.Reason,
			Actor:          actor,
			DocumentRef:    in.DocumentRef,
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		movementID = mov.ID
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("kind", string(in.Kind)).
			Int("quantity", in.Quantity).
			Msg("movimiento rechazado")
		return "", err
	}

	uc.log.Info().
		Str("movement_id", movementID).
		Str("product_id", in.ProductID).
		Str("kind", string(in.Kind)).
		Int("quantity", in.Quantity).
		Str("actor", actor).
		Msg("movimiento registrado")
	return movementID, nil
}

// DeleteMovement anula un movimiento: compensa su efecto en la cantidad del producto,
// registra la anulación (document_ref ANN-<id>) y elimina el original, todo en una transacción.
// Los ajustes e inventarios se anulan sin efecto sobre la cantidad.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID, actor string) (bool, error) {
	if strings.TrimSpace(movementID) == "" {
		return false, domain.MissingField("movement_id")
	}
	if actor == "" {
		actor = entity.SystemActor
	}

	var reversal stock.Reversal
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		original, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}

		product, err := productRepo.GetForUpdate(ctx, original.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		reversal = stock.Reverse(original.Kind, original.Quantity)
		before := product.Quantity
		after, err := stock.ApplyReversal(reversal, before)
		if err != nil {
			return err
		}

		now := time.Now()
		if reversal.Delta != 0 {
			if err := productRepo.UpdateQuantity(ctx, product.ID, after, now); err != nil {
				return err
			}
		}
		rev := &entity.Movement{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			Kind:           reversal.Kind,
			Quantity:       original.Quantity,
			QuantityBefore: &before,
			QuantityAfter:  &after,
			Reason:         fmt.Sprintf("Anulación del movimiento %s: %s", original.ID, original.Reason),
			Actor:          actor,
			DocumentRef:    "ANN-" + original.ID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(ctx, rev); err != nil {
			return err
		}
		deleted, err := movRepo.Delete(ctx, original.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("movement_id", movementID).Msg("anulación rechazada")
		return false, err
	}

	uc.log.Info().
		Str("movement_id", movementID).
		Str("reversal_kind", string(reversal.Kind)).
		Int("delta", reversal.Delta).
		Str("actor", actor).
		Msg("movimiento anulado")
	return true, nil
}

// GetMovement obtiene un movimiento con el stock actual del producto.
func (uc *LedgerUseCase) GetMovement(ctx context.Context, id string) (*entity.MovementDetail, error) {
	detail, err := uc.movRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}
