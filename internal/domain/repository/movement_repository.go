package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el libro de movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	GetDetail(ctx context.Context, id string) (*entity.MovementDetail, error)
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
