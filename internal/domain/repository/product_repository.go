package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity no se modifica con Update: solo UpdateQuantity, usado por el motor de movimientos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByReference(ctx context.Context, reference string) (*entity.Product, error)
	GetView(ctx context.Context, id string) (*entity.ProductView, error)
	// ListViews lista productos ordenados por nombre; search filtra por nombre o referencia.
	ListViews(ctx context.Context, search string) ([]*entity.ProductView, error)
	UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
