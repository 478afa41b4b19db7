package repository

import (
	"context"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
	// CountProducts cuenta los productos que referencian al proveedor.
	CountProducts(ctx context.Context, supplierID string) (int, error)
	// Delete devuelve false si no existía.
	Delete(ctx context.Context, id string) (bool, error)
}
