package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, reference, name, description, category_id, supplier_id, quantity, min_threshold,
	purchase_price, sale_price, created_at, updated_at`

// productViewSelect producto con categoría y proveedor (LEFT JOIN: ambos son opcionales).
const productViewSelect = `
	SELECT p.id, p.reference, p.name, p.description, p.category_id, p.supplier_id, p.quantity,
	       p.min_threshold, p.purchase_price, p.sale_price, p.created_at, p.updated_at,
	       c.name AS category_name, c.color AS category_color, s.name AS supplier_name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Reference, p.Name, p.Description, p.CategoryID, p.SupplierID, p.Quantity, p.MinThreshold,
		p.PurchasePrice, p.SalePrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrReferentialIntegrity
		case isCheckViolation(err):
			return domain.NewValidationError("", "valores fuera de rango")
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

// GetByReference obtiene un producto por su referencia única.
func (r *ProductRepo) GetByReference(ctx context.Context, reference string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE reference = $1`, reference)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Reference, &p.Name, &p.Description, &p.CategoryID, &p.SupplierID, &p.Quantity,
		&p.MinThreshold, &p.PurchasePrice, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetView obtiene un producto con nombre/color de categoría y nombre de proveedor.
func (r *ProductRepo) GetView(ctx context.Context, id string) (*entity.ProductView, error) {
	var v entity.ProductView
	if err := pgxscan.Get(ctx, r.q, &v, productViewSelect+` WHERE p.id = $1`, id); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product view: %w", err)
	}
	return &v, nil
}

// ListViews lista productos por nombre; search filtra por nombre o referencia (ILIKE).
func (r *ProductRepo) ListViews(ctx context.Context, search string) ([]*entity.ProductView, error) {
	query := productViewSelect
	args := []any{}
	if term := strings.TrimSpace(search); term != "" {
		query += ` WHERE p.name ILIKE $1 OR p.reference ILIKE $1`
		args = append(args, "%"+escapeLike(term)+"%")
	}
	query += ` ORDER BY p.name`

	var list []*entity.ProductView
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// UpdateQuantity fija la cantidad (usado solo por el motor de movimientos).
func (r *ProductRepo) UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, at,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto; sus movimientos se borran por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// escapeLike escapa los comodines de LIKE en un término de búsqueda.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
