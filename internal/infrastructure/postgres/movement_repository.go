package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, kind, quantity, quantity_before, quantity_after,
	reason, actor, document_ref, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProductID, string(m.Kind), m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.Actor, m.DocumentRef, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var m entity.Movement
	if err := pgxscan.Get(ctx, r.q, &m, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// GetDetail obtiene el movimiento con la cantidad actual y el umbral del producto.
func (r *MovementRepo) GetDetail(ctx context.Context, id string) (*entity.MovementDetail, error) {
	query := `
		SELECT m.id, m.product_id, m.kind, m.quantity, m.quantity_before, m.quantity_after,
		       m.reason, m.actor, m.document_ref, m.created_at,
		       p.reference AS product_reference, p.name AS product_name,
		       p.quantity AS current_stock, p.min_threshold
		FROM movements m
		JOIN products p ON p.id = m.product_id
		WHERE m.id = $1`
	var d entity.MovementDetail
	if err := pgxscan.Get(ctx, r.q, &d, query, id); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement detail: %w", err)
	}
	return &d, nil
}

// Delete elimina un movimiento; false si no existía.
func (r *MovementRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete movement: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
