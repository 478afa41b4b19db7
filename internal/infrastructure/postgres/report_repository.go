package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y tablero.
type ReportRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListLowStock productos con cantidad <= umbral, ascendente por cantidad.
func (r *ReportRepo) ListLowStock(ctx context.Context) ([]*entity.ProductView, error) {
	query := productViewSelect + ` WHERE p.quantity <= p.min_threshold ORDER BY p.quantity ASC, p.name`
	var list []*entity.ProductView
	if err := pgxscan.Select(ctx, r.q, &list, query); err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	return list, nil
}

// GetStatistics indicadores globales en una sola consulta.
func (r *ReportRepo) GetStatistics(ctx context.Context) (*entity.Statistics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products)                                          AS total_products,
			(SELECT COALESCE(SUM(quantity * sale_price), 0) FROM products)           AS total_value,
			(SELECT COUNT(*) FROM products WHERE quantity <= min_threshold)          AS low_stock_count,
			(SELECT COUNT(*) FROM products WHERE quantity = 0)                       AS out_of_stock_count,
			(SELECT COUNT(*) FROM suppliers)                                         AS supplier_count,
			(SELECT COUNT(*) FROM categories)                                        AS category_count`
	var s entity.Statistics
	if err := pgxscan.Get(ctx, r.q, &s, query); err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	return &s, nil
}

// ListMovements historial filtrado, más reciente primero.
func (r *ReportRepo) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementView, error) {
	query, args, err := r.movementsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build movements query: %w", err)
	}
	var list []*entity.MovementView
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return list, nil
}

// GetTopMovedProducts productos con más movimientos desde since.
func (r *ReportRepo) GetTopMovedProducts(ctx context.Context, since time.Time, limit int) ([]*entity.TopMovedProduct, error) {
	query, args, err := r.topMovedQuery(since, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build top moved query: %w", err)
	}
	var list []*entity.TopMovedProduct
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("top moved products: %w", err)
	}
	return list, nil
}

func (r *ReportRepo) movementsQuery(f repository.MovementFilter) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"m.id", "m.product_id", "m.kind", "m.quantity", "m.quantity_before", "m.quantity_after",
			"m.reason", "m.actor", "m.document_ref", "m.created_at",
			"p.reference AS product_reference", "p.name AS product_name", "c.name AS category_name",
		).
		From("movements m").
		LeftJoin("products p ON p.id = m.product_id").
		LeftJoin("categories c ON c.id = p.category_id")

	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"m.created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"m.created_at": *f.To})
	}
	if f.Kind != "" {
		q = q.Where(squirrel.Eq{"m.kind": string(f.Kind)})
	}
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"m.product_id": f.ProductID})
	}
	if f.Actor != "" {
		q = q.Where(squirrel.Eq{"m.actor": f.Actor})
	}
	q = q.OrderBy("m.created_at DESC", "m.id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	return q
}

func (r *ReportRepo) topMovedQuery(since time.Time, limit int) squirrel.SelectBuilder {
	q := r.builder.
		Select(
			"p.id AS product_id", "p.reference", "p.name", "c.name AS category_name",
			"COUNT(m.id) AS movement_count",
			"COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'entry'), 0) AS total_entries",
			"COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'exit'), 0) AS total_exits",
			"COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'entry'), 0)"+
				" - COALESCE(SUM(m.quantity) FILTER (WHERE m.kind = 'exit'), 0) AS balance",
		).
		From("movements m").
		Join("products p ON p.id = m.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(squirrel.GtOrEq{"m.created_at": since}).
		GroupBy("p.id", "p.reference", "p.name", "c.name").
		OrderBy("movement_count DESC", "p.name")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return q
}
