package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// MovementFilter filtros para el historial de movimientos. Los campos vacíos no filtran.
type MovementFilter struct {
	From      *time.Time
	To        *time.Time
	Kind      entity.MovementKind
	ProductID string
	Actor     string
	Limit     int
}

// ReportRepository define las consultas de lectura del inventario.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// ListLowStock productos con cantidad <= umbral, ascendente por cantidad.
	ListLowStock(ctx context.Context) ([]*entity.ProductView, error)

	// GetStatistics indicadores globales; usa COALESCE para devolver cero sin filas.
	GetStatistics(ctx context.Context) (*entity.Statistics, error)

	// ListMovements historial filtrado, más reciente primero.
	ListMovements(ctx context.Context, filter MovementFilter) ([]*entity.MovementView, error)

	// GetTopMovedProducts productos con más movimientos desde `since`.
	GetTopMovedProducts(ctx context.Context, since time.Time, limit int) ([]*entity.TopMovedProduct, error)
}
