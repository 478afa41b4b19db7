package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

func TestMovementsQuery_SinFiltros(t *testing.T) {
	r := NewReportRepository(nil)
	sql, args, err := r.movementsQuery(repository.MovementFilter{Limit: 100}).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY m.created_at DESC, m.id DESC")
	assert.Contains(t, sql, "LIMIT 100")
	assert.Empty(t, args)
}

func TestMovementsQuery_TodosLosFiltros(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	r := NewReportRepository(nil)

	sql, args, err := r.movementsQuery(repository.MovementFilter{
		From:      &from,
		To:        &to,
		Kind:      entity.MovementExit,
		ProductID: "p1",
		Actor:     "ana",
		Limit:     10,
	}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "m.created_at >= $1")
	assert.Contains(t, sql, "m.created_at <= $2")
	assert.Contains(t, sql, "m.kind = $3")
	assert.Contains(t, sql, "m.product_id = $4")
	assert.Contains(t, sql, "m.actor = $5")
	assert.Equal(t, []any{from, to, "exit", "p1", "ana"}, args)
}

func TestTopMovedQuery(t *testing.T) {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sql, args, err := NewReportRepository(nil).topMovedQuery(since, 5).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE m.created_at >= $1")
	assert.Contains(t, sql, "GROUP BY p.id, p.reference, p.name, c.name")
	assert.Contains(t, sql, "ORDER BY movement_count DESC, p.name")
	assert.Contains(t, sql, "LIMIT 5")
	assert.Equal(t, []any{since}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLike("50%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
}
