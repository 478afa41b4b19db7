package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/analytics"
	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/testutil/memstore"
)

type fakePDF struct {
	got *analytics.StockReport
}

func (f *fakePDF) GenerateStockReportPDF(_ context.Context, r *analytics.StockReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.4"), nil
}

func seed(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	catID := "cat-1"
	require.NoError(t, store.Categories().Create(ctx, &entity.Category{ID: catID, Name: "Oficina", Color: "#3B82F6"}))
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "sup-1", Name: "Acme"}))
	for _, p := range []entity.Product{
		{ID: "p1", Reference: "PROD-001", Name: "Grapadora", Quantity: 25, MinThreshold: 5, SalePrice: decimal.NewFromInt(4)},
		{ID: "p2", Reference: "PROD-002", Name: "Tijeras", Quantity: 3, MinThreshold: 5, SalePrice: decimal.RequireFromString("2.50")},
		{ID: "p3", Reference: "PROD-003", Name: "Cinta", Quantity: 0, MinThreshold: 2, SalePrice: decimal.NewFromInt(9)},
	} {
		p := p
		p.CategoryID = &catID
		require.NoError(t, store.Products().Create(ctx, &p))
	}
	return store
}

func addMovement(t *testing.T, store *memstore.Store, id, productID string, kind entity.MovementKind, qty int, actor string, at time.Time) {
	t.Helper()
	require.NoError(t, store.Movements().Create(context.Background(), &entity.Movement{
		ID: id, ProductID: productID, Kind: kind, Quantity: qty, Actor: actor, CreatedAt: at,
	}))
}

func TestStatistics(t *testing.T) {
	store := seed(t)
	uc := analytics.NewReportUseCase(store.Reports(), store.Products(), nil, "€")

	stats, err := uc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.True(t, decimal.RequireFromString("107.50").Equal(stats.TotalValue), "25×4 + 3×2.50 + 0×9")
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.Equal(t, 1, stats.SupplierCount)
	assert.Equal(t, 1, stats.CategoryCount)
	assert.Equal(t, "€", stats.Currency)
}

func TestLowStock_OrdenAscendentePorCantidad(t *testing.T) {
	store := seed(t)
	uc := analytics.NewReportUseCase(store.Reports(), store.Products(), nil, "€")

	low, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "PROD-003", low[0].Reference)
	assert.Equal(t, "PROD-002", low[1].Reference)
	require.NotNil(t, low[0].CategoryName)
	assert.Equal(t, "Oficina", *low[0].CategoryName)
}

func TestListMovements_FiltrosYOrden(t *testing.T) {
	store := seed(t)
	now := time.Now()
	addMovement(t, store, "m1", "p1", entity.MovementEntry, 10, "ana", now.AddDate(0, 0, -3))
	addMovement(t, store, "m2", "p1", entity.MovementExit, 2, "luis", now.AddDate(0, 0, -2))
	addMovement(t, store, "m3", "p2", entity.MovementExit, 1, "ana", now.AddDate(0, 0, -1))
	uc := analytics.NewReportUseCase(store.Reports(), store.Products(), nil, "€")
	ctx := context.Background()

	all, err := uc.ListMovements(ctx, dto.MovementFilterRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, "m3", all.Items[0].ID, "más reciente primero")
	assert.Equal(t, "PROD-002", all.Items[0].ProductReference)

	byActor, err := uc.ListMovements(ctx, dto.MovementFilterRequest{Actor: "ana", Kind: "exit"})
	require.NoError(t, err)
	require.Equal(t, 1, byActor.Total)
	assert.Equal(t, "m3", byActor.Items[0].ID)

	day := now.AddDate(0, 0, -2).Format("2006-01-02")
	oneDay, err := uc.ListMovements(ctx, dto.MovementFilterRequest{From: day, To: day})
	require.NoError(t, err)
	require.Equal(t, 1, oneDay.Total, "From y To incluyen el día completo")
	assert.Equal(t, "m2", oneDay.Items[0].ID)

	limited, err := uc.ListMovements(ctx, dto.MovementFilterRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, limited.Total)
}

func TestParseMovementFilter(t *testing.T) {
	f, err := analytics.ParseMovementFilter(dto.MovementFilterRequest{}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultMovementLimit, f.Limit)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)

	f, err = analytics.ParseMovementFilter(dto.MovementFilterRequest{Limit: 50000, To: "2024-03-10"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, analytics.MaxMovementLimit, f.Limit)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), *f.To)

	f, err = analytics.ParseMovementFilter(dto.MovementFilterRequest{Kind: "reversal_of_exit"}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementReversalOfExit, f.Kind)

	validID := "6f1c2b9e-3d4a-4c5b-8e7f-9a0b1c2d3e4f"
	f, err = analytics.ParseMovementFilter(dto.MovementFilterRequest{ProductID: " " + validID + " "}, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, validID, f.ProductID)

	_, err = analytics.ParseMovementFilter(dto.MovementFilterRequest{ProductID: "no-es-uuid"}, time.UTC)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "product_id", ve.Field)

	for _, in := range []dto.MovementFilterRequest{
		{Kind: "transfer"},
		{From: "10/03/2024"},
		{From: "2024-03-11", To: "2024-03-10"},
	} {
		_, err := analytics.ParseMovementFilter(in, time.UTC)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%+v", in)
	}
}

func TestTopMovedProducts(t *testing.T) {
	store := seed(t)
	now := time.Now()
	addMovement(t, store, "m1", "p1", entity.MovementEntry, 10, "ana", now.AddDate(0, 0, -1))
	addMovement(t, store, "m2", "p1", entity.MovementExit, 4, "ana", now.AddDate(0, 0, -1))
	addMovement(t, store, "m3", "p2", entity.MovementExit, 1, "ana", now.AddDate(0, 0, -1))
	addMovement(t, store, "m4", "p2", entity.MovementEntry, 1, "ana", now.AddDate(0, 0, -60))
	uc := analytics.NewReportUseCase(store.Reports(), store.Products(), nil, "€")

	top, err := uc.TopMovedProducts(context.Background(), 10, 30)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "p1", top[0].ProductID)
	assert.Equal(t, 2, top[0].MovementCount)
	assert.Equal(t, 10, top[0].TotalEntries)
	assert.Equal(t, 4, top[0].TotalExits)
	assert.Equal(t, 6, top[0].Balance)
	assert.Equal(t, 1, top[1].MovementCount, "el movimiento de hace 60 días queda fuera")
	assert.Equal(t, "Oficina", top[0].CategoryName)
}

func TestStockReportPDF(t *testing.T) {
	store := seed(t)
	gen := &fakePDF{}
	uc := analytics.NewReportUseCase(store.Reports(), store.Products(), gen, "€")

	out, err := uc.StockReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	require.NotNil(t, gen.got)
	assert.Len(t, gen.got.Products, 3)
	assert.Len(t, gen.got.LowStock, 2)
	assert.Equal(t, 3, gen.got.Statistics.TotalProducts)

	_, err = analytics.NewReportUseCase(store.Reports(), store.Products(), nil, "€").StockReportPDF(context.Background())
	assert.Error(t, err)
}

func TestDashboardSummary(t *testing.T) {
	store := seed(t)
	addMovement(t, store, "m1", "p1", entity.MovementEntry, 10, "ana", time.Now())
	uc := analytics.NewDashboardUseCase(store.Reports(), "€")

	sum, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Statistics.TotalProducts)
	assert.Len(t, sum.LowStock, 2)
	require.Len(t, sum.TopMoved, 1)
	assert.Equal(t, "PROD-001", sum.TopMoved[0].Reference)
	assert.Equal(t, 30, sum.WindowDays)
}
