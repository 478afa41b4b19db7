package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/inventory"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/testutil/memstore"
)

func TestIdealStock_RedondeaHaciaArriba(t *testing.T) {
	assert.Equal(t, 8, inventory.IdealStock(5), "⌈7.5⌉")
	assert.Equal(t, 6, inventory.IdealStock(4))
	assert.Equal(t, 0, inventory.IdealStock(0))
}

func TestGenerateReplenishmentList(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	products := store.Products()

	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "a", Reference: "A", Name: "Alfa", Quantity: 2, MinThreshold: 5,
		PurchasePrice: decimal.NewFromInt(6), SalePrice: decimal.NewFromInt(10),
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "b", Reference: "B", Name: "Beta", Quantity: 0, MinThreshold: 4,
		PurchasePrice: decimal.NewFromInt(3), SalePrice: decimal.NewFromInt(4),
	}))
	require.NoError(t, products.Create(ctx, &entity.Product{
		ID: "c", Reference: "C", Name: "Gamma", Quantity: 50, MinThreshold: 5,
		PurchasePrice: decimal.NewFromInt(1), SalePrice: decimal.NewFromInt(2),
	}))

	uc := inventory.NewReplenishmentUseCase(store.Reports())
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "Gamma no está en alerta")

	// agotado primero
	assert.Equal(t, "b", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 6, list[0].IdealStock)
	assert.Equal(t, 6, list[0].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(18).Equal(list[0].EstimatedOrderCost))
	assert.True(t, decimal.NewFromInt(25).Equal(list[0].UnitMarginPct))

	assert.Equal(t, "a", list[1].ProductID)
	assert.Equal(t, 2, list[1].Priority)
	assert.Equal(t, 8, list[1].IdealStock)
	assert.Equal(t, 6, list[1].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(40).Equal(list[1].UnitMarginPct))
}

func TestGenerateReplenishmentList_SinAlertas(t *testing.T) {
	uc := inventory.NewReplenishmentUseCase(memstore.New().Reports())
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
