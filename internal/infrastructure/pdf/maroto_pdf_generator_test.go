package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/analytics"
	"github.com/jhoicas/stockflow/internal/domain/entity"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1.234.567,50 €", formatAmount(decimal.RequireFromString("1234567.5"), "€"))
	assert.Equal(t, "0,00", formatAmount(decimal.Zero, ""))
	assert.Equal(t, "-999,99 €", formatAmount(decimal.RequireFromString("-999.99"), "€"))
}

func TestGenerateStockReportPDF(t *testing.T) {
	supplier := "Acme"
	report := &analytics.StockReport{
		GeneratedAt: time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
		Currency:    "€",
		Statistics:  entity.Statistics{TotalProducts: 2, TotalValue: decimal.NewFromInt(100), LowStockCount: 1},
		LowStock: []*entity.ProductView{
			{Reference: "PROD-002", Name: "Tijeras", Quantity: 3, MinThreshold: 5, SupplierName: &supplier},
		},
		Products: []*entity.ProductView{
			{Reference: "PROD-001", Name: "Grapadora", Quantity: 25, SalePrice: decimal.NewFromInt(4)},
			{Reference: "PROD-002", Name: "Tijeras", Quantity: 3, SalePrice: decimal.NewFromInt(0)},
		},
	}

	out, err := NewMarotoPDFGenerator("").GenerateStockReportPDF(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}
