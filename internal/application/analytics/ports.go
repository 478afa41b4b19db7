package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow/internal/domain/entity"
)

// StockReport datos del reporte de inventario imprimible.
type StockReport struct {
	GeneratedAt time.Time
	Currency    string
	Statistics  entity.Statistics
	LowStock    []*entity.ProductView
	Products    []*entity.ProductView
}

// StockReportPDFGenerator puerto de generación del PDF del reporte de inventario.
type StockReportPDFGenerator interface {
	GenerateStockReportPDF(ctx context.Context, report *StockReport) ([]byte, error)
}
