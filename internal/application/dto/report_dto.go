package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatisticsDTO indicadores globales del inventario.
type StatisticsDTO struct {
	TotalProducts   int             `json:"total_products"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	SupplierCount   int             `json:"supplier_count"`
	CategoryCount   int             `json:"category_count"`
	Currency        string          `json:"currency"`
}

// TopMovedProductDTO producto con más movimientos en la ventana.
type TopMovedProductDTO struct {
	ProductID     string `json:"product_id"`
	Reference     string `json:"reference"`
	Name          string `json:"name"`
	CategoryName  string `json:"category_name"`
	MovementCount int    `json:"movement_count"`
	TotalEntries  int    `json:"total_entries"`
	TotalExits    int    `json:"total_exits"`
	Balance       int    `json:"balance"`
}

// DashboardSummaryDTO resumen del tablero: indicadores, alertas y productos más movidos.
type DashboardSummaryDTO struct {
	Statistics  StatisticsDTO        `json:"statistics"`
	LowStock    []ProductResponse    `json:"low_stock"`
	TopMoved    []TopMovedProductDTO `json:"top_moved"`
	WindowDays  int                  `json:"window_days"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en alerta.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	Reference          string          `json:"reference"`
	ProductName        string          `json:"product_name"`
	SupplierName       string          `json:"supplier_name"`
	CurrentStock       int             `json:"current_stock"`
	MinThreshold       int             `json:"min_threshold"`
	IdealStock         int             `json:"ideal_stock"`          // ⌈umbral × 1.5⌉
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // precio de compra
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty × UnitCost
	UnitMarginPct      decimal.Decimal `json:"unit_margin_pct"`      // (venta - compra) / venta × 100
	ExitsLast90Days    int             `json:"exits_last_90d"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
