package entity

import "github.com/shopspring/decimal"

// Statistics indicadores globales del inventario.
type Statistics struct {
	TotalProducts   int             `db:"total_products"`
	TotalValue      decimal.Decimal `db:"total_value"` // Σ cantidad × precio de venta
	LowStockCount   int             `db:"low_stock_count"`
	OutOfStockCount int             `db:"out_of_stock_count"`
	SupplierCount   int             `db:"supplier_count"`
	CategoryCount   int             `db:"category_count"`
}

// TopMovedProduct agregado de movimientos de un producto en una ventana de días.
type TopMovedProduct struct {
	ProductID     string  `db:"product_id"`
	Reference     string  `db:"reference"`
	Name          string  `db:"name"`
	CategoryName  *string `db:"category_name"`
	MovementCount int     `db:"movement_count"`
	TotalEntries  int     `db:"total_entries"`
	TotalExits    int     `db:"total_exits"`
	Balance       int     `db:"balance"` // entradas - salidas
}
