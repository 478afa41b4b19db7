package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinThreshold umbral mínimo de stock cuando no se indica otro.
const DefaultMinThreshold = 5

// Product representa un artículo del inventario.
// Quantity solo cambia a través del motor de movimientos; nunca es negativa.
type Product struct {
	ID            string
	Reference     string // código único
	Name          string
	Description   string
	CategoryID    *string
	SupplierID    *string
	Quantity      int
	MinThreshold  int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el producto está en alerta (cantidad <= umbral).
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinThreshold
}

// StockValue valor del inventario del producto a precio de venta.
func (p *Product) StockValue() decimal.Decimal {
	return p.SalePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductView producto con nombre/color de categoría y nombre de proveedor (para listados).
type ProductView struct {
	ID            string          `db:"id"`
	Reference     string          `db:"reference"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	CategoryID    *string         `db:"category_id"`
	SupplierID    *string         `db:"supplier_id"`
	Quantity      int             `db:"quantity"`
	MinThreshold  int             `db:"min_threshold"`
	PurchasePrice decimal.Decimal `db:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
	CategoryName  *string         `db:"category_name"`
	CategoryColor *string         `db:"category_color"`
	SupplierName  *string         `db:"supplier_name"`
}
