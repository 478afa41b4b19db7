package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Los punteros nil toman el valor por defecto (umbral 5, precios 0, cantidad 0).
type CreateProductRequest struct {
	Reference     string           `json:"reference"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	CategoryID    string           `json:"category_id"`
	SupplierID    string           `json:"supplier_id,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	MinThreshold  *int             `json:"min_threshold,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
}

// ProductResponse salida de un producto con datos de categoría y proveedor.
type ProductResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    *string         `json:"category_id"`
	CategoryName  *string         `json:"category_name"`
	CategoryColor *string         `json:"category_color"`
	SupplierID    *string         `json:"supplier_id"`
	SupplierName  *string         `json:"supplier_name"`
	Quantity      int             `json:"quantity"`
	MinThreshold  int             `json:"min_threshold"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
