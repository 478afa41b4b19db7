package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// En adjustment e inventory_count, quantity es la cantidad final del producto.
type RegisterMovementRequest struct {
	ProductID   string `json:"product_id"`
	Kind        string `json:"kind"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	DocumentRef string `json:"document_ref,omitempty"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductReference string    `json:"product_reference,omitempty"`
	ProductName      string    `json:"product_name,omitempty"`
	CategoryName     string    `json:"category_name,omitempty"`
	Kind             string    `json:"kind"`
	Quantity         int       `json:"quantity"`
	QuantityBefore   *int      `json:"quantity_before"`
	QuantityAfter    *int      `json:"quantity_after"`
	Reason           string    `json:"reason"`
	Actor            string    `json:"actor"`
	DocumentRef      string    `json:"document_ref"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementDetailResponse movimiento con el estado actual del producto.
type MovementDetailResponse struct {
	MovementResponse
	CurrentStock int `json:"current_stock"`
	MinThreshold int `json:"min_threshold"`
}

// MovementListResponse historial filtrado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// MovementFilterRequest filtros del historial (query string).
// From y To en formato YYYY-MM-DD, ambos inclusivos.
type MovementFilterRequest struct {
	From      string `query:"from"`
	To        string `query:"to"`
	Kind      string `query:"kind"`
	ProductID string `query:"product_id"`
	Actor     string `query:"actor"`
	Limit     int    `query:"limit"`
}
