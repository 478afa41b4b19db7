package entity

import "time"

// MovementKind tipo de movimiento de stock.
type MovementKind string

// Tipos que puede registrar un usuario.
const (
	MovementEntry          MovementKind = "entry"           // entrada: suma
	MovementExit           MovementKind = "exit"            // salida: resta
	MovementAdjustment     MovementKind = "adjustment"      // ajuste: fija cantidad absoluta
	MovementInventoryCount MovementKind = "inventory_count" // conteo físico: fija cantidad absoluta
)

// Tipos generados al anular un movimiento.
const (
	MovementReversalOfEntry MovementKind = "reversal_of_entry"
	MovementReversalOfExit  MovementKind = "reversal_of_exit"
	MovementReversalGeneric MovementKind = "reversal_generic"
)

// SystemActor actor por defecto cuando la operación no viene de un usuario identificado.
const SystemActor = "system"

// IsUserKind indica si el tipo puede registrarse desde ApplyMovement.
func (k MovementKind) IsUserKind() bool {
	switch k {
	case MovementEntry, MovementExit, MovementAdjustment, MovementInventoryCount:
		return true
	}
	return false
}

// IsAbsolute indica si Quantity es la cantidad final y no un delta.
func (k MovementKind) IsAbsolute() bool {
	return k == MovementAdjustment || k == MovementInventoryCount
}

// IsReversal indica si el tipo fue generado por una anulación.
func (k MovementKind) IsReversal() bool {
	switch k {
	case MovementReversalOfEntry, MovementReversalOfExit, MovementReversalGeneric:
		return true
	}
	return false
}

// Movement registro inmutable de un cambio de cantidad de un producto.
// Quantity es la magnitud tal como la ingresó el usuario (o la cantidad final en ajustes).
type Movement struct {
	ID             string       `db:"id"`
	ProductID      string       `db:"product_id"`
	Kind           MovementKind `db:"kind"`
	Quantity       int          `db:"quantity"`
	QuantityBefore *int         `db:"quantity_before"`
	QuantityAfter  *int         `db:"quantity_after"`
	Reason         string       `db:"reason"`
	Actor          string       `db:"actor"`
	DocumentRef    string       `db:"document_ref"`
	CreatedAt      time.Time    `db:"created_at"`
}

// MovementView movimiento con datos del producto y su categoría.
type MovementView struct {
	Movement
	ProductReference *string `db:"product_reference"`
	ProductName      *string `db:"product_name"`
	CategoryName     *string `db:"category_name"`
}

// MovementDetail movimiento con el stock actual y umbral del producto.
type MovementDetail struct {
	Movement
	ProductReference string `db:"product_reference"`
	ProductName      string `db:"product_name"`
	CurrentStock     int    `db:"current_stock"`
	MinThreshold     int    `db:"min_threshold"`
}
