package entity

import "time"

// DefaultCategoryColor color asignado cuando no se indica uno.
const DefaultCategoryColor = "#3B82F6"

// Category agrupa productos. El nombre es único.
type Category struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Color     string    `db:"color"` // hex, ej. #FF6B6B
	CreatedAt time.Time `db:"created_at"`
}
