package entity

import "time"

// Supplier proveedor de productos. No se puede eliminar mientras un producto lo referencie.
type Supplier struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}
