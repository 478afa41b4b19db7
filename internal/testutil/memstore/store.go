// Package memstore implementa los puertos de repositorio en memoria para tests de casos de uso.
// Reproduce las restricciones del esquema SQL (únicos, FKs, cascada de movimientos) y
// ofrece un TxRunner con rollback real sobre una copia del estado.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

type state struct {
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	products   map[string]entity.Product
	movements  []entity.Movement // orden de inserción
	users      map[string]entity.User
}

func newState() *state {
	return &state{
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		products:   map[string]entity.Product{},
		users:      map[string]entity.User{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	c.movements = append([]entity.Movement(nil), s.movements...)
	return c
}

// Store base de datos en memoria. Seguro para uso concurrente.
type Store struct {
	mu sync.Mutex
	st *state

	// FailMovementCreate, si no es nil, lo devuelve MovementRepo.Create (simula fallo del INSERT).
	FailMovementCreate error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Categories repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

// Products repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Movements repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Reports repositorio de consultas.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// MovementCount número de movimientos almacenados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.movements)
}

// AllMovements copia de los movimientos en orden de inserción.
func (s *Store) AllMovements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.st.movements...)
}

// TxRunner ejecuta fn sobre los repositorios del Store; si fn falla restaura el estado previo.
// Serializa las transacciones, equivalente al bloqueo de fila del producto.
type TxRunner struct {
	s     *Store
	txMu  sync.Mutex
	Calls int
}

// NewTxRunner crea el TxRunner en memoria.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn en una "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(repository.MovementRepository, repository.ProductRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	r.Calls++

	r.s.mu.Lock()
	snapshot := r.s.st.clone()
	r.s.mu.Unlock()

	if err := fn(r.s.Movements(), r.s.Products()); err != nil {
		r.s.mu.Lock()
		r.s.st = snapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}
