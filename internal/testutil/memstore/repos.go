package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ── Categorías ──────────────────────────────────────────────────────────────

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.s.st.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.categories {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.st.categories))
	for _, c := range r.s.st.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Proveedores ─────────────────────────────────────────────────────────────

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ s *Store }

func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sup.CreatedAt.IsZero() {
		sup.CreatedAt = time.Now()
	}
	r.s.st.suppliers[sup.ID] = *sup
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.st.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.st.suppliers))
	for _, sup := range r.s.st.suppliers {
		sup := sup
		out = append(out, &sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SupplierRepo) CountProducts(_ context.Context, supplierID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.st.countSupplierProducts(supplierID), nil
}

func (r *SupplierRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.suppliers[id]; !ok {
		return false, nil
	}
	// FK products.supplier_id ON DELETE RESTRICT
	if r.s.st.countSupplierProducts(id) > 0 {
		return false, domain.ErrReferentialIntegrity
	}
	delete(r.s.st.suppliers, id)
	return true, nil
}

func (st *state) countSupplierProducts(supplierID string) int {
	n := 0
	for _, p := range st.products {
		if p.SupplierID != nil && *p.SupplierID == supplierID {
			n++
		}
	}
	return n
}

// ── Productos ───────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.products {
		if existing.Reference == p.Reference {
			return domain.ErrDuplicate
		}
	}
	if p.CategoryID != nil {
		if _, ok := r.s.st.categories[*p.CategoryID]; !ok {
			return domain.ErrReferentialIntegrity
		}
	}
	if p.SupplierID != nil {
		if _, ok := r.s.st.suppliers[*p.SupplierID]; !ok {
			return domain.ErrReferentialIntegrity
		}
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	r.s.st.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate en memoria equivale a GetByID; el TxRunner serializa las transacciones.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByReference(_ context.Context, reference string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.st.products {
		if p.Reference == reference {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) GetView(_ context.Context, id string) (*entity.ProductView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return nil, nil
	}
	return r.s.st.view(p), nil
}

func (r *ProductRepo) ListViews(_ context.Context, search string) ([]*entity.ProductView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entity.ProductView, 0, len(r.s.st.products))
	for _, p := range r.s.st.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Reference), term) {
			continue
		}
		out = append(out, r.s.st.view(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ProductRepo) UpdateQuantity(_ context.Context, id string, quantity int, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.st.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	// CHECK (quantity >= 0)
	if quantity < 0 {
		return domain.ErrInsufficientStock
	}
	p.Quantity = quantity
	p.UpdatedAt = at
	r.s.st.products[id] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.products[id]; !ok {
		return false, nil
	}
	delete(r.s.st.products, id)
	// FK movements.product_id ON DELETE CASCADE
	kept := r.s.st.movements[:0]
	for _, m := range r.s.st.movements {
		if m.ProductID != id {
			kept = append(kept, m)
		}
	}
	r.s.st.movements = kept
	return true, nil
}

func (st *state) view(p entity.Product) *entity.ProductView {
	v := &entity.ProductView{
		ID:            p.ID,
		Reference:     p.Reference,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		Quantity:      p.Quantity,
		MinThreshold:  p.MinThreshold,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.CategoryID != nil {
		if c, ok := st.categories[*p.CategoryID]; ok {
			name, color := c.Name, c.Color
			v.CategoryName, v.CategoryColor = &name, &color
		}
	}
	if p.SupplierID != nil {
		if sup, ok := st.suppliers[*p.SupplierID]; ok {
			name := sup.Name
			v.SupplierName = &name
		}
	}
	return v
}

// ── Movimientos ─────────────────────────────────────────────────────────────

// MovementRepo implementa repository.MovementRepository.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailMovementCreate != nil {
		return r.s.FailMovementCreate
	}
	if _, ok := r.s.st.products[m.ProductID]; !ok {
		return domain.ErrReferentialIntegrity
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.st.movements = append(r.s.st.movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.movements {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) GetDetail(_ context.Context, id string) (*entity.MovementDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.st.movements {
		if m.ID != id {
			continue
		}
		p := r.s.st.products[m.ProductID]
		return &entity.MovementDetail{
			Movement:         m,
			ProductReference: p.Reference,
			ProductName:      p.Name,
			CurrentStock:     p.Quantity,
			MinThreshold:     p.MinThreshold,
		}, nil
	}
	return nil, nil
}

func (r *MovementRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.st.movements {
		if m.ID == id {
			r.s.st.movements = append(r.s.st.movements[:i], r.s.st.movements[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ── Usuarios ────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.s.st.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.st.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}
