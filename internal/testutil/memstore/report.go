package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementa repository.ReportRepository sobre el Store.
type ReportRepo struct{ s *Store }

func (r *ReportRepo) ListLowStock(_ context.Context) ([]*entity.ProductView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.ProductView, 0)
	for _, p := range r.s.st.products {
		if p.Quantity <= p.MinThreshold {
			out = append(out, r.s.st.view(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ReportRepo) GetStatistics(_ context.Context) (*entity.Statistics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &entity.Statistics{
		TotalProducts: len(r.s.st.products),
		TotalValue:    decimal.Zero,
		SupplierCount: len(r.s.st.suppliers),
		CategoryCount: len(r.s.st.categories),
	}
	for _, p := range r.s.st.products {
		p := p
		stats.TotalValue = stats.TotalValue.Add(p.StockValue())
		if p.IsLowStock() {
			stats.LowStockCount++
		}
		if p.Quantity == 0 {
			stats.OutOfStockCount++
		}
	}
	return stats, nil
}

func (r *ReportRepo) ListMovements(_ context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MovementView, 0)
	// más reciente primero: recorrer en orden inverso de inserción
	for i := len(r.s.st.movements) - 1; i >= 0; i-- {
		m := r.s.st.movements[i]
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Actor != "" && m.Actor != f.Actor {
			continue
		}
		v := &entity.MovementView{Movement: m}
		if p, ok := r.s.st.products[m.ProductID]; ok {
			ref, name := p.Reference, p.Name
			v.ProductReference, v.ProductName = &ref, &name
			if p.CategoryID != nil {
				if c, ok := r.s.st.categories[*p.CategoryID]; ok {
					cn := c.Name
					v.CategoryName = &cn
				}
			}
		}
		out = append(out, v)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (r *ReportRepo) GetTopMovedProducts(_ context.Context, since time.Time, limit int) ([]*entity.TopMovedProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID := map[string]*entity.TopMovedProduct{}
	for _, m := range r.s.st.movements {
		if m.CreatedAt.Before(since) {
			continue
		}
		p, ok := r.s.st.products[m.ProductID]
		if !ok {
			continue
		}
		t, ok := byID[p.ID]
		if !ok {
			t = &entity.TopMovedProduct{ProductID: p.ID, Reference: p.Reference, Name: p.Name}
			if p.CategoryID != nil {
				if c, ok := r.s.st.categories[*p.CategoryID]; ok {
					cn := c.Name
					t.CategoryName = &cn
				}
			}
			byID[p.ID] = t
		}
		t.MovementCount++
		switch m.Kind {
		case entity.MovementEntry:
			t.TotalEntries += m.Quantity
		case entity.MovementExit:
			t.TotalExits += m.Quantity
		}
	}
	out := make([]*entity.TopMovedProduct, 0, len(byID))
	for _, t := range byID {
		t.Balance = t.TotalEntries - t.TotalExits
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MovementCount != out[j].MovementCount {
			return out[i].MovementCount > out[j].MovementCount
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
