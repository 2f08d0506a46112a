// Package inventory holds the authoritative product catalog and is the only
// place stock counts are mutated.
package inventory

import (
	"sort"
	"sync"

	"storefront/internal/models"
)

// Reservation is one requested stock decrement within a multi-line order.
type Reservation struct {
	ProductID string
	Quantity  int
}

// Registry maps product ids to catalog entries. All stock mutation flows
// through adjustLocked, under the registry lock, so a sufficiency check and
// its decrement are one atomic unit.
type Registry struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

func NewRegistry() *Registry {
	return &Registry{products: make(map[string]*models.Product)}
}

// Register adds or replaces a product. Re-registering an id overwrites the
// previous entry.
func (r *Registry) Register(p *models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

// Remove deletes a product. Returns false if the id is unknown.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false
	}
	delete(r.products, id)
	return true
}

// Get returns the product with the given id, or nil.
func (r *Registry) Get(id string) *models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.products[id]
}

// List returns all products ordered by id.
func (r *Registry) List() []*models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByCategory returns the products in one category, ordered by id.
func (r *Registry) ListByCategory(c models.Category) []*models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Product
	for _, p := range r.products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasStock reports whether the product exists and has at least qty in stock.
func (r *Registry) HasStock(id string, qty int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.products[id]
	return p != nil && p.Stock >= qty
}

// Adjust applies a stock delta. A negative delta fails without mutation when
// stock is insufficient; an unknown id always fails.
func (r *Registry) Adjust(id string, delta int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adjustLocked(id, delta)
}

func (r *Registry) adjustLocked(id string, delta int) bool {
	p := r.products[id]
	if p == nil {
		return false
	}
	if delta < 0 && p.Stock < -delta {
		return false
	}
	p.Stock += delta
	return true
}

// Reserve decrements stock for every requested line as one transactional
// attempt. If any line cannot be satisfied, the deltas already applied are
// reversed in reverse order and no stock changes. Duplicate product ids are
// treated as independent sequential decrements against the same pool.
func (r *Registry) Reserve(reqs []Reservation) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, req := range reqs {
		if !r.adjustLocked(req.ProductID, -req.Quantity) {
			for j := i - 1; j >= 0; j-- {
				r.adjustLocked(reqs[j].ProductID, reqs[j].Quantity)
			}
			return false
		}
	}
	return true
}
