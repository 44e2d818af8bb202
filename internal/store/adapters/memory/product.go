package memory

import (
	"context"
	"fmt"
	"reflect"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	p, ok := r.conn.products[id]
	if !ok {
		return nil, fmt.Errorf("memory: get product %q: %w", id, repository.ErrNotFound)
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*repository.Product, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	for _, id := range sortedIDs(r.conn.products) {
		if p := r.conn.products[id]; p.Name == name {
			p = cloneProduct(p)
			return &p, nil
		}
	}
	return nil, fmt.Errorf("memory: get product by name %q: %w", name, repository.ErrNotFound)
}

func (r *productRepo) List(ctx context.Context) ([]repository.Product, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	out := make([]repository.Product, 0, len(r.conn.products))
	for _, id := range sortedIDs(r.conn.products) {
		out = append(out, cloneProduct(r.conn.products[id]))
	}
	return out, nil
}

func (r *productRepo) Create(ctx context.Context, p repository.Product) (*repository.Product, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	p.ID = r.conn.newID()
	r.conn.products[p.ID] = cloneProduct(p)
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, p repository.Product) (int64, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	cur, ok := r.conn.products[p.ID]
	if !ok {
		return 0, nil
	}
	next := cloneProduct(p)
	if reflect.DeepEqual(cur, next) {
		return 0, nil
	}
	r.conn.products[p.ID] = next
	return 1, nil
}

func (r *productRepo) RenameCategoryRefs(ctx context.Context, categoryID, newName string) (int64, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	var modified int64
	for id, p := range r.conn.products {
		changed := false
		for i, ref := range p.Categories {
			if ref.ID == categoryID && ref.Name != newName {
				refs := append([]repository.CategoryRef(nil), p.Categories...)
				refs[i].Name = newName
				p.Categories = refs
				changed = true
			}
		}
		if changed {
			r.conn.products[id] = p
			modified++
		}
	}
	return modified, nil
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	r.conn.products = make(map[string]repository.Product)
	return nil
}
