package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*repository.Category, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	c, ok := r.conn.categories[id]
	if !ok {
		return nil, fmt.Errorf("memory: get category %q: %w", id, repository.ErrNotFound)
	}
	c = cloneCategory(c)
	return &c, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*repository.Category, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	for _, id := range sortedIDs(r.conn.categories) {
		if c := r.conn.categories[id]; c.Name == name {
			c = cloneCategory(c)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("memory: get category by name %q: %w", name, repository.ErrNotFound)
}

func (r *categoryRepo) List(ctx context.Context) ([]repository.Category, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	out := make([]repository.Category, 0, len(r.conn.categories))
	for _, id := range sortedIDs(r.conn.categories) {
		out = append(out, cloneCategory(r.conn.categories[id]))
	}
	return out, nil
}

func (r *categoryRepo) Create(ctx context.Context, c repository.Category) (*repository.Category, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	for _, existing := range r.conn.categories {
		if existing.Name == c.Name {
			return nil, fmt.Errorf("memory: create category %q: %w", c.Name, repository.ErrConflict)
		}
	}
	c.ID = r.conn.newID()
	r.conn.categories[c.ID] = cloneCategory(c)
	c = cloneCategory(c)
	return &c, nil
}

func (r *categoryRepo) UpdateName(ctx context.Context, id, name string) (int64, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	c, ok := r.conn.categories[id]
	if !ok || c.Name == name {
		return 0, nil
	}
	c.Name = name
	r.conn.categories[id] = c
	return 1, nil
}

func (r *categoryRepo) AddProductRef(ctx context.Context, categoryIDs []string, productID string) (int64, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	var modified int64
	for _, id := range categoryIDs {
		c, ok := r.conn.categories[id]
		if !ok || slices.Contains(c.ProductIDs, productID) {
			continue
		}
		c.ProductIDs = append(append([]string(nil), c.ProductIDs...), productID)
		r.conn.categories[id] = c
		modified++
	}
	return modified, nil
}

func (r *categoryRepo) DeleteAll(ctx context.Context) error {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	r.conn.categories = make(map[string]repository.Category)
	return nil
}
