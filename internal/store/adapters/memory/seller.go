package memory

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.SellerRepository = (*sellerRepo)(nil)

func (r *sellerRepo) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	s, ok := r.conn.sellers[id]
	if !ok {
		return nil, fmt.Errorf("memory: get seller %q: %w", id, repository.ErrNotFound)
	}
	return &s, nil
}

func (r *sellerRepo) FindByFirstName(ctx context.Context, firstName string) ([]repository.Seller, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	var out []repository.Seller
	for _, id := range sortedIDs(r.conn.sellers) {
		if s := r.conn.sellers[id]; s.Profile.FirstName == firstName {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *sellerRepo) List(ctx context.Context) ([]repository.Seller, error) {
	r.conn.mu.RLock()
	defer r.conn.mu.RUnlock()

	out := make([]repository.Seller, 0, len(r.conn.sellers))
	for _, id := range sortedIDs(r.conn.sellers) {
		out = append(out, r.conn.sellers[id])
	}
	return out, nil
}

func (r *sellerRepo) Create(ctx context.Context, s repository.Seller) (*repository.Seller, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	for _, existing := range r.conn.sellers {
		if existing.AccountID == s.AccountID {
			return nil, fmt.Errorf("memory: create seller %q: %w", s.AccountID, repository.ErrConflict)
		}
	}
	s.ID = r.conn.newID()
	r.conn.sellers[s.ID] = s
	return &s, nil
}

func (r *sellerRepo) Update(ctx context.Context, s repository.Seller) (int64, error) {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	cur, ok := r.conn.sellers[s.ID]
	if !ok || cur == s {
		return 0, nil
	}
	r.conn.sellers[s.ID] = s
	return 1, nil
}

func (r *sellerRepo) DeleteAll(ctx context.Context) error {
	r.conn.mu.Lock()
	defer r.conn.mu.Unlock()

	r.conn.sellers = make(map[string]repository.Seller)
	return nil
}
