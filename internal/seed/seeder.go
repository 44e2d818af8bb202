// Package seed deja ambos backends en el estado demostrativo conocido:
// borra todo y vuelve a crear vendedores, categorías y productos. Los
// productos pasan por el sincronizador igual que en los handlers, así
// las referencias inversas quedan pobladas exactamente como las
// producirían las escrituras reales.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/mercadito/internal/denorm"
	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/store"
)

// Seeder resiembra los backends registrados en el DAL.
type Seeder struct {
	dal store.DataAccessLayer
}

// New crea el seeder.
func New(dal store.DataAccessLayer) *Seeder {
	return &Seeder{dal: dal}
}

// Run siembra todos los backends en paralelo. Si alguno falla, el
// contexto del grupo cancela a los demás y se retorna el primer error.
func (s *Seeder) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, name := range s.dal.Backends() {
		b, err := s.dal.ForBackend(name)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return s.seedBackend(ctx, b)
		})
	}

	return g.Wait()
}

func (s *Seeder) seedBackend(ctx context.Context, b store.BackendAccess) error {
	log := logger.From(ctx).With(
		logger.Component("seed"),
		logger.Backend(b.Name()),
	)
	set := fixturesFor(b.Name())

	// Borrado en orden inverso a las referencias: productos primero,
	// después categorías, por último vendedores.
	if err := b.Products().DeleteAll(ctx); err != nil {
		return fmt.Errorf("seed %s: delete products: %w", b.Name(), err)
	}
	if err := b.Categories().DeleteAll(ctx); err != nil {
		return fmt.Errorf("seed %s: delete categories: %w", b.Name(), err)
	}
	if err := b.Sellers().DeleteAll(ctx); err != nil {
		return fmt.Errorf("seed %s: delete sellers: %w", b.Name(), err)
	}

	sellerIDs := make(map[string]string, len(set.sellers))
	for _, f := range set.sellers {
		created, err := b.Sellers().Create(ctx, repository.Seller{
			AccountID: f.accountID,
			Profile:   f.profile,
		})
		if err != nil {
			return fmt.Errorf("seed %s: create seller %s: %w", b.Name(), f.accountID, err)
		}
		sellerIDs[f.accountID] = created.ID
	}

	categoryIDs := make(map[string]string, len(set.categories))
	for _, name := range set.categories {
		created, err := b.Categories().Create(ctx, repository.Category{Name: name})
		if err != nil {
			return fmt.Errorf("seed %s: create category %s: %w", b.Name(), name, err)
		}
		categoryIDs[name] = created.ID
	}

	// Los productos pasan por el mismo camino resolver -> crear ->
	// adjuntar que usan los services.
	sync := denorm.New(b.Name(), b.Categories(), b.Products())
	for _, f := range set.products {
		ids := make([]string, 0, len(f.categories))
		for _, name := range f.categories {
			ids = append(ids, categoryIDs[name])
		}

		refs, err := sync.ResolveCategories(ctx, ids)
		if err != nil {
			return fmt.Errorf("seed %s: resolve categories for %s: %w", b.Name(), f.name, err)
		}

		seller, err := b.Sellers().GetByID(ctx, sellerIDs[f.sellerAccount])
		if err != nil {
			return fmt.Errorf("seed %s: resolve seller for %s: %w", b.Name(), f.name, err)
		}

		created, err := b.Products().Create(ctx, repository.Product{
			Name:        f.name,
			Description: f.description,
			Price:       f.price,
			ImageURLs:   f.imageURLs,
			SellerID:    seller.ID,
			Seller:      seller,
			Categories:  refs,
		})
		if err != nil {
			return fmt.Errorf("seed %s: create product %s: %w", b.Name(), f.name, err)
		}

		sync.AttachProduct(ctx, ids, created.ID)
	}

	log.Info("backend seeded",
		logger.Int("sellers", len(set.sellers)),
		logger.Int("categories", len(set.categories)),
		logger.Int("products", len(set.products)),
	)
	return nil
}
