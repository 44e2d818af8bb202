// Package denorm implementa el sincronizador de desnormalización del
// catálogo: mantiene las copias embebidas {id, nombre} de categorías en
// productos y las colecciones de referencias inversas consistentes con
// el registro autoritativo de cada categoría.
//
// El almacenamiento no garantiza nada de esto. No hay transacciones ni
// locks: cada operación es una secuencia de dos escrituras con semántica
// documentada para la ventana entre ambas.
package denorm

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

var (
	// ErrNoChange indica que el update autoritativo modificó cero
	// registros cuando debía modificar exactamente uno. Es una
	// violación de supuestos, no un error del cliente.
	ErrNoChange = errors.New("denorm: authoritative update modified zero records")

	// ErrNoCategories indica un conjunto de categorías vacío.
	ErrNoCategories = errors.New("denorm: product needs at least one category")

	// ErrUnknownCategory indica un id de categoría que no resuelve a
	// ninguna categoría existente.
	ErrUnknownCategory = errors.New("denorm: unknown category")
)

// Synchronizer ejecuta las secuencias de dos pasos sobre un backend.
// Recibe los repositorios en forma explícita; una instancia por backend.
type Synchronizer struct {
	backend    string
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// New crea un sincronizador para el backend indicado.
func New(backend string, categories repository.CategoryRepository, products repository.ProductRepository) *Synchronizer {
	return &Synchronizer{backend: backend, categories: categories, products: products}
}

// CategoryRenamed propaga un renombre de categoría en dos pasos:
// primero el nombre autoritativo, después las copias embebidas en los
// productos que la referencian.
//
// El paso 1 tiene que modificar exactamente un registro; si modifica
// cero, la operación falla con ErrNoChange y el paso 2 no corre. El
// paso 2 es best-effort: el renombre autoritativo ya está confirmado,
// así que una falla acá se loguea y no se propaga. Retorna la cantidad
// de productos cuya copia embebida fue reescrita (informativo).
func (s *Synchronizer) CategoryRenamed(ctx context.Context, categoryID, newName string) (int64, error) {
	modified, err := s.categories.UpdateName(ctx, categoryID, newName)
	if err != nil {
		return 0, fmt.Errorf("denorm: rename category %s: %w", categoryID, err)
	}
	if modified != 1 {
		return 0, fmt.Errorf("denorm: rename category %s: %w", categoryID, ErrNoChange)
	}

	rewritten, err := s.products.RenameCategoryRefs(ctx, categoryID, newName)
	if err != nil {
		logger.From(ctx).Warn("falló la reescritura de copias embebidas",
			logger.Backend(s.backend),
			logger.CategoryID(categoryID),
			logger.Err(err),
		)
		return 0, nil
	}

	recordRefRewrites(s.backend, rewritten)
	logger.From(ctx).Debug("copias embebidas reescritas",
		logger.Backend(s.backend),
		logger.CategoryID(categoryID),
		logger.Modified(rewritten),
	)
	return rewritten, nil
}

// ResolveCategories resuelve cada id al par {id, nombre} autoritativo
// vigente. El conjunto no puede ser vacío y todos los ids tienen que
// existir: ante el primero desconocido se aborta completa (reject-all),
// sin haber escrito nada. Los ids repetidos se resuelven una sola vez.
func (s *Synchronizer) ResolveCategories(ctx context.Context, categoryIDs []string) ([]repository.CategoryRef, error) {
	if len(categoryIDs) == 0 {
		return nil, ErrNoCategories
	}

	seen := make(map[string]struct{}, len(categoryIDs))
	refs := make([]repository.CategoryRef, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		c, err := s.categories.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, id)
			}
			return nil, fmt.Errorf("denorm: resolve category %s: %w", id, err)
		}
		refs = append(refs, repository.CategoryRef{ID: c.ID, Name: c.Name})
	}
	return refs, nil
}

// AttachProduct agrega el id del producto a la colección de referencias
// inversas de cada categoría, con semántica de conjunto. Es
// fire-and-forget respecto de la respuesta al cliente: el producto ya
// está confirmado, una falla acá se loguea y se cuenta pero no se
// propaga ni se reintenta.
func (s *Synchronizer) AttachProduct(ctx context.Context, categoryIDs []string, productID string) {
	modified, err := s.categories.AddProductRef(ctx, categoryIDs, productID)
	if err != nil {
		recordReverseRefFailure(s.backend)
		logger.From(ctx).Warn("falló el alta de referencias inversas",
			logger.Backend(s.backend),
			logger.ProductID(productID),
			logger.Err(err),
		)
		return
	}
	logger.From(ctx).Debug("referencias inversas actualizadas",
		logger.Backend(s.backend),
		logger.ProductID(productID),
		logger.Modified(modified),
	)
}
