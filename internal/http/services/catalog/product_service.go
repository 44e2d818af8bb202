package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// ProductInput es la entrada normalizada para crear o actualizar un
// producto. Las categorías llegan como ids; los pares {id, nombre}
// embebidos los resuelve el sincronizador, nunca el cliente.
type ProductInput struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURLs   []string
	SellerID    string
	CategoryIDs []string
}

// ProductService define las operaciones de productos del catálogo.
type ProductService interface {
	// GetByName busca un producto por nombre exacto.
	GetByName(ctx context.Context, backend, name string) (*repository.Product, error)

	// List retorna todos los productos del backend.
	List(ctx context.Context, backend string) ([]repository.Product, error)

	// Create crea un producto con sus membresías resueltas y dispara
	// el alta de referencias inversas.
	Create(ctx context.Context, backend string, in ProductInput) (*repository.Product, error)

	// Update reemplaza los campos del producto y repite la resolución
	// de membresías.
	Update(ctx context.Context, backend string, in ProductInput) (*repository.Product, error)
}

type productService struct {
	res *resolver
}

// NewProductService crea el service de productos.
func NewProductService(res *resolver) ProductService {
	return &productService{res: res}
}

const componentProducts = "catalog.products"

func (s *productService) GetByName(ctx context.Context, backend, name string) (*repository.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}
	return b.Products().GetByName(ctx, name)
}

func (s *productService) List(ctx context.Context, backend string) ([]repository.Product, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentProducts),
		logger.Op("List"),
		logger.Backend(backend),
	)

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	products, err := b.Products().List(ctx)
	if err != nil {
		log.Error("failed to list products", logger.Err(err))
		return nil, err
	}

	log.Debug("products listed", logger.Count(len(products)))
	return products, nil
}

func (s *productService) Create(ctx context.Context, backend string, in ProductInput) (*repository.Product, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentProducts),
		logger.Op("Create"),
		logger.Backend(backend),
	)

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.SellerID) == "" {
		return nil, ErrSellerRequired
	}

	b, sync, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	// Resolución referencial completa antes de escribir nada: vendedor
	// y categorías tienen que existir o se rechaza todo.
	seller, err := b.Sellers().GetByID(ctx, in.SellerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeller, in.SellerID)
		}
		return nil, fmt.Errorf("resolve seller %s: %w", in.SellerID, err)
	}

	refs, err := sync.ResolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	created, err := b.Products().Create(ctx, repository.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURLs:   in.ImageURLs,
		SellerID:    seller.ID,
		Seller:      seller,
		Categories:  refs,
	})
	if err != nil {
		log.Error("failed to create product", logger.Name(in.Name), logger.Err(err))
		return nil, err
	}

	// El producto ya está confirmado; las referencias inversas son
	// fire-and-forget.
	sync.AttachProduct(ctx, refIDs(refs), created.ID)

	log.Info("product created", logger.ProductID(created.ID), logger.Name(created.Name))
	return created, nil
}

func (s *productService) Update(ctx context.Context, backend string, in ProductInput) (*repository.Product, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentProducts),
		logger.Op("Update"),
		logger.Backend(backend),
		logger.ProductID(in.ID),
	)

	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIDRequired
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(in.SellerID) == "" {
		return nil, ErrSellerRequired
	}

	b, sync, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	if _, err := b.Products().GetByID(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	seller, err := b.Sellers().GetByID(ctx, in.SellerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeller, in.SellerID)
		}
		return nil, fmt.Errorf("resolve seller %s: %w", in.SellerID, err)
	}

	refs, err := sync.ResolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	updated := repository.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURLs:   in.ImageURLs,
		SellerID:    seller.ID,
		Seller:      seller,
		Categories:  refs,
	}

	modified, err := b.Products().Update(ctx, updated)
	if err != nil {
		log.Error("failed to update product", logger.Err(err))
		return nil, err
	}
	if modified == 0 {
		log.Error("update matched zero records", logger.Modified(modified))
		return nil, fmt.Errorf("update product %s: %w", in.ID, ErrNoEffect)
	}

	// Las referencias inversas solo crecen: membresías quitadas quedan
	// como referencias obsoletas toleradas.
	sync.AttachProduct(ctx, refIDs(refs), in.ID)

	log.Info("product updated", logger.Name(in.Name), logger.Modified(modified))
	return &updated, nil
}

func refIDs(refs []repository.CategoryRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

var _ ProductService = (*productService)(nil)
