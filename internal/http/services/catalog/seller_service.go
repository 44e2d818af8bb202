package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// SellerInput es la entrada normalizada para crear o actualizar un
// vendedor. El perfil viaja completo: no hay updates parciales.
type SellerInput struct {
	ID        string
	AccountID string
	Profile   repository.Profile
}

// SellerService define las operaciones de vendedores del catálogo.
type SellerService interface {
	// FindByFirstName retorna los vendedores cuyo perfil tiene ese
	// primer nombre. Retorna ErrNotFound si ninguno coincide.
	FindByFirstName(ctx context.Context, backend, firstName string) ([]repository.Seller, error)

	// List retorna todos los vendedores del backend.
	List(ctx context.Context, backend string) ([]repository.Seller, error)

	// Create crea un vendedor con su perfil embebido.
	Create(ctx context.Context, backend string, in SellerInput) (*repository.Seller, error)

	// Update reemplaza account id y perfil del vendedor.
	Update(ctx context.Context, backend string, in SellerInput) (*repository.Seller, error)
}

type sellerService struct {
	res *resolver
}

// NewSellerService crea el service de vendedores.
func NewSellerService(res *resolver) SellerService {
	return &sellerService{res: res}
}

const componentSellers = "catalog.sellers"

func (s *sellerService) FindByFirstName(ctx context.Context, backend, firstName string) ([]repository.Seller, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, ErrNameRequired
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	sellers, err := b.Sellers().FindByFirstName(ctx, firstName)
	if err != nil {
		return nil, err
	}
	if len(sellers) == 0 {
		return nil, fmt.Errorf("sellers named %q: %w", firstName, repository.ErrNotFound)
	}
	return sellers, nil
}

func (s *sellerService) List(ctx context.Context, backend string) ([]repository.Seller, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentSellers),
		logger.Op("List"),
		logger.Backend(backend),
	)

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	sellers, err := b.Sellers().List(ctx)
	if err != nil {
		log.Error("failed to list sellers", logger.Err(err))
		return nil, err
	}

	log.Debug("sellers listed", logger.Count(len(sellers)))
	return sellers, nil
}

func (s *sellerService) Create(ctx context.Context, backend string, in SellerInput) (*repository.Seller, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentSellers),
		logger.Op("Create"),
		logger.Backend(backend),
	)

	if err := validateSellerInput(in); err != nil {
		return nil, err
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	created, err := b.Sellers().Create(ctx, repository.Seller{
		AccountID: strings.TrimSpace(in.AccountID),
		Profile:   in.Profile,
	})
	if err != nil {
		log.Error("failed to create seller", logger.Err(err))
		return nil, err
	}

	log.Info("seller created", logger.ID(created.ID), logger.String("account_id", created.AccountID))
	return created, nil
}

func (s *sellerService) Update(ctx context.Context, backend string, in SellerInput) (*repository.Seller, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentSellers),
		logger.Op("Update"),
		logger.Backend(backend),
		logger.ID(in.ID),
	)

	if strings.TrimSpace(in.ID) == "" {
		return nil, ErrIDRequired
	}
	if err := validateSellerInput(in); err != nil {
		return nil, err
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	if _, err := b.Sellers().GetByID(ctx, in.ID); err != nil {
		return nil, fmt.Errorf("update seller: %w", err)
	}

	updated := repository.Seller{
		ID:        in.ID,
		AccountID: strings.TrimSpace(in.AccountID),
		Profile:   in.Profile,
	}

	modified, err := b.Sellers().Update(ctx, updated)
	if err != nil {
		log.Error("failed to update seller", logger.Err(err))
		return nil, err
	}
	if modified == 0 {
		log.Error("update matched zero records", logger.Modified(modified))
		return nil, fmt.Errorf("update seller %s: %w", in.ID, ErrNoEffect)
	}

	log.Info("seller updated", logger.Modified(modified))
	return &updated, nil
}

func validateSellerInput(in SellerInput) error {
	if strings.TrimSpace(in.AccountID) == "" {
		return ErrAccountIDRequired
	}
	if in.Profile.Gender != "" && !in.Profile.Gender.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGender, in.Profile.Gender)
	}
	return nil
}

var _ SellerService = (*sellerService)(nil)
