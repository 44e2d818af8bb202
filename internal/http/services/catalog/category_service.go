package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// CategoryService define las operaciones de categorías del catálogo.
type CategoryService interface {
	// GetByName busca una categoría por nombre exacto.
	GetByName(ctx context.Context, backend, name string) (*repository.Category, error)

	// List retorna todas las categorías del backend.
	List(ctx context.Context, backend string) ([]repository.Category, error)

	// Create crea una categoría nueva.
	Create(ctx context.Context, backend, name string) (*repository.Category, error)

	// Rename renombra una categoría y propaga el cambio a las copias
	// desnormalizadas vía el sincronizador. Retorna la cantidad de
	// productos cuya copia embebida fue reescrita.
	Rename(ctx context.Context, backend, id, newName string) (int64, error)
}

type categoryService struct {
	res *resolver
}

// NewCategoryService crea el service de categorías.
func NewCategoryService(res *resolver) CategoryService {
	return &categoryService{res: res}
}

const componentCategories = "catalog.categories"

func (s *categoryService) GetByName(ctx context.Context, backend, name string) (*repository.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}
	return b.Categories().GetByName(ctx, name)
}

func (s *categoryService) List(ctx context.Context, backend string) ([]repository.Category, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentCategories),
		logger.Op("List"),
		logger.Backend(backend),
	)

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	categories, err := b.Categories().List(ctx)
	if err != nil {
		log.Error("failed to list categories", logger.Err(err))
		return nil, err
	}

	log.Debug("categories listed", logger.Count(len(categories)))
	return categories, nil
}

func (s *categoryService) Create(ctx context.Context, backend, name string) (*repository.Category, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentCategories),
		logger.Op("Create"),
		logger.Backend(backend),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	b, _, err := s.res.resolve(backend)
	if err != nil {
		return nil, err
	}

	created, err := b.Categories().Create(ctx, repository.Category{Name: name})
	if err != nil {
		log.Error("failed to create category", logger.Name(name), logger.Err(err))
		return nil, err
	}

	log.Info("category created", logger.CategoryID(created.ID), logger.Name(created.Name))
	return created, nil
}

func (s *categoryService) Rename(ctx context.Context, backend, id, newName string) (int64, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentCategories),
		logger.Op("Rename"),
		logger.Backend(backend),
		logger.CategoryID(id),
	)

	if strings.TrimSpace(id) == "" {
		return 0, ErrIDRequired
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrNameRequired
	}

	b, sync, err := s.res.resolve(backend)
	if err != nil {
		return 0, err
	}

	// 404 si la categoría no existe; después de esto, un update que
	// modifique cero registros es clase 500, no un not found.
	if _, err := b.Categories().GetByID(ctx, id); err != nil {
		return 0, fmt.Errorf("rename category: %w", err)
	}

	rewritten, err := sync.CategoryRenamed(ctx, id, newName)
	if err != nil {
		log.Error("rename failed", logger.Err(err))
		return 0, err
	}

	log.Info("category renamed", logger.Name(newName), logger.Modified(rewritten))
	return rewritten, nil
}

var _ CategoryService = (*categoryService)(nil)
