// Package catalog contiene los controllers del API del catálogo.
// Mapean HTTP a services y errores de dominio a respuestas; acá no hay
// lógica de negocio.
package catalog

import (
	"errors"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/mercadito/internal/denorm"
	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/http/httperrors"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/store"
)

// Controllers agrupa los controllers del catálogo.
type Controllers struct {
	Categories *CategoryController
	Products   *ProductController
	Sellers    *SellerController
}

// NewControllers crea los controllers a partir de los services.
func NewControllers(services svc.Services) *Controllers {
	return &Controllers{
		Categories: NewCategoryController(services.Categories),
		Products:   NewProductController(services.Products),
		Sellers:    NewSellerController(services.Sellers),
	}
}

// Register registra las rutas del catálogo. El segmento {backend}
// elige el almacenamiento por request.
func (c *Controllers) Register(r chi.Router) {
	r.Route("/category", func(r chi.Router) {
		r.Get("/all/{backend}", c.Categories.List)
		r.Get("/{backend}", c.Categories.GetByName)
		r.Post("/{backend}", c.Categories.Create)
		r.Put("/{backend}", c.Categories.Update)
	})
	r.Route("/product", func(r chi.Router) {
		r.Get("/all/{backend}", c.Products.List)
		r.Get("/{backend}", c.Products.GetByName)
		r.Post("/{backend}", c.Products.Create)
		r.Put("/{backend}", c.Products.Update)
	})
	r.Route("/seller", func(r chi.Router) {
		r.Get("/all/{backend}", c.Sellers.List)
		r.Get("/{backend}", c.Sellers.GetByName)
		r.Post("/{backend}", c.Sellers.Create)
		r.Put("/{backend}", c.Sellers.Update)
	})
}

// mapError traduce errores de services a AppError. notFound es la
// variante 404 del recurso del controller que llama.
func mapError(err error, notFound *httperrors.AppError) *httperrors.AppError {
	var appErr *httperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, store.ErrUnknownBackend):
		return httperrors.ErrUnknownBackend
	case errors.Is(err, svc.ErrNameRequired),
		errors.Is(err, svc.ErrIDRequired),
		errors.Is(err, svc.ErrAccountIDRequired),
		errors.Is(err, svc.ErrSellerRequired):
		return httperrors.ErrMissingFields.WithDetail(err.Error())
	case errors.Is(err, svc.ErrInvalidGender):
		return httperrors.ErrInvalidParameter.WithDetail(err.Error())
	case errors.Is(err, svc.ErrUnknownSeller):
		return httperrors.ErrUnknownSeller
	case errors.Is(err, denorm.ErrNoCategories):
		return httperrors.ErrNoCategories
	case errors.Is(err, denorm.ErrUnknownCategory):
		return httperrors.ErrUnknownCategory.WithDetail(err.Error())
	case errors.Is(err, denorm.ErrNoChange), errors.Is(err, svc.ErrNoEffect):
		return httperrors.ErrUpdateNoEffect
	case errors.Is(err, repository.ErrConflict):
		return httperrors.ErrAlreadyExists.WithDetail(err.Error())
	case repository.IsNotFound(err):
		return notFound
	default:
		return httperrors.ErrInternalServerError.WithCause(err)
	}
}
