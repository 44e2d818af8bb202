package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	"github.com/dropDatabas3/mercadito/internal/http/httperrors"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// CategoryController expone las operaciones HTTP sobre categorías.
type CategoryController struct {
	svc svc.CategoryService
}

// NewCategoryController crea el controller de categorías.
func NewCategoryController(s svc.CategoryService) *CategoryController {
	return &CategoryController{svc: s}
}

// GetByName maneja GET /category/{backend}?name=...
func (c *CategoryController) GetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	name := r.URL.Query().Get("name")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("CategoryController.GetByName"),
		logger.Backend(backend),
	)

	cat, err := c.svc.GetByName(ctx, backend, name)
	if err != nil {
		log.Warn("get category failed", logger.Name(name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrCategoryNotFound))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toCategoryResponse(*cat))
}

// List maneja GET /category/all/{backend}.
func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("CategoryController.List"),
		logger.Backend(backend),
	)

	cats, err := c.svc.List(ctx, backend)
	if err != nil {
		log.Error("list categories failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrCategoryNotFound))
		return
	}

	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResponse(cat))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Create maneja POST /category/{backend}.
func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("CategoryController.Create"),
		logger.Backend(backend),
	)

	var req dto.CreateCategoryRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	cat, err := c.svc.Create(ctx, backend, req.Name)
	if err != nil {
		log.Error("create category failed", logger.Name(req.Name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrCategoryNotFound))
		return
	}

	log.Info("category created", logger.CategoryID(cat.ID), logger.Name(cat.Name))
	helpers.WriteJSON(w, http.StatusOK, toCategoryResponse(*cat))
}

// Update maneja PUT /category/{backend}. Renombra la categoría y
// propaga el nombre a las copias embebidas en productos.
func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("CategoryController.Update"),
		logger.Backend(backend),
	)

	var req dto.UpdateCategoryRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	rewritten, err := c.svc.Rename(ctx, backend, req.ID, req.Name)
	if err != nil {
		log.Error("rename category failed",
			logger.CategoryID(req.ID), logger.Name(req.Name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrCategoryNotFound))
		return
	}

	log.Info("category renamed",
		logger.CategoryID(req.ID), logger.Name(req.Name), logger.Modified(rewritten))
	helpers.WriteMessage(w, http.StatusOK, "Categoría actualizada correctamente.")
}

// ─────────────────────────────── Helpers ───────────────────────────────

func toCategoryResponse(c repository.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		ProductIDs: c.ProductIDs,
	}
}
