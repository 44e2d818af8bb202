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

// ProductController expone las operaciones HTTP sobre productos.
type ProductController struct {
	svc svc.ProductService
}

// NewProductController crea el controller de productos.
func NewProductController(s svc.ProductService) *ProductController {
	return &ProductController{svc: s}
}

// GetByName maneja GET /product/{backend}?name=...
func (c *ProductController) GetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	name := r.URL.Query().Get("name")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ProductController.GetByName"),
		logger.Backend(backend),
	)

	p, err := c.svc.GetByName(ctx, backend, name)
	if err != nil {
		log.Warn("get product failed", logger.Name(name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrProductNotFound))
		return
	}

	helpers.WriteJSON(w, http.StatusOK, toProductResponse(*p))
}

// List maneja GET /product/all/{backend}.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ProductController.List"),
		logger.Backend(backend),
	)

	products, err := c.svc.List(ctx, backend)
	if err != nil {
		log.Error("list products failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrProductNotFound))
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Create maneja POST /product/{backend}. Valida vendedor y categorías
// antes de escribir; si alguna referencia no existe no se persiste nada.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ProductController.Create"),
		logger.Backend(backend),
	)

	var req dto.CreateProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	p, err := c.svc.Create(ctx, backend, svc.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURLs:   req.ImageURLs,
		SellerID:    req.SellerID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		log.Error("create product failed", logger.Name(req.Name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrProductNotFound))
		return
	}

	log.Info("product created", logger.ProductID(p.ID), logger.Name(p.Name))
	helpers.WriteJSON(w, http.StatusOK, toProductResponse(*p))
}

// Update maneja PUT /product/{backend}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("ProductController.Update"),
		logger.Backend(backend),
	)

	var req dto.UpdateProductRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if _, err := c.svc.Update(ctx, backend, svc.ProductInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURLs:   req.ImageURLs,
		SellerID:    req.SellerID,
		CategoryIDs: req.CategoryIDs,
	}); err != nil {
		log.Error("update product failed", logger.ProductID(req.ID), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrProductNotFound))
		return
	}

	log.Info("product updated", logger.ProductID(req.ID))
	helpers.WriteMessage(w, http.StatusOK, "Producto actualizado correctamente.")
}

// ─────────────────────────────── Helpers ───────────────────────────────

func toProductResponse(p repository.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURLs:   p.ImageURLs,
	}
	if p.Seller != nil {
		s := toSellerResponse(*p.Seller)
		resp.Seller = &s
	}
	resp.Categories = make([]dto.CategoryRefResponse, 0, len(p.Categories))
	for _, ref := range p.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryRefResponse{
			ID:   ref.ID,
			Name: ref.Name,
		})
	}
	return resp
}
