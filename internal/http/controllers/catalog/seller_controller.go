package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	"github.com/dropDatabas3/mercadito/internal/http/helpers"
	"github.com/dropDatabas3/mercadito/internal/http/httperrors"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
)

// SellerController expone las operaciones HTTP sobre vendedores.
type SellerController struct {
	svc svc.SellerService
}

// NewSellerController crea el controller de vendedores.
func NewSellerController(s svc.SellerService) *SellerController {
	return &SellerController{svc: s}
}

// GetByName maneja GET /seller/{backend}?name=... La búsqueda es por
// primer nombre y devuelve una lista (puede haber homónimos).
func (c *SellerController) GetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	name := r.URL.Query().Get("name")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("SellerController.GetByName"),
		logger.Backend(backend),
	)

	sellers, err := c.svc.FindByFirstName(ctx, backend, name)
	if err != nil {
		log.Warn("find sellers failed", logger.Name(name), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrSellerNotFound))
		return
	}

	out := make([]dto.SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, toSellerResponse(s))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// List maneja GET /seller/all/{backend}.
func (c *SellerController) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("SellerController.List"),
		logger.Backend(backend),
	)

	sellers, err := c.svc.List(ctx, backend)
	if err != nil {
		log.Error("list sellers failed", logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrSellerNotFound))
		return
	}

	out := make([]dto.SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, toSellerResponse(s))
	}
	helpers.WriteJSON(w, http.StatusOK, out)
}

// Create maneja POST /seller/{backend}.
func (c *SellerController) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("SellerController.Create"),
		logger.Backend(backend),
	)

	var req dto.CreateSellerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	s, err := c.svc.Create(ctx, backend, svc.SellerInput{
		AccountID: req.AccountID,
		Profile:   profileFromPayload(req.Profile),
	})
	if err != nil {
		log.Error("create seller failed", logger.String("account_id", req.AccountID), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrSellerNotFound))
		return
	}

	log.Info("seller created", logger.ID(s.ID), logger.String("account_id", s.AccountID))
	helpers.WriteJSON(w, http.StatusOK, toSellerResponse(*s))
}

// Update maneja PUT /seller/{backend}.
func (c *SellerController) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	backend := chi.URLParam(r, "backend")
	log := logger.From(ctx).With(
		logger.Layer("controller"),
		logger.Op("SellerController.Update"),
		logger.Backend(backend),
	)

	var req dto.UpdateSellerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	if _, err := c.svc.Update(ctx, backend, svc.SellerInput{
		ID:        req.ID,
		AccountID: req.AccountID,
		Profile:   profileFromPayload(req.Profile),
	}); err != nil {
		log.Error("update seller failed", logger.ID(req.ID), logger.Err(err))
		httperrors.WriteError(w, mapError(err, httperrors.ErrSellerNotFound))
		return
	}

	log.Info("seller updated", logger.ID(req.ID))
	helpers.WriteMessage(w, http.StatusOK, "Vendedor actualizado correctamente.")
}

// ─────────────────────────────── Helpers ───────────────────────────────

func toSellerResponse(s repository.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:        s.ID,
		AccountID: s.AccountID,
		Profile: dto.ProfilePayload{
			FirstName: s.Profile.FirstName,
			LastName:  s.Profile.LastName,
			Website:   s.Profile.Website,
			Birthday:  s.Profile.Birthday,
			Address:   s.Profile.Address,
			Email:     s.Profile.Email,
			Gender:    string(s.Profile.Gender),
		},
	}
}

func profileFromPayload(p dto.ProfilePayload) repository.Profile {
	return repository.Profile{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Website:   p.Website,
		Birthday:  p.Birthday,
		Address:   p.Address,
		Email:     p.Email,
		Gender:    types.Gender(p.Gender),
	}
}
