package catalog_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	ctrl "github.com/dropDatabas3/mercadito/internal/http/controllers/catalog"
	dto "github.com/dropDatabas3/mercadito/internal/http/dto/catalog"
	svc "github.com/dropDatabas3/mercadito/internal/http/services/catalog"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// Los tests levantan el router completo contra el backend en memoria y
// ejercitan la API igual que un cliente real: todo pasa por HTTP.

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	services := svc.NewServices(svc.Deps{DAL: store.NewRegistry(memory.Open())})
	r := chi.NewRouter()
	ctrl.NewControllers(services).Register(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

// errCode extrae el campo "code" de una respuesta de error.
func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Code string `json:"code"`
	}
	decode(t, rec, &resp)
	return resp.Code
}

func createCategory(t *testing.T, h http.Handler, name string) dto.CategoryResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/category/memory", dto.CreateCategoryRequest{Name: name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cat dto.CategoryResponse
	decode(t, rec, &cat)
	return cat
}

func createSeller(t *testing.T, h http.Handler, accountID, firstName string) dto.SellerResponse {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/seller/memory", dto.CreateSellerRequest{
		AccountID: accountID,
		Profile: dto.ProfilePayload{
			FirstName: firstName,
			LastName:  "Smith",
			Birthday:  time.Date(1987, 3, 12, 0, 0, 0, 0, time.UTC),
			Email:     firstName + "@example.com",
			Gender:    "male",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s dto.SellerResponse
	decode(t, rec, &s)
	return s
}

func TestCategoryEndpoints(t *testing.T) {
	h := newTestRouter(t)

	created := createCategory(t, h, "Wood")
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Wood", created.Name)

	// GET por nombre devuelve la misma categoría.
	rec := doJSON(t, h, http.MethodGet, "/category/memory?name=Wood", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.CategoryResponse
	decode(t, rec, &got)
	require.Equal(t, created.ID, got.ID)

	// GET all lista lo creado.
	createCategory(t, h, "Handmade")
	rec = doJSON(t, h, http.MethodGet, "/category/all/memory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []dto.CategoryResponse
	decode(t, rec, &all)
	require.Len(t, all, 2)

	// Errores de entrada y de búsqueda.
	rec = doJSON(t, h, http.MethodGet, "/category/memory?name=Missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "CATEGORY_NOT_FOUND", errCode(t, rec))

	rec = doJSON(t, h, http.MethodGet, "/category/memory", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "MISSING_FIELDS", errCode(t, rec))

	rec = doJSON(t, h, http.MethodPost, "/category/memory", dto.CreateCategoryRequest{Name: "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "MISSING_FIELDS", errCode(t, rec))

	rec = doJSON(t, h, http.MethodPost, "/category/postgres", dto.CreateCategoryRequest{Name: "Garden"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "UNKNOWN_BACKEND", errCode(t, rec))

	// Sin Content-Type el body se rechaza antes de llegar al service.
	req := httptest.NewRequest(http.MethodPost, "/category/memory", bytes.NewReader([]byte(`{"name":"X"}`)))
	plain := httptest.NewRecorder()
	h.ServeHTTP(plain, req)
	require.Equal(t, http.StatusBadRequest, plain.Code)
	require.Equal(t, "BAD_REQUEST", errCode(t, plain))
}

func TestCategoryRenamePropagation(t *testing.T) {
	h := newTestRouter(t)

	seller := createSeller(t, h, "acc-391", "Peter")
	wood := createCategory(t, h, "Wood")
	handmade := createCategory(t, h, "Handmade")

	rec := doJSON(t, h, http.MethodPost, "/product/memory", dto.CreateProductRequest{
		Name:        "Desk",
		Description: "Solid oak desk",
		Price:       249.99,
		SellerID:    seller.ID,
		CategoryIDs: []string{wood.ID, handmade.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var desk dto.ProductResponse
	decode(t, rec, &desk)
	require.Len(t, desk.Categories, 2)
	require.NotNil(t, desk.Seller)
	require.Equal(t, "Peter", desk.Seller.Profile.FirstName)

	// Renombrar Wood reescribe la copia embebida del producto y deja
	// las demás membresías intactas.
	rec = doJSON(t, h, http.MethodPut, "/category/memory", dto.UpdateCategoryRequest{
		ID:   wood.ID,
		Name: "Reclaimed Wood",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var msg struct {
		Message string `json:"message"`
	}
	decode(t, rec, &msg)
	require.Equal(t, "Categoría actualizada correctamente.", msg.Message)

	rec = doJSON(t, h, http.MethodGet, "/product/memory?name=Desk", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after dto.ProductResponse
	decode(t, rec, &after)

	names := map[string]string{}
	for _, ref := range after.Categories {
		names[ref.ID] = ref.Name
	}
	require.Equal(t, "Reclaimed Wood", names[wood.ID])
	require.Equal(t, "Handmade", names[handmade.ID])

	// La referencia inversa quedó registrada en la categoría.
	rec = doJSON(t, h, http.MethodGet, "/category/memory?name=Reclaimed+Wood", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var woodAfter dto.CategoryResponse
	decode(t, rec, &woodAfter)
	require.Contains(t, woodAfter.ProductIDs, desk.ID)
}

func TestCategoryRenameErrorClasses(t *testing.T) {
	h := newTestRouter(t)
	wood := createCategory(t, h, "Wood")

	// Nombre en blanco: validación, nada se escribe.
	rec := doJSON(t, h, http.MethodPut, "/category/memory", dto.UpdateCategoryRequest{ID: wood.ID, Name: "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "MISSING_FIELDS", errCode(t, rec))

	// Id inexistente: 404 antes de intentar el update.
	rec = doJSON(t, h, http.MethodPut, "/category/memory", dto.UpdateCategoryRequest{ID: "999", Name: "Garden"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "CATEGORY_NOT_FOUND", errCode(t, rec))

	// Renombrar al mismo nombre modifica cero registros: clase 500.
	rec = doJSON(t, h, http.MethodPut, "/category/memory", dto.UpdateCategoryRequest{ID: wood.ID, Name: "Wood"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "UPDATE_NO_EFFECT", errCode(t, rec))
}

func TestProductReferentialChecks(t *testing.T) {
	h := newTestRouter(t)
	seller := createSeller(t, h, "acc-391", "Peter")
	wood := createCategory(t, h, "Wood")

	// Sin categorías.
	rec := doJSON(t, h, http.MethodPost, "/product/memory", dto.CreateProductRequest{
		Name: "Desk", Price: 100, SellerID: seller.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "NO_CATEGORIES", errCode(t, rec))

	// Una categoría desconocida rechaza todo el alta.
	rec = doJSON(t, h, http.MethodPost, "/product/memory", dto.CreateProductRequest{
		Name: "Desk", Price: 100, SellerID: seller.ID,
		CategoryIDs: []string{wood.ID, "999"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "UNKNOWN_CATEGORY", errCode(t, rec))

	// Vendedor desconocido.
	rec = doJSON(t, h, http.MethodPost, "/product/memory", dto.CreateProductRequest{
		Name: "Desk", Price: 100, SellerID: "999",
		CategoryIDs: []string{wood.ID},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "UNKNOWN_SELLER", errCode(t, rec))

	// Ninguno de los intentos persistió nada.
	rec = doJSON(t, h, http.MethodGet, "/product/all/memory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []dto.ProductResponse
	decode(t, rec, &all)
	require.Empty(t, all)
}

func TestProductUpdateEndpoint(t *testing.T) {
	h := newTestRouter(t)
	seller := createSeller(t, h, "acc-391", "Peter")
	wood := createCategory(t, h, "Wood")
	kitchen := createCategory(t, h, "Kitchen")

	rec := doJSON(t, h, http.MethodPost, "/product/memory", dto.CreateProductRequest{
		Name: "Spoon", Price: 13.11, SellerID: seller.ID,
		CategoryIDs: []string{wood.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var spoon dto.ProductResponse
	decode(t, rec, &spoon)

	rec = doJSON(t, h, http.MethodPut, "/product/memory", dto.UpdateProductRequest{
		ID: spoon.ID, Name: "Spoon", Price: 15.50, SellerID: seller.ID,
		CategoryIDs: []string{wood.ID, kitchen.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var msg struct {
		Message string `json:"message"`
	}
	decode(t, rec, &msg)
	require.Equal(t, "Producto actualizado correctamente.", msg.Message)

	rec = doJSON(t, h, http.MethodGet, "/product/memory?name=Spoon", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after dto.ProductResponse
	decode(t, rec, &after)
	require.InDelta(t, 15.50, after.Price, 0.001)
	require.Len(t, after.Categories, 2)

	// La nueva membresía también registró su referencia inversa.
	rec = doJSON(t, h, http.MethodGet, "/category/memory?name=Kitchen", nil)
	var kitchenAfter dto.CategoryResponse
	decode(t, rec, &kitchenAfter)
	require.Contains(t, kitchenAfter.ProductIDs, spoon.ID)

	// Update idéntico: cero modificados, clase 500.
	rec = doJSON(t, h, http.MethodPut, "/product/memory", dto.UpdateProductRequest{
		ID: spoon.ID, Name: "Spoon", Price: 15.50, SellerID: seller.ID,
		CategoryIDs: []string{wood.ID, kitchen.ID},
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "UPDATE_NO_EFFECT", errCode(t, rec))

	// Id inexistente: 404.
	rec = doJSON(t, h, http.MethodPut, "/product/memory", dto.UpdateProductRequest{
		ID: "999", Name: "Ghost", Price: 1, SellerID: seller.ID,
		CategoryIDs: []string{wood.ID},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "PRODUCT_NOT_FOUND", errCode(t, rec))
}

func TestSellerEndpoints(t *testing.T) {
	h := newTestRouter(t)

	peter := createSeller(t, h, "acc-391", "Peter")

	// La búsqueda por primer nombre devuelve una lista.
	rec := doJSON(t, h, http.MethodGet, "/seller/memory?name=Peter", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []dto.SellerResponse
	decode(t, rec, &found)
	require.Len(t, found, 1)
	require.Equal(t, peter.ID, found[0].ID)

	// Sin coincidencias es 404, no lista vacía.
	rec = doJSON(t, h, http.MethodGet, "/seller/memory?name=Mary", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "SELLER_NOT_FOUND", errCode(t, rec))

	// account_id duplicado.
	rec = doJSON(t, h, http.MethodPost, "/seller/memory", dto.CreateSellerRequest{
		AccountID: "acc-391",
		Profile:   dto.ProfilePayload{FirstName: "Pedro", LastName: "Gómez", Email: "pedro@example.com"},
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "ALREADY_EXISTS", errCode(t, rec))

	// Update con cambios reales.
	updated := peter
	updated.Profile.Email = "peter.smith@example.com"
	rec = doJSON(t, h, http.MethodPut, "/seller/memory", dto.UpdateSellerRequest{
		ID: peter.ID, AccountID: peter.AccountID, Profile: updated.Profile,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Repetir el mismo update no modifica nada: clase 500.
	rec = doJSON(t, h, http.MethodPut, "/seller/memory", dto.UpdateSellerRequest{
		ID: peter.ID, AccountID: peter.AccountID, Profile: updated.Profile,
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "UPDATE_NO_EFFECT", errCode(t, rec))

	// Género inválido.
	rec = doJSON(t, h, http.MethodPost, "/seller/memory", dto.CreateSellerRequest{
		AccountID: "acc-400",
		Profile:   dto.ProfilePayload{FirstName: "Robo", LastName: "Bot", Email: "robo@example.com", Gender: "robot"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_PARAMETER", errCode(t, rec))
}
