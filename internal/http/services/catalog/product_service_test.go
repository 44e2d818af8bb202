package catalog

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dropDatabas3/mercadito/internal/denorm"
	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// seedSellerAndCategories deja un vendedor y dos categorías listos.
func seedSellerAndCategories(t *testing.T, conn *memory.Conn) (sellerID, woodID, handmadeID string) {
	t.Helper()
	ctx := context.Background()

	seller, err := conn.Sellers().Create(ctx, repository.Seller{
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Peter", LastName: "Smith", Email: "peter@example.com"},
	})
	if err != nil {
		t.Fatalf("seed seller failed: %v", err)
	}
	wood, err := conn.Categories().Create(ctx, repository.Category{Name: "Wood"})
	if err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	handmade, err := conn.Categories().Create(ctx, repository.Category{Name: "Handmade"})
	if err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return seller.ID, wood.ID, handmade.ID
}

func TestProductService_CreateResolvesAndAttaches(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()
	sellerID, woodID, handmadeID := seedSellerAndCategories(t, conn)

	created, err := svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "A Wooden Desk",
		Description: "Solid oak",
		Price:       249.99,
		ImageURLs:   []string{"https://img.example.com/desk.jpg"},
		SellerID:    sellerID,
		CategoryIDs: []string{woodID, handmadeID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// el producto lleva las copias {id, nombre} resueltas
	if len(created.Categories) != 2 {
		t.Fatalf("Expected 2 memberships, got %d", len(created.Categories))
	}
	if created.Categories[0].ID != woodID || created.Categories[0].Name != "Wood" {
		t.Fatalf("Expected resolved copy {%s, Wood}, got {%s, %s}", woodID, created.Categories[0].ID, created.Categories[0].Name)
	}

	// y el vendedor resuelto
	if created.Seller == nil || created.Seller.Profile.FirstName != "Peter" {
		t.Fatal("Expected resolved seller on created product")
	}

	// las referencias inversas quedaron pobladas
	wood, _ := conn.Categories().GetByID(ctx, woodID)
	if !slices.Contains(wood.ProductIDs, created.ID) {
		t.Fatalf("Expected reverse ref %s in category %s, got %v", created.ID, woodID, wood.ProductIDs)
	}
}

func TestProductService_CreateRejectAll(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()
	sellerID, woodID, _ := seedSellerAndCategories(t, conn)

	assertNoProducts := func() {
		t.Helper()
		all, _ := conn.Products().List(ctx)
		if len(all) != 0 {
			t.Fatalf("Expected no products written, got %d", len(all))
		}
	}

	// conjunto de categorías vacío: rechazo sin escritura
	_, err := svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:     "Desk",
		SellerID: sellerID,
	})
	if !errors.Is(err, denorm.ErrNoCategories) {
		t.Fatalf("Expected ErrNoCategories, got %v", err)
	}
	assertNoProducts()

	// una categoría desconocida entre válidas: rechazo total
	_, err = svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "Desk",
		SellerID:    sellerID,
		CategoryIDs: []string{woodID, "999"},
	})
	if !errors.Is(err, denorm.ErrUnknownCategory) {
		t.Fatalf("Expected ErrUnknownCategory, got %v", err)
	}
	assertNoProducts()

	// vendedor desconocido: error referencial, no not found
	_, err = svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "Desk",
		SellerID:    "999",
		CategoryIDs: []string{woodID},
	})
	if !errors.Is(err, ErrUnknownSeller) {
		t.Fatalf("Expected ErrUnknownSeller, got %v", err)
	}
	assertNoProducts()

	// validaciones de campos
	if _, err := svcs.Products.Create(ctx, testBackend, ProductInput{SellerID: sellerID}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := svcs.Products.Create(ctx, testBackend, ProductInput{Name: "Desk"}); !errors.Is(err, ErrSellerRequired) {
		t.Fatalf("Expected ErrSellerRequired, got %v", err)
	}
}

func TestProductService_Update(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()
	sellerID, woodID, handmadeID := seedSellerAndCategories(t, conn)

	created, err := svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "A Wooden Desk",
		Price:       249.99,
		SellerID:    sellerID,
		CategoryIDs: []string{woodID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// update con cambios reales
	updated, err := svcs.Products.Update(ctx, testBackend, ProductInput{
		ID:          created.ID,
		Name:        "A Wooden Desk",
		Price:       199.99,
		SellerID:    sellerID,
		CategoryIDs: []string{woodID, handmadeID},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Price != 199.99 {
		t.Fatalf("Expected price 199.99, got %v", updated.Price)
	}
	if len(updated.Categories) != 2 {
		t.Fatalf("Expected 2 memberships, got %d", len(updated.Categories))
	}

	// la nueva membresía también suma referencia inversa
	handmade, _ := conn.Categories().GetByID(ctx, handmadeID)
	if !slices.Contains(handmade.ProductIDs, created.ID) {
		t.Fatalf("Expected reverse ref added on update, got %v", handmade.ProductIDs)
	}

	// id desconocido
	_, err = svcs.Products.Update(ctx, testBackend, ProductInput{
		ID:          "999",
		Name:        "Ghost",
		SellerID:    sellerID,
		CategoryIDs: []string{woodID},
	})
	if !repository.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// update idéntico: cero modificados, clase 500
	_, err = svcs.Products.Update(ctx, testBackend, ProductInput{
		ID:          created.ID,
		Name:        "A Wooden Desk",
		Price:       199.99,
		SellerID:    sellerID,
		CategoryIDs: []string{woodID, handmadeID},
	})
	if !errors.Is(err, ErrNoEffect) {
		t.Fatalf("Expected ErrNoEffect, got %v", err)
	}
}

func TestProductService_GetByName(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()
	sellerID, woodID, _ := seedSellerAndCategories(t, conn)

	if _, err := svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "A Wooden Desk",
		SellerID:    sellerID,
		CategoryIDs: []string{woodID},
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := svcs.Products.GetByName(ctx, testBackend, "A Wooden Desk")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.Name != "A Wooden Desk" {
		t.Fatalf("Expected 'A Wooden Desk', got %q", got.Name)
	}

	if _, err := svcs.Products.GetByName(ctx, testBackend, "Nope"); !repository.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := svcs.Products.GetByName(ctx, testBackend, " "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Expected ErrNameRequired, got %v", err)
	}
}
