package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/mercadito/internal/denorm"
	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// newTestServices arma los services sobre un backend en memoria.
func newTestServices(t *testing.T) (Services, *memory.Conn) {
	t.Helper()
	conn := memory.Open()
	return NewServices(Deps{DAL: store.NewRegistry(conn)}), conn
}

const testBackend = "memory"

func TestCategoryService_CreateAndGet(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Categories.Create(ctx, testBackend, "  Furniture  ")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "Furniture" {
		t.Fatalf("Expected trimmed name 'Furniture', got %q", created.Name)
	}

	got, err := svcs.Categories.GetByName(ctx, testBackend, "Furniture")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("Expected id %s, got %s", created.ID, got.ID)
	}

	// nombre en blanco se rechaza antes de tocar el almacenamiento
	if _, err := svcs.Categories.Create(ctx, testBackend, "   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Expected ErrNameRequired, got %v", err)
	}

	// backend desconocido
	if _, err := svcs.Categories.Create(ctx, "postgres", "Nope"); !errors.Is(err, store.ErrUnknownBackend) {
		t.Fatalf("Expected ErrUnknownBackend, got %v", err)
	}
}

func TestCategoryService_RenamePropagates(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()

	wood, _ := svcs.Categories.Create(ctx, testBackend, "Wood")
	handmade, _ := svcs.Categories.Create(ctx, testBackend, "Handmade")
	seller, _ := conn.Sellers().Create(ctx, repository.Seller{
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Peter", LastName: "Smith", Email: "peter@example.com"},
	})

	desk, err := svcs.Products.Create(ctx, testBackend, ProductInput{
		Name:        "A Wooden Desk",
		Price:       249.99,
		SellerID:    seller.ID,
		CategoryIDs: []string{wood.ID, handmade.ID},
	})
	if err != nil {
		t.Fatalf("Create product failed: %v", err)
	}

	rewritten, err := svcs.Categories.Rename(ctx, testBackend, wood.ID, "Reclaimed Wood")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if rewritten != 1 {
		t.Fatalf("Expected 1 product rewritten, got %d", rewritten)
	}

	got, _ := conn.Products().GetByID(ctx, desk.ID)
	for _, ref := range got.Categories {
		if ref.ID == wood.ID && ref.Name != "Reclaimed Wood" {
			t.Fatalf("Expected embedded copy renamed, got %q", ref.Name)
		}
		if ref.ID == handmade.ID && ref.Name != "Handmade" {
			t.Fatalf("Expected other membership untouched, got %q", ref.Name)
		}
	}
}

func TestCategoryService_RenameValidations(t *testing.T) {
	svcs, conn := newTestServices(t)
	ctx := context.Background()

	wood, _ := svcs.Categories.Create(ctx, testBackend, "Wood")

	// sin id
	if _, err := svcs.Categories.Rename(ctx, testBackend, "", "X"); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("Expected ErrIDRequired, got %v", err)
	}

	// nombre en blanco: 400 y ningún cambio de estado
	if _, err := svcs.Categories.Rename(ctx, testBackend, wood.ID, "   "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Expected ErrNameRequired, got %v", err)
	}
	got, _ := conn.Categories().GetByID(ctx, wood.ID)
	if got.Name != "Wood" {
		t.Fatalf("Expected state unchanged, got %q", got.Name)
	}

	// id desconocido: not found, no clase 500
	if _, err := svcs.Categories.Rename(ctx, testBackend, "999", "Ghost"); !repository.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// renombrar al mismo nombre: la categoría existe pero el update
	// modifica cero registros, clase 500
	if _, err := svcs.Categories.Rename(ctx, testBackend, wood.ID, "Wood"); !errors.Is(err, denorm.ErrNoChange) {
		t.Fatalf("Expected ErrNoChange, got %v", err)
	}
}

func TestCategoryService_List(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"Furniture", "Handmade", "Kitchen", "Wood"} {
		if _, err := svcs.Categories.Create(ctx, testBackend, name); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
	}

	all, err := svcs.Categories.List(ctx, testBackend)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 categories, got %d", len(all))
	}
}
