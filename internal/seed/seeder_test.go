package seed

import (
	"context"
	"slices"
	"testing"

	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/memory"
)

// El backend en memoria recibe el set de documentos: 1 vendedor,
// 4 categorías, 3 productos.

func TestSeederPopulatesBackend(t *testing.T) {
	ctx := context.Background()
	conn := memory.Open()

	if err := New(store.NewRegistry(conn)).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	sellers, err := conn.Sellers().List(ctx)
	if err != nil {
		t.Fatalf("List sellers: %v", err)
	}
	if len(sellers) != 1 {
		t.Fatalf("sellers = %d, esperaba 1", len(sellers))
	}
	if sellers[0].AccountID != "acc-391" {
		t.Fatalf("AccountID = %q", sellers[0].AccountID)
	}

	categories, err := conn.Categories().List(ctx)
	if err != nil {
		t.Fatalf("List categories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("categories = %d, esperaba 4", len(categories))
	}

	products, err := conn.Products().List(ctx)
	if err != nil {
		t.Fatalf("List products: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products = %d, esperaba 3", len(products))
	}
}

func TestSeederPopulatesReverseReferences(t *testing.T) {
	ctx := context.Background()
	conn := memory.Open()

	if err := New(store.NewRegistry(conn)).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Wood contiene el escritorio y la cuchara; Furniture solo la silla.
	wood, err := conn.Categories().GetByName(ctx, "Wood")
	if err != nil {
		t.Fatalf("GetByName Wood: %v", err)
	}
	desk, err := conn.Products().GetByName(ctx, "A Wooden Desk")
	if err != nil {
		t.Fatalf("GetByName desk: %v", err)
	}
	spoon, err := conn.Products().GetByName(ctx, "Bamboo Spoon")
	if err != nil {
		t.Fatalf("GetByName spoon: %v", err)
	}

	if !slices.Contains(wood.ProductIDs, desk.ID) || !slices.Contains(wood.ProductIDs, spoon.ID) {
		t.Fatalf("Wood.ProductIDs = %v, faltan referencias", wood.ProductIDs)
	}

	furniture, err := conn.Categories().GetByName(ctx, "Furniture")
	if err != nil {
		t.Fatalf("GetByName Furniture: %v", err)
	}
	if len(furniture.ProductIDs) != 1 {
		t.Fatalf("Furniture.ProductIDs = %v, esperaba 1", furniture.ProductIDs)
	}

	// Las membresías embebidas llevan el nombre autoritativo.
	for _, ref := range desk.Categories {
		if ref.Name != "Wood" && ref.Name != "Handmade" {
			t.Fatalf("membresía inesperada: %+v", ref)
		}
	}
	if desk.Seller == nil || desk.Seller.Profile.FirstName != "Peter" {
		t.Fatalf("Seller resuelto = %+v", desk.Seller)
	}
}

func TestSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn := memory.Open()
	seeder := New(store.NewRegistry(conn))

	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("primer Run: %v", err)
	}
	if err := seeder.Run(ctx); err != nil {
		t.Fatalf("segundo Run: %v", err)
	}

	categories, err := conn.Categories().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("categories tras resembrar = %d, esperaba 4", len(categories))
	}

	products, err := conn.Products().List(ctx)
	if err != nil {
		t.Fatalf("List products: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("products tras resembrar = %d, esperaba 3", len(products))
	}

	// Sin referencias colgadas: cada categoría apunta solo a productos
	// que existen tras la resiembra.
	valid := make(map[string]bool, len(products))
	for _, p := range products {
		valid[p.ID] = true
	}
	for _, c := range categories {
		for _, id := range c.ProductIDs {
			if !valid[id] {
				t.Fatalf("categoría %s referencia producto inexistente %s", c.Name, id)
			}
		}
	}
}

func TestFixturesPerBackend(t *testing.T) {
	rel := fixturesFor("mysql")
	if len(rel.sellers) != 2 || len(rel.products) != 2 {
		t.Fatalf("set relacional: %d vendedores, %d productos", len(rel.sellers), len(rel.products))
	}

	doc := fixturesFor("mongo")
	if len(doc.sellers) != 1 || len(doc.products) != 3 {
		t.Fatalf("set de documentos: %d vendedores, %d productos", len(doc.sellers), len(doc.products))
	}

	// Todos los productos del set de documentos pertenecen al único vendedor.
	for _, p := range doc.products {
		if p.sellerAccount != "acc-391" {
			t.Fatalf("producto %s con vendedor %s", p.name, p.sellerAccount)
		}
	}
}
