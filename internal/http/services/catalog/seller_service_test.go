package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

func TestSellerService_CreateAndFind(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Sellers.Create(ctx, testBackend, SellerInput{
		AccountID: "acc-391",
		Profile: repository.Profile{
			FirstName: "Peter",
			LastName:  "Smith",
			Website:   "www.petersmith.com",
			Birthday:  time.Date(1986, 5, 12, 0, 0, 0, 0, time.UTC),
			Address:   "123 Main St",
			Email:     "peter@example.com",
			Gender:    types.GenderMale,
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected assigned id")
	}

	// la búsqueda por nombre matchea contra el primer nombre del perfil
	found, err := svcs.Sellers.FindByFirstName(ctx, testBackend, "Peter")
	if err != nil {
		t.Fatalf("FindByFirstName failed: %v", err)
	}
	if len(found) != 1 || found[0].AccountID != "acc-391" {
		t.Fatalf("Expected acc-391, got %+v", found)
	}

	// sin coincidencias es not found, no lista vacía
	if _, err := svcs.Sellers.FindByFirstName(ctx, testBackend, "Mary"); !repository.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// account id repetido
	_, err = svcs.Sellers.Create(ctx, testBackend, SellerInput{
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Clone"},
	})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}
}

func TestSellerService_Validations(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	// account id requerido
	if _, err := svcs.Sellers.Create(ctx, testBackend, SellerInput{}); !errors.Is(err, ErrAccountIDRequired) {
		t.Fatalf("Expected ErrAccountIDRequired, got %v", err)
	}

	// género fuera de la enumeración
	_, err := svcs.Sellers.Create(ctx, testBackend, SellerInput{
		AccountID: "acc-400",
		Profile:   repository.Profile{Gender: types.Gender("robot")},
	})
	if !errors.Is(err, ErrInvalidGender) {
		t.Fatalf("Expected ErrInvalidGender, got %v", err)
	}

	// nombre en blanco en la búsqueda
	if _, err := svcs.Sellers.FindByFirstName(ctx, testBackend, "  "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("Expected ErrNameRequired, got %v", err)
	}
}

func TestSellerService_Update(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svcs.Sellers.Create(ctx, testBackend, SellerInput{
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Peter", LastName: "Smith", Email: "peter@example.com"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svcs.Sellers.Update(ctx, testBackend, SellerInput{
		ID:        created.ID,
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Peter", LastName: "Smith", Email: "peter.smith@example.com"},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Profile.Email != "peter.smith@example.com" {
		t.Fatalf("Expected updated email, got %s", updated.Profile.Email)
	}

	// sin id
	if _, err := svcs.Sellers.Update(ctx, testBackend, SellerInput{AccountID: "acc-391"}); !errors.Is(err, ErrIDRequired) {
		t.Fatalf("Expected ErrIDRequired, got %v", err)
	}

	// id desconocido
	_, err = svcs.Sellers.Update(ctx, testBackend, SellerInput{ID: "999", AccountID: "acc-391"})
	if !repository.IsNotFound(err) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	// update idéntico: cero modificados, clase 500
	_, err = svcs.Sellers.Update(ctx, testBackend, SellerInput{
		ID:        created.ID,
		AccountID: "acc-391",
		Profile:   repository.Profile{FirstName: "Peter", LastName: "Smith", Email: "peter.smith@example.com"},
	})
	if !errors.Is(err, ErrNoEffect) {
		t.Fatalf("Expected ErrNoEffect, got %v", err)
	}
}

func TestSellerService_List(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	for _, acc := range []string{"acc-391", "acc-392"} {
		if _, err := svcs.Sellers.Create(ctx, testBackend, SellerInput{
			AccountID: acc,
			Profile:   repository.Profile{FirstName: "Seller " + acc},
		}); err != nil {
			t.Fatalf("Create %s failed: %v", acc, err)
		}
	}

	all, err := svcs.Sellers.List(ctx, testBackend)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 sellers, got %d", len(all))
	}
}
