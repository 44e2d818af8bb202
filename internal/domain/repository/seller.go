package repository

import (
	"context"
	"time"

	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

// Profile es el perfil embebido de un vendedor. No tiene identidad
// propia hacia afuera: vive y muere con su Seller.
type Profile struct {
	FirstName string
	LastName  string
	Website   string
	Birthday  time.Time
	Address   string
	Email     string
	Gender    types.Gender
}

// Seller representa un vendedor del catálogo.
type Seller struct {
	ID        string
	AccountID string
	Profile   Profile
}

// SellerRepository define operaciones sobre vendedores.
type SellerRepository interface {
	// GetByID busca un vendedor por id.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Seller, error)

	// FindByFirstName retorna los vendedores cuyo perfil tiene ese
	// primer nombre. Slice vacío si ninguno coincide (no es error).
	FindByFirstName(ctx context.Context, firstName string) ([]Seller, error)

	// List retorna todos los vendedores.
	List(ctx context.Context) ([]Seller, error)

	// Create persiste un vendedor nuevo y retorna la copia almacenada
	// con el id asignado por el backend.
	Create(ctx context.Context, s Seller) (*Seller, error)

	// Update reemplaza account id y campos del perfil del vendedor
	// identificado por s.ID. Retorna la cantidad de registros modificados.
	Update(ctx context.Context, s Seller) (int64, error)

	// DeleteAll elimina todos los vendedores. Solo lo usa el seeding.
	DeleteAll(ctx context.Context) error
}
