package repository

import "context"

// Category representa una categoría del catálogo.
//
// ProductIDs es la colección de referencias inversas: los ids de los
// productos que pertenecen a la categoría. En MongoDB se persiste como
// arreglo dentro del documento; en MySQL se deriva de la tabla de unión.
// No es autoritativa: solo se agregan ids, nunca se podan.
type Category struct {
	ID         string
	Name       string
	ProductIDs []string
}

// CategoryRepository define operaciones sobre categorías.
type CategoryRepository interface {
	// GetByID busca una categoría por id.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Category, error)

	// GetByName busca una categoría por nombre exacto.
	// Retorna ErrNotFound si no existe.
	GetByName(ctx context.Context, name string) (*Category, error)

	// List retorna todas las categorías.
	List(ctx context.Context) ([]Category, error)

	// Create persiste una categoría nueva y retorna la copia almacenada
	// con el id asignado por el backend.
	Create(ctx context.Context, c Category) (*Category, error)

	// UpdateName actualiza el nombre autoritativo de la categoría.
	// Retorna la cantidad de registros modificados (0 si el id no existe
	// o si el nombre ya era ese).
	UpdateName(ctx context.Context, id, name string) (int64, error)

	// AddProductRef agrega productID a la colección de referencias
	// inversas de cada categoría indicada, con semántica de conjunto:
	// agregar un id ya presente no duplica. Retorna cuántas categorías
	// fueron modificadas.
	AddProductRef(ctx context.Context, categoryIDs []string, productID string) (int64, error)

	// DeleteAll elimina todas las categorías. Solo lo usa el seeding.
	DeleteAll(ctx context.Context) error
}
