package repository

import "context"

// CategoryRef es la copia desnormalizada {id, nombre} de una categoría,
// embebida en un producto. La capa de almacenamiento no la mantiene
// consistente con la categoría autoritativa; de eso se encarga el
// sincronizador (internal/denorm).
type CategoryRef struct {
	ID   string
	Name string
}

// Product representa un producto del catálogo.
//
// Categories es el conjunto de membresías del producto. En MongoDB se
// persiste embebido tal cual; en MySQL se deriva de la tabla de unión,
// por lo que los nombres leídos siempre son los autoritativos.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURLs   []string
	SellerID    string
	Seller      *Seller // resuelto en lecturas y creaciones
	Categories  []CategoryRef
}

// ProductRepository define operaciones sobre productos.
type ProductRepository interface {
	// GetByID busca un producto por id.
	// Retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*Product, error)

	// GetByName busca un producto por nombre exacto.
	// Retorna ErrNotFound si no existe.
	GetByName(ctx context.Context, name string) (*Product, error)

	// List retorna todos los productos.
	List(ctx context.Context) ([]Product, error)

	// Create persiste un producto nuevo (membresías ya resueltas) y
	// retorna la copia almacenada con el id asignado por el backend.
	Create(ctx context.Context, p Product) (*Product, error)

	// Update reemplaza los campos del producto identificado por p.ID,
	// membresías incluidas. Retorna la cantidad de registros modificados.
	Update(ctx context.Context, p Product) (int64, error)

	// RenameCategoryRefs reescribe el nombre embebido de la categoría
	// categoryID en todos los productos que la contengan. Retorna la
	// cantidad de productos modificados. En MySQL no existen copias
	// embebidas, por lo que retorna (0, nil).
	RenameCategoryRefs(ctx context.Context, categoryID, newName string) (int64, error)

	// DeleteAll elimina todos los productos. Solo lo usa el seeding.
	DeleteAll(ctx context.Context) error
}
