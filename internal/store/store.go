// Package store expone el punto de entrada de acceso a datos: un
// registro de backends conectados explícitamente al arranque.
package store

import (
	"context"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

// DataAccessLayer es el punto de entrada principal para acceso a datos.
// Implementado por Registry.
type DataAccessLayer interface {
	// ForBackend retorna acceso a datos para un backend específico
	// ("mongo" o "mysql"). Retorna ErrUnknownBackend si no está
	// registrado.
	ForBackend(name string) (BackendAccess, error)

	// Backends retorna los nombres registrados, en orden de registro.
	Backends() []string

	// Ping verifica conectividad contra todos los backends.
	Ping(ctx context.Context) error

	// Close cierra todas las conexiones.
	Close() error
}

// BackendAccess agrupa los repositorios de un backend específico.
// Lo implementan las conexiones de los adapters (mysql, mongo, memory).
type BackendAccess interface {
	// Name retorna el nombre del backend.
	Name() string

	// Ping verifica la conexión subyacente.
	Ping(ctx context.Context) error

	// Close libera la conexión subyacente.
	Close() error

	Categories() repository.CategoryRepository
	Products() repository.ProductRepository
	Sellers() repository.SellerRepository
}
