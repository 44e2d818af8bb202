package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/mercadito/internal/store/adapters/mongo"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mysql"
)

// ErrUnknownBackend indica que el backend pedido no está registrado.
var ErrUnknownBackend = errors.New("store: unknown backend")

// Config agrupa la configuración de conexión de todos los backends.
type Config struct {
	MySQL mysql.Config
	Mongo mongo.Config
}

// Registry implementa DataAccessLayer sobre un conjunto fijo de
// backends. No hay conexiones perezosas: todo se abre en Open y se
// cierra en Close.
type Registry struct {
	names    []string
	backends map[string]BackendAccess
}

// NewRegistry arma un registro a partir de conexiones ya abiertas.
// Lo usan Open y los tests (con el adapter memory).
func NewRegistry(backends ...BackendAccess) *Registry {
	r := &Registry{backends: make(map[string]BackendAccess, len(backends))}
	for _, b := range backends {
		r.names = append(r.names, b.Name())
		r.backends[b.Name()] = b
	}
	return r
}

// Open conecta todos los backends configurados. Si alguno falla, cierra
// los que ya habían conectado y retorna el error.
func Open(ctx context.Context, cfg Config) (*Registry, error) {
	mongoConn, err := mongo.Open(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("store: open mongo: %w", err)
	}
	mysqlConn, err := mysql.Open(ctx, cfg.MySQL)
	if err != nil {
		_ = mongoConn.Close()
		return nil, fmt.Errorf("store: open mysql: %w", err)
	}
	return NewRegistry(mongoConn, mysqlConn), nil
}

func (r *Registry) ForBackend(name string) (BackendAccess, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return b, nil
}

func (r *Registry) Backends() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Ping(ctx context.Context) error {
	for _, name := range r.names {
		if err := r.backends[name].Ping(ctx); err != nil {
			return fmt.Errorf("store: ping %s: %w", name, err)
		}
	}
	return nil
}

func (r *Registry) Close() error {
	var errs []error
	for _, name := range r.names {
		if err := r.backends[name].Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: close %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Ensure Registry implements DataAccessLayer
var _ DataAccessLayer = (*Registry)(nil)
