// Package catalog contiene los services del catálogo. Cada service
// opera sobre el backend que el cliente elige por request ("mongo" o
// "mysql"); la lógica es una sola y los backends quedan detrás de las
// interfaces de repository.
package catalog

import (
	"github.com/dropDatabas3/mercadito/internal/denorm"
	"github.com/dropDatabas3/mercadito/internal/store"
)

// Deps contiene las dependencias para crear los services del catálogo.
type Deps struct {
	DAL store.DataAccessLayer
}

// Services agrupa todos los services del catálogo.
type Services struct {
	Categories CategoryService
	Products   ProductService
	Sellers    SellerService
}

// NewServices crea el agregador de services del catálogo.
func NewServices(d Deps) Services {
	res := newResolver(d.DAL)
	return Services{
		Categories: NewCategoryService(res),
		Products:   NewProductService(res),
		Sellers:    NewSellerService(res),
	}
}

// resolver traduce un nombre de backend a su acceso a datos y su
// sincronizador. Los sincronizadores se construyen una vez por backend
// registrado, no por request.
type resolver struct {
	dal   store.DataAccessLayer
	syncs map[string]*denorm.Synchronizer
}

func newResolver(dal store.DataAccessLayer) *resolver {
	r := &resolver{dal: dal, syncs: make(map[string]*denorm.Synchronizer)}
	for _, name := range dal.Backends() {
		b, err := dal.ForBackend(name)
		if err != nil {
			continue
		}
		r.syncs[name] = denorm.New(name, b.Categories(), b.Products())
	}
	return r
}

// resolve retorna el acceso y el sincronizador del backend pedido.
// Retorna store.ErrUnknownBackend si no está registrado.
func (r *resolver) resolve(name string) (store.BackendAccess, *denorm.Synchronizer, error) {
	b, err := r.dal.ForBackend(name)
	if err != nil {
		return nil, nil, err
	}
	return b, r.syncs[name], nil
}
