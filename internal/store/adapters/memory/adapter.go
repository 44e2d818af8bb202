// Package memory implementa los repositorios del catálogo en memoria.
//
// Es la tercera implementación de las interfaces de repository: la usan
// los tests de servicios y del sincronizador para ejercitar la lógica
// sin levantar MongoDB ni MySQL. Reproduce la semántica de conteo de
// los backends reales: actualizar con los mismos valores reporta 0
// modificados, y los ids inexistentes en updates masivos se ignoran
// en silencio.
//
// Guarda copias embebidas {id, nombre} en los productos, como el
// backend de documentos, para que RenameCategoryRefs tenga efecto.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

// Conn es un almacenamiento en memoria con la misma forma que las
// conexiones reales (Name, Ping, Close y los tres repositorios).
type Conn struct {
	mu     sync.RWMutex
	nextID int64

	categories map[string]repository.Category
	products   map[string]repository.Product
	sellers    map[string]repository.Seller
}

// Open crea un almacenamiento vacío. Nunca falla.
func Open() *Conn {
	return &Conn{
		categories: make(map[string]repository.Category),
		products:   make(map[string]repository.Product),
		sellers:    make(map[string]repository.Seller),
	}
}

func (c *Conn) Name() string { return "memory" }

func (c *Conn) Ping(ctx context.Context) error { return nil }

func (c *Conn) Close() error { return nil }

func (c *Conn) Categories() repository.CategoryRepository { return &categoryRepo{conn: c} }

func (c *Conn) Products() repository.ProductRepository { return &productRepo{conn: c} }

func (c *Conn) Sellers() repository.SellerRepository { return &sellerRepo{conn: c} }

// newID genera el siguiente id secuencial. Llamar con mu tomado.
func (c *Conn) newID() string {
	c.nextID++
	return strconv.FormatInt(c.nextID, 10)
}

// sortedIDs retorna las claves del mapa en orden numérico para que los
// listados sean deterministas.
func sortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

func cloneCategory(c repository.Category) repository.Category {
	c.ProductIDs = append([]string(nil), c.ProductIDs...)
	return c
}

func cloneProduct(p repository.Product) repository.Product {
	p.ImageURLs = append([]string(nil), p.ImageURLs...)
	p.Categories = append([]repository.CategoryRef(nil), p.Categories...)
	if p.Seller != nil {
		s := *p.Seller
		p.Seller = &s
	}
	return p
}

type categoryRepo struct{ conn *Conn }
type productRepo struct{ conn *Conn }
type sellerRepo struct{ conn *Conn }
