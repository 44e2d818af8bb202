package mongo

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
	"github.com/dropDatabas3/mercadito/internal/domain/types"
)

// Documentos BSON internos del adapter. Los modelos de dominio no llevan
// tags de persistencia; la traducción vive acá.

type categoryDoc struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Name       string               `bson:"name"`
	ProductIDs []primitive.ObjectID `bson:"product_ids"`
}

type categoryRefDoc struct {
	ID   primitive.ObjectID `bson:"id"`
	Name string             `bson:"name"`
}

type profileDoc struct {
	FirstName string    `bson:"first_name"`
	LastName  string    `bson:"last_name"`
	Website   string    `bson:"website,omitempty"`
	Birthday  time.Time `bson:"birthday,omitempty"`
	Address   string    `bson:"address,omitempty"`
	Email     string    `bson:"email"`
	Gender    string    `bson:"gender,omitempty"`
}

type sellerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	Profile   profileDoc         `bson:"profile"`
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	ImageURLs   []string           `bson:"image_urls,omitempty"`
	SellerID    primitive.ObjectID `bson:"seller_id"`
	Seller      *sellerDoc         `bson:"seller,omitempty"`
	Categories  []categoryRefDoc   `bson:"categories"`
}

// parseOID valida la forma hex de un id de dominio. Un id con forma
// inválida se trata como inexistente, no como error de entrada.
func parseOID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func parseOIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseOID(id)
		if err != nil {
			return nil, fmt.Errorf("mongo: invalid id %q: %w", id, err)
		}
		oids = append(oids, oid)
	}
	return oids, nil
}

func wrapNotFound(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("mongo: %s: %w", op, repository.ErrNotFound)
	}
	return fmt.Errorf("mongo: %s: %w", op, err)
}

func (d categoryDoc) toDomain() *repository.Category {
	c := &repository.Category{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		ProductIDs: make([]string, 0, len(d.ProductIDs)),
	}
	for _, oid := range d.ProductIDs {
		c.ProductIDs = append(c.ProductIDs, oid.Hex())
	}
	return c
}

func (d sellerDoc) toDomain() *repository.Seller {
	return &repository.Seller{
		ID:        d.ID.Hex(),
		AccountID: d.AccountID,
		Profile: repository.Profile{
			FirstName: d.Profile.FirstName,
			LastName:  d.Profile.LastName,
			Website:   d.Profile.Website,
			Birthday:  d.Profile.Birthday,
			Address:   d.Profile.Address,
			Email:     d.Profile.Email,
			Gender:    types.Gender(d.Profile.Gender),
		},
	}
}

func sellerToDoc(s repository.Seller) (sellerDoc, error) {
	doc := sellerDoc{
		AccountID: s.AccountID,
		Profile: profileDoc{
			FirstName: s.Profile.FirstName,
			LastName:  s.Profile.LastName,
			Website:   s.Profile.Website,
			Birthday:  s.Profile.Birthday,
			Address:   s.Profile.Address,
			Email:     s.Profile.Email,
			Gender:    string(s.Profile.Gender),
		},
	}
	if s.ID != "" {
		oid, err := parseOID(s.ID)
		if err != nil {
			return sellerDoc{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d productDoc) toDomain() *repository.Product {
	p := &repository.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		ImageURLs:   d.ImageURLs,
		SellerID:    d.SellerID.Hex(),
		Categories:  make([]repository.CategoryRef, 0, len(d.Categories)),
	}
	if d.Seller != nil {
		p.Seller = d.Seller.toDomain()
	}
	for _, ref := range d.Categories {
		p.Categories = append(p.Categories, repository.CategoryRef{
			ID:   ref.ID.Hex(),
			Name: ref.Name,
		})
	}
	return p
}

func productToDoc(p repository.Product) (productDoc, error) {
	sellerOID, err := parseOID(p.SellerID)
	if err != nil {
		return productDoc{}, fmt.Errorf("mongo: invalid seller id %q: %w", p.SellerID, repository.ErrInvalidInput)
	}
	doc := productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURLs:   p.ImageURLs,
		SellerID:    sellerOID,
		Categories:  make([]categoryRefDoc, 0, len(p.Categories)),
	}
	if p.ID != "" {
		oid, err := parseOID(p.ID)
		if err != nil {
			return productDoc{}, err
		}
		doc.ID = oid
	}
	if p.Seller != nil {
		sd, err := sellerToDoc(*p.Seller)
		if err != nil {
			return productDoc{}, err
		}
		doc.Seller = &sd
	}
	for _, ref := range p.Categories {
		oid, err := parseOID(ref.ID)
		if err != nil {
			return productDoc{}, fmt.Errorf("mongo: invalid category ref %q: %w", ref.ID, repository.ErrInvalidInput)
		}
		doc.Categories = append(doc.Categories, categoryRefDoc{ID: oid, Name: ref.Name})
	}
	return doc, nil
}
