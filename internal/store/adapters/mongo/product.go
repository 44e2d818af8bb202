package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) GetByID(ctx context.Context, id string) (*repository.Product, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, fmt.Errorf("mongo: get product %q: %w", id, repository.ErrNotFound)
	}
	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(fmt.Sprintf("get product %q", id), err)
	}
	return doc.toDomain(), nil
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*repository.Product, error) {
	var doc productDoc
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, wrapNotFound(fmt.Sprintf("get product by name %q", name), err)
	}
	return doc.toDomain(), nil
}

func (r *productRepo) List(ctx context.Context) ([]repository.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo: list products: %w", err)
	}
	defer cur.Close(ctx)

	var out []repository.Product
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode product: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo: list products: %w", err)
	}
	return out, nil
}

func (r *productRepo) Create(ctx context.Context, p repository.Product) (*repository.Product, error) {
	doc, err := productToDoc(p)
	if err != nil {
		return nil, err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("mongo: create product %q: %w", p.Name, repository.ErrConflict)
		}
		return nil, fmt.Errorf("mongo: create product %q: %w", p.Name, err)
	}
	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, p repository.Product) (int64, error) {
	oid, err := parseOID(p.ID)
	if err != nil {
		return 0, fmt.Errorf("mongo: update product %q: %w", p.ID, repository.ErrNotFound)
	}
	doc, err := productToDoc(p)
	if err != nil {
		return 0, err
	}
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return 0, fmt.Errorf("mongo: update product %q: %w", p.ID, err)
	}
	return res.ModifiedCount, nil
}

// RenameCategoryRefs reescribe el nombre en las copias embebidas
// {id, name} de todos los productos que referencian la categoría. El
// operador posicional $ actualiza el elemento que matcheó el filtro.
func (r *productRepo) RenameCategoryRefs(ctx context.Context, categoryID, newName string) (int64, error) {
	oid, err := parseOID(categoryID)
	if err != nil {
		return 0, fmt.Errorf("mongo: rename category refs %q: %w", categoryID, repository.ErrNotFound)
	}
	res, err := r.col.UpdateMany(ctx,
		bson.M{"categories.id": oid},
		bson.M{"$set": bson.M{"categories.$.name": newName}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo: rename category refs %q: %w", categoryID, err)
	}
	return res.ModifiedCount, nil
}

func (r *productRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: delete products: %w", err)
	}
	return nil
}
