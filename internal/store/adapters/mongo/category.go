package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.CategoryRepository = (*categoryRepo)(nil)

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*repository.Category, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, fmt.Errorf("mongo: get category %q: %w", id, repository.ErrNotFound)
	}
	var doc categoryDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(fmt.Sprintf("get category %q", id), err)
	}
	return doc.toDomain(), nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*repository.Category, error) {
	var doc categoryDoc
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		return nil, wrapNotFound(fmt.Sprintf("get category by name %q", name), err)
	}
	return doc.toDomain(), nil
}

func (r *categoryRepo) List(ctx context.Context) ([]repository.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo: list categories: %w", err)
	}
	defer cur.Close(ctx)

	var out []repository.Category
	for cur.Next(ctx) {
		var doc categoryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode category: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo: list categories: %w", err)
	}
	return out, nil
}

func (r *categoryRepo) Create(ctx context.Context, c repository.Category) (*repository.Category, error) {
	oids, err := parseOIDs(c.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("mongo: create category %q: %w", c.Name, repository.ErrInvalidInput)
	}
	doc := categoryDoc{Name: c.Name, ProductIDs: oids}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("mongo: create category %q: %w", c.Name, repository.ErrConflict)
		}
		return nil, fmt.Errorf("mongo: create category %q: %w", c.Name, err)
	}
	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &c, nil
}

func (r *categoryRepo) UpdateName(ctx context.Context, id, name string) (int64, error) {
	oid, err := parseOID(id)
	if err != nil {
		return 0, fmt.Errorf("mongo: update category %q: %w", id, repository.ErrNotFound)
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return 0, fmt.Errorf("mongo: update category %q: %w", id, err)
	}
	return res.ModifiedCount, nil
}

// AddProductRef agrega el producto al arreglo product_ids de cada
// categoría con semántica de conjunto: $addToSet no duplica entradas.
func (r *categoryRepo) AddProductRef(ctx context.Context, categoryIDs []string, productID string) (int64, error) {
	oids, err := parseOIDs(categoryIDs)
	if err != nil {
		return 0, err
	}
	productOID, err := parseOID(productID)
	if err != nil {
		return 0, fmt.Errorf("mongo: add product ref %q: %w", productID, repository.ErrNotFound)
	}
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$addToSet": bson.M{"product_ids": productOID}},
	)
	if err != nil {
		return 0, fmt.Errorf("mongo: add product ref %q: %w", productID, err)
	}
	return res.ModifiedCount, nil
}

func (r *categoryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: delete categories: %w", err)
	}
	return nil
}
