package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

var _ repository.SellerRepository = (*sellerRepo)(nil)

func (r *sellerRepo) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	oid, err := parseOID(id)
	if err != nil {
		return nil, fmt.Errorf("mongo: get seller %q: %w", id, repository.ErrNotFound)
	}
	var doc sellerDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapNotFound(fmt.Sprintf("get seller %q", id), err)
	}
	return doc.toDomain(), nil
}

func (r *sellerRepo) FindByFirstName(ctx context.Context, firstName string) ([]repository.Seller, error) {
	cur, err := r.col.Find(ctx, bson.M{"profile.first_name": firstName})
	if err != nil {
		return nil, fmt.Errorf("mongo: find sellers by first name %q: %w", firstName, err)
	}
	defer cur.Close(ctx)

	var out []repository.Seller
	for cur.Next(ctx) {
		var doc sellerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode seller: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo: find sellers by first name %q: %w", firstName, err)
	}
	return out, nil
}

func (r *sellerRepo) List(ctx context.Context) ([]repository.Seller, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo: list sellers: %w", err)
	}
	defer cur.Close(ctx)

	var out []repository.Seller
	for cur.Next(ctx) {
		var doc sellerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo: decode seller: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo: list sellers: %w", err)
	}
	return out, nil
}

func (r *sellerRepo) Create(ctx context.Context, s repository.Seller) (*repository.Seller, error) {
	doc, err := sellerToDoc(s)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("mongo: create seller %q: %w", s.AccountID, repository.ErrConflict)
		}
		return nil, fmt.Errorf("mongo: create seller %q: %w", s.AccountID, err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &s, nil
}

func (r *sellerRepo) Update(ctx context.Context, s repository.Seller) (int64, error) {
	oid, err := parseOID(s.ID)
	if err != nil {
		return 0, fmt.Errorf("mongo: update seller %q: %w", s.ID, repository.ErrNotFound)
	}
	doc, err := sellerToDoc(s)
	if err != nil {
		return 0, err
	}
	set := bson.M{
		"account_id":         doc.AccountID,
		"profile.first_name": doc.Profile.FirstName,
		"profile.last_name":  doc.Profile.LastName,
		"profile.website":    doc.Profile.Website,
		"profile.birthday":   doc.Profile.Birthday,
		"profile.address":    doc.Profile.Address,
		"profile.email":      doc.Profile.Email,
		"profile.gender":     doc.Profile.Gender,
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("mongo: update seller %q: %w", s.ID, err)
	}
	return res.ModifiedCount, nil
}

func (r *sellerRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("mongo: delete sellers: %w", err)
	}
	return nil
}
