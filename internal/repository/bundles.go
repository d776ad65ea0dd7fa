package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoBundleRepository struct {
	col *mongo.Collection
}

func NewMongoBundleRepository(db *mongo.Database) *MongoBundleRepository {
	return &MongoBundleRepository{col: db.Collection("bundles")}
}

func (r *MongoBundleRepository) Insert(ctx context.Context, b *model.Bundle) error {
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoBundleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Bundle, error) {
	var b model.Bundle
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBundleRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Bundle, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var out []*model.Bundle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoBundleRepository) FindAll(ctx context.Context) ([]*model.Bundle, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []*model.Bundle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoBundleRepository) Update(ctx context.Context, b *model.Bundle) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBundleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
