package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDiscountRepository struct {
	col *mongo.Collection
}

func NewMongoDiscountRepository(db *mongo.Database) *MongoDiscountRepository {
	return &MongoDiscountRepository{col: db.Collection("discounts")}
}

func (r *MongoDiscountRepository) Insert(ctx context.Context, d *model.Discount) error {
	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	d.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoDiscountRepository) FindAll(ctx context.Context) ([]*model.Discount, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []*model.Discount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoDiscountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Discount, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoDiscountRepository) FindByCode(ctx context.Context, code string) (*model.Discount, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

// FindActiveByCode sólo matchea códigos activos (la validación de expiración
// la hace el servicio).
func (r *MongoDiscountRepository) FindActiveByCode(ctx context.Context, code string) (*model.Discount, error) {
	return r.findOne(ctx, bson.M{"code": code, "active": true})
}

func (r *MongoDiscountRepository) findOne(ctx context.Context, filter bson.M) (*model.Discount, error) {
	var d model.Discount
	err := r.col.FindOne(ctx, filter).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *MongoDiscountRepository) Update(ctx context.Context, d *model.Discount) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDiscountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
