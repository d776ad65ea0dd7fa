package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoReturnRepository struct {
	col *mongo.Collection
}

func NewMongoReturnRepository(db *mongo.Database) *MongoReturnRepository {
	return &MongoReturnRepository{col: db.Collection("return_requests")}
}

func (r *MongoReturnRepository) Insert(ctx context.Context, rr *model.ReturnRequest) error {
	res, err := r.col.InsertOne(ctx, rr)
	if err != nil {
		return err
	}
	rr.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoReturnRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.ReturnRequest, error) {
	var rr model.ReturnRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rr)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// FindByOrderAndUser detecta solicitudes duplicadas para la misma orden.
func (r *MongoReturnRepository) FindByOrderAndUser(ctx context.Context, orderID, userID primitive.ObjectID) (*model.ReturnRequest, error) {
	var rr model.ReturnRequest
	err := r.col.FindOne(ctx, bson.M{"order_id": orderID, "user_id": userID}).Decode(&rr)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (r *MongoReturnRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.ReturnRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var out []*model.ReturnRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReturnRepository) FindAll(ctx context.Context) ([]*model.ReturnRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []*model.ReturnRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReturnRepository) Update(ctx context.Context, rr *model.ReturnRequest) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rr.ID}, rr)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
