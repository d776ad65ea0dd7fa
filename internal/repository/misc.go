package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ---- categorías ----

type MongoCategoryRepository struct {
	col *mongo.Collection
}

func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{col: db.Collection("categories")}
}

func (r *MongoCategoryRepository) Insert(ctx context.Context, c *model.Category) error {
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoCategoryRepository) FindAll(ctx context.Context) ([]*model.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []*model.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoCategoryRepository) Update(ctx context.Context, c *model.Category) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- feedback ----

type MongoFeedbackRepository struct {
	col *mongo.Collection
}

func NewMongoFeedbackRepository(db *mongo.Database) *MongoFeedbackRepository {
	return &MongoFeedbackRepository{col: db.Collection("feedback")}
}

func (r *MongoFeedbackRepository) Insert(ctx context.Context, f *model.Feedback) error {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return err
	}
	f.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoFeedbackRepository) FindByOrderAndUser(ctx context.Context, orderID, userID primitive.ObjectID) (*model.Feedback, error) {
	var f model.Feedback
	err := r.col.FindOne(ctx, bson.M{"order_id": orderID, "user_id": userID}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ---- soporte ----

type MongoSupportRepository struct {
	col *mongo.Collection
}

func NewMongoSupportRepository(db *mongo.Database) *MongoSupportRepository {
	return &MongoSupportRepository{col: db.Collection("support_requests")}
}

func (r *MongoSupportRepository) Insert(ctx context.Context, s *model.SupportRequest) error {
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoSupportRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.SupportRequest, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var out []*model.SupportRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
