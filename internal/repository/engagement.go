package repository

import (
	"context"
	"time"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ---- notificaciones ----

type MongoNotificationRepository struct {
	col *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{col: db.Collection("notifications")}
}

func (r *MongoNotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoNotificationRepository) FindUnreadByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID, "read": false},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, err
	}
	var out []*model.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoNotificationRepository) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*model.Notification, error) {
	var n model.Notification
	err := r.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *MongoNotificationRepository) SetRead(ctx context.Context, id primitive.ObjectID, read bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": read}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoNotificationRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// ---- actividades ----

type MongoActivityRepository struct {
	col *mongo.Collection
}

func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{col: db.Collection("activities")}
}

func (r *MongoActivityRepository) Insert(ctx context.Context, a *model.Activity) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	a.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoActivityRepository) FindAll(ctx context.Context) ([]*model.Activity, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"timestamp": -1}))
	if err != nil {
		return nil, err
	}
	var out []*model.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindRecentByUser trae las últimas actividades del usuario (dashboard).
func (r *MongoActivityRepository) FindRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*model.Activity, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.M{"timestamp": -1}).SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	var out []*model.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoActivityRepository) FindSince(ctx context.Context, since time.Time) ([]*model.Activity, error) {
	cur, err := r.col.Find(ctx, bson.M{"timestamp": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	var out []*model.Activity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoActivityRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
