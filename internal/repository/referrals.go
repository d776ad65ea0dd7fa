package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoReferralRepository struct {
	col *mongo.Collection
}

func NewMongoReferralRepository(db *mongo.Database) *MongoReferralRepository {
	return &MongoReferralRepository{col: db.Collection("referrals")}
}

func (r *MongoReferralRepository) Insert(ctx context.Context, ref *model.Referral) error {
	res, err := r.col.InsertOne(ctx, ref)
	if err != nil {
		return err
	}
	ref.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindPending busca el referido pendiente entre un referente y un referido
// concretos. Es la llave que habilita completar la recompensa.
func (r *MongoReferralRepository) FindPending(ctx context.Context, referrerID, refereeID primitive.ObjectID) (*model.Referral, error) {
	var ref model.Referral
	err := r.col.FindOne(ctx, bson.M{
		"referrer_id": referrerID,
		"referee_id":  refereeID,
		"status":      model.ReferralPending,
	}).Decode(&ref)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *MongoReferralRepository) FindAll(ctx context.Context) ([]*model.Referral, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var out []*model.Referral
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReferralRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoReferralRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"referrer_id": userID},
		{"referee_id": userID},
	}})
	return err
}
