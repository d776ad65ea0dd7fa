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

// ---- carrito ----

type MongoCartRepository struct {
	col *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{col: db.Collection("carts")}
}

// Upsert pisa los items del carrito del usuario (un carrito por usuario).
func (r *MongoCartRepository) Upsert(ctx context.Context, userID primitive.ObjectID, items []model.CartItem) (*model.Cart, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{"items": items, "updated_at": time.Now().UTC()}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return r.FindByUser(ctx, userID)
}

func (r *MongoCartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	var c model.Cart
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- wishlist ----

type MongoWishlistRepository struct {
	col *mongo.Collection
}

func NewMongoWishlistRepository(db *mongo.Database) *MongoWishlistRepository {
	return &MongoWishlistRepository{col: db.Collection("wishlists")}
}

func (r *MongoWishlistRepository) Insert(ctx context.Context, w *model.WishlistItem) error {
	res, err := r.col.InsertOne(ctx, w)
	if err != nil {
		return err
	}
	w.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoWishlistRepository) Exists(ctx context.Context, userID, productID primitive.ObjectID) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "product_id": productID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MongoWishlistRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.WishlistItem, error) {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var out []*model.WishlistItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoWishlistRepository) Delete(ctx context.Context, userID, productID primitive.ObjectID) (*model.WishlistItem, error) {
	var w model.WishlistItem
	err := r.col.FindOneAndDelete(ctx, bson.M{"user_id": userID, "product_id": productID}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
