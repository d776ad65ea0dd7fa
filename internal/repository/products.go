package repository

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter replica los filtros de listado del catálogo.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	MinStock *int
	MaxStock *int
	Search   string
}

type MongoProductRepository struct {
	col *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{col: db.Collection("products")}
}

func (r *MongoProductRepository) Insert(ctx context.Context, p *model.Product) error {
	if p.Reviews == nil {
		p.Reviews = []model.Review{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var p model.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs trae en bloque los productos referenciados por un carrito.
func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Product, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var out []*model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoProductRepository) Find(ctx context.Context, f ProductFilter) ([]*model.Product, error) {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.MinStock != nil || f.MaxStock != nil {
		stock := bson.M{}
		if f.MinStock != nil {
			stock["$gte"] = *f.MinStock
		}
		if f.MaxStock != nil {
			stock["$lte"] = *f.MaxStock
		}
		query["stock"] = stock
	}
	if f.Search != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: f.Search, Options: "i"}}
	}

	cur, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var out []*model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoProductRepository) FindRelated(ctx context.Context, category string, exclude primitive.ObjectID, limit int64) ([]*model.Product, error) {
	filter := bson.M{"category": category, "_id": bson.M{"$ne": exclude}}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var out []*model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByCategories excluye los productos ya comprados (para recomendaciones).
func (r *MongoProductRepository) FindByCategories(ctx context.Context, categories []string, exclude []primitive.ObjectID, limit int64) ([]*model.Product, error) {
	filter := bson.M{
		"category": bson.M{"$in": categories},
		"_id":      bson.M{"$nin": exclude},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	var out []*model.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, p *model.Product) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementStock suma delta al stock (restock al cancelar una orden).
func (r *MongoProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullUserReviews saca las reseñas de un usuario de todos los productos
// (cascada del borrado de cuenta).
func (r *MongoProductRepository) PullUserReviews(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.UpdateMany(ctx,
		bson.M{"reviews.user_id": userID},
		bson.M{"$pull": bson.M{"reviews": bson.M{"user_id": userID}}},
	)
	return err
}
