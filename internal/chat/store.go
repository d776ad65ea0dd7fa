// store.go
package chat

import (
	"context"

	"ethioshop-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persiste el historial de cada conversación. El hub sólo conoce esta
// interfaz; la implementación real va a Mongo.
type Store interface {
	Append(ctx context.Context, msg *model.ChatMessage) error
	History(ctx context.Context, conversationID string) ([]*model.ChatMessage, error)
}

type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("chat_messages")}
}

func (s *MongoStore) Append(ctx context.Context, msg *model.ChatMessage) error {
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) History(ctx context.Context, conversationID string) ([]*model.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.col.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	var out []*model.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
