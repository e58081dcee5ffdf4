package repositories

import (
	"context"
	"time"

	"github.com/avdev42/go-messenger/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for chat message storage
type MessageRepository interface {
	Insert(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListByChat(ctx context.Context, chatID string) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository on a Mongo collection
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Insert appends a message to its chat
func (r *MongoMessageRepository) Insert(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return msg, nil
}

// ListByChat retrieves a chat's messages ascending by creation time
func (r *MongoMessageRepository) ListByChat(ctx context.Context, chatID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	for cursor.Next(ctx) {
		var msg models.Message
		if err := cursor.Decode(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
