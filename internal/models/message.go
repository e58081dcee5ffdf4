package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a single chat message, stored in the Mongo "messages"
// collection. Append-only; a chat's messages are read back ascending by
// created_at.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    string             `bson:"chat_id" json:"chat_id"`
	SenderID  uint               `bson:"sender_id" json:"sender_id"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MessageView is a message as rendered inside a ChatView, with the sender
// resolved to a username.
type MessageView struct {
	ID             string    `json:"id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
