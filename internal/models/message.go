package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	GroupID   primitive.ObjectID `bson:"group_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Text      string             `bson:"text,omitempty"`
	FileURL   string             `bson:"file_url,omitempty"`
	FileName  string             `bson:"file_name,omitempty"`
	Type      string             `bson:"type"`
	CreatedAt time.Time          `bson:"created_at"`
}
