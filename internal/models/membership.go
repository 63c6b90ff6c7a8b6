package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership — пара (группа, пользователь), уникальная на уровне индекса
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	GroupID   primitive.ObjectID `bson:"group_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}
