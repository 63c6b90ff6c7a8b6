package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thereayou/studnet/internal/models"
)

func (d *Database) CreateMessage(ctx context.Context, message *models.Message) error {
	message.CreatedAt = time.Now().UTC()
	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}

	_, err := d.messages.InsertOne(ctx, message)
	return err
}

// ListMessagesByGroup возвращает сообщения группы в хронологическом порядке
func (d *Database) ListMessagesByGroup(ctx context.Context, groupID string) ([]models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := d.messages.Find(ctx, bson.M{"group_id": oid}, opts)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (d *Database) DeleteMessagesByGroup(ctx context.Context, groupID string) error {
	oid, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return ErrNotFound
	}

	_, err = d.messages.DeleteMany(ctx, bson.M{"group_id": oid})
	return err
}
