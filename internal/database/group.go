package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thereayou/studnet/internal/models"
)

func (d *Database) CreateGroup(ctx context.Context, group *models.Group) error {
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}

	_, err := d.groups.InsertOne(ctx, group)
	return err
}

func (d *Database) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var group models.Group
	if err := d.groups.FindOne(ctx, bson.M{"_id": oid}).Decode(&group); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// ListGroups возвращает все группы, сначала самые свежие
func (d *Database) ListGroups(ctx context.Context) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := d.groups.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (d *Database) DeleteGroup(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := d.groups.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
