package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thereayou/studnet/internal/models"
)

// AddMember создаёт запись участия. Уникальность пары (group_id, user_id)
// обеспечивает индекс, дубликат превращается в ErrDuplicateMembership.
func (d *Database) AddMember(ctx context.Context, groupID, userID string) error {
	groupOID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return ErrNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	_, err = d.memberships.InsertOne(ctx, models.Membership{
		ID:        primitive.NewObjectID(),
		GroupID:   groupOID,
		UserID:    userOID,
		CreatedAt: time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateMembership
	}
	return err
}

func (d *Database) RemoveMember(ctx context.Context, groupID, userID string) error {
	groupOID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return ErrNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}

	_, err = d.memberships.DeleteOne(ctx, bson.M{"group_id": groupOID, "user_id": userOID})
	return err
}

// ListMembershipsByGroups — один батч-запрос для всех групп списка
func (d *Database) ListMembershipsByGroups(ctx context.Context, groupIDs []string) ([]models.Membership, error) {
	oids := make([]primitive.ObjectID, 0, len(groupIDs))
	for _, id := range groupIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := d.memberships.Find(ctx, bson.M{"group_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}

	var memberships []models.Membership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (d *Database) DeleteMembershipsByGroup(ctx context.Context, groupID string) error {
	oid, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return ErrNotFound
	}

	_, err = d.memberships.DeleteMany(ctx, bson.M{"group_id": oid})
	return err
}
