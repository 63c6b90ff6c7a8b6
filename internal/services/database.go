package services

import (
	"context"

	"github.com/thereayou/studnet/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type GroupStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

type MembershipStore interface {
	AddMember(ctx context.Context, groupID, userID string) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	ListMembershipsByGroups(ctx context.Context, groupIDs []string) ([]models.Membership, error)
	DeleteMembershipsByGroup(ctx context.Context, groupID string) error
}

type MessageStore interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessagesByGroup(ctx context.Context, groupID string) ([]models.Message, error)
	DeleteMessagesByGroup(ctx context.Context, groupID string) error
}

// Store — всё, что умеет база; хендлеры зависят от интерфейса, не от Mongo
type Store interface {
	UserStore
	GroupStore
	MembershipStore
	MessageStore
}
