package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/features/user/models"
)

// UserRepository is the durable store for identity records. Find methods
// return (nil, nil) when no document matches.
type UserRepository interface {
	// FindByUsernameOrWallet resolves an identity by either field, first
	// match wins. Kept as a single $or query to preserve the join semantics.
	FindByUsernameOrWallet(ctx context.Context, username, walletAddress string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// BindSocket marks the user online under socketID and applies avatar and
	// role when non-empty (last write wins, never cleared).
	BindSocket(ctx context.Context, id primitive.ObjectID, socketID, avatar, role string) error
	// SetOffline clears the socket binding and stamps lastSeen.
	SetOffline(ctx context.Context, id primitive.ObjectID) error
	// ResetPresence marks every user offline. Run at startup, when the
	// in-memory registry is necessarily empty.
	ResetPresence(ctx context.Context) error
	SetRole(ctx context.Context, id primitive.ObjectID, roleName string) error
	List(ctx context.Context, onlineOnly bool) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	CountOnline(ctx context.Context) (int64, error)
}
