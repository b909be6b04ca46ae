package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/features/role/models"
)

// RoleRepository stores role records. Find methods return (nil, nil) when no
// document matches.
type RoleRepository interface {
	List(ctx context.Context) ([]*models.Role, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	Create(ctx context.Context, role *models.Role) error
}
