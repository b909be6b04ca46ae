package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/logger"
	rolerepo "cryptochat-backend/internal/features/role/repository"
	"cryptochat-backend/internal/features/user/models"
	"cryptochat-backend/internal/features/user/repository"
)

type UserService interface {
	List(ctx context.Context, onlineOnly bool) ([]*models.User, error)
	// AssignRole stores the role's name on the user (denormalized by name,
	// not by reference).
	AssignRole(ctx context.Context, userID, roleID string) (*models.User, error)
}

type userService struct {
	repo  repository.UserRepository
	roles rolerepo.RoleRepository
}

func NewUserService(repo repository.UserRepository, roles rolerepo.RoleRepository) UserService {
	return &userService{repo: repo, roles: roles}
}

func (s *userService) List(ctx context.Context, onlineOnly bool) ([]*models.User, error) {
	users, err := s.repo.List(ctx, onlineOnly)
	if err != nil {
		return nil, errors.NewDatabaseError("list users", err)
	}
	return users, nil
}

func (s *userService) AssignRole(ctx context.Context, userID, roleID string) (*models.User, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.NewValidationError("id", "invalid user id")
	}
	roleOID, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return nil, errors.NewValidationError("roleId", "invalid role id")
	}

	role, err := s.roles.FindByID(ctx, roleOID)
	if err != nil {
		return nil, errors.NewDatabaseError("find role", err)
	}
	if role == nil {
		return nil, errors.New(errors.ErrCodeRoleNotFound, "Role not found").WithDetail("id", roleID)
	}

	user, err := s.repo.FindByID(ctx, userOID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrCodeUserNotFound, "User not found").WithDetail("id", userID)
	}

	if err := s.repo.SetRole(ctx, userOID, role.Name); err != nil {
		return nil, errors.NewDatabaseError("set user role", err)
	}

	user.Role = role.Name
	logger.Info().Str("username", user.Username).Str("role", role.Name).Msg("Role assigned")
	return user, nil
}
