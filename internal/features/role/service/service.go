package service

import (
	"context"
	"strings"
	"time"

	"cryptochat-backend/internal/common/errors"
	"cryptochat-backend/internal/common/logger"
	"cryptochat-backend/internal/features/role/models"
	"cryptochat-backend/internal/features/role/repository"
)

type RoleService interface {
	List(ctx context.Context) ([]*models.Role, error)
	Create(ctx context.Context, name, description string) (*models.Role, error)
}

type roleService struct {
	repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) RoleService {
	return &roleService{repo: repo}
}

func (s *roleService) List(ctx context.Context) ([]*models.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list roles", err)
	}
	return roles, nil
}

func (s *roleService) Create(ctx context.Context, name, description string) (*models.Role, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.NewValidationError("name", "role name is required")
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, errors.NewDatabaseError("find role by name", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("role", "role already exists").WithDetail("name", name)
	}

	role := &models.Role{
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, errors.NewDatabaseError("create role", err)
	}

	logger.Info().Str("role", name).Msg("Role created")
	return role, nil
}
