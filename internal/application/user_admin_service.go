package application

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenkart/greenkart-api/internal/domain/entity"
	repo "github.com/greenkart/greenkart-api/internal/domain/repository"
	"github.com/greenkart/greenkart-api/pkg/apperr"
)

// UserAdminService backs the admin user management endpoints.
type UserAdminService struct {
	Users repo.UserRepository
}

func NewUserAdminService(users repo.UserRepository) *UserAdminService {
	return &UserAdminService{Users: users}
}

func (s *UserAdminService) List(ctx context.Context) ([]entity.Sanitized, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Sanitized, 0, len(users))
	for i := range users {
		out = append(out, users[i].Sanitize())
	}
	return out, nil
}

func (s *UserAdminService) SetRole(ctx context.Context, id primitive.ObjectID, role string) (*entity.Sanitized, error) {
	if !entity.ValidRole(role) {
		return nil, apperr.BadRequest("Invalid role value")
	}
	u, err := s.Users.SetRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	sanitized := u.Sanitize()
	return &sanitized, nil
}

func (s *UserAdminService) SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) (*entity.Sanitized, error) {
	u, err := s.Users.SetBlocked(ctx, id, blocked)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	sanitized := u.Sanitize()
	return &sanitized, nil
}
