package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hszk-dev/monostack/internal/domain/model"
	"github.com/hszk-dev/monostack/internal/domain/repository"
)

// UserService defines the interface for user operations.
type UserService interface {
	// ListUsers returns every row of the users table.
	ListUsers(ctx context.Context) ([]model.User, error)

	// CreateUser acknowledges a user payload. Nothing is persisted.
	CreateUser(ctx context.Context, payload json.RawMessage) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// ListUsers passes the read through to the repository.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// CreateUser discards the payload; the endpoint is a placeholder.
func (s *userService) CreateUser(ctx context.Context, payload json.RawMessage) error {
	slog.DebugContext(ctx, "user payload acknowledged and discarded",
		slog.Int("bytes", len(payload)),
	)
	return nil
}
