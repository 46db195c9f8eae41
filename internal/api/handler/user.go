package handler

import (
	"context"
	"encoding/json"

	"github.com/hszk-dev/monostack/internal/usecase"
	"github.com/hszk-dev/monostack/pkg/contract"
)

// UserCreatedMessage is the acknowledgment returned by POST /users.
const UserCreatedMessage = "User created"

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	svc usecase.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc usecase.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /users
func (h *UserHandler) List(ctx context.Context, _ contract.Empty) ([]contract.User, error) {
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]contract.User, len(users))
	for i, u := range users {
		out[i] = contract.User(u)
	}
	return out, nil
}

// Create handles POST /users
func (h *UserHandler) Create(ctx context.Context, payload json.RawMessage) (contract.CreateUserResponse, error) {
	if err := h.svc.CreateUser(ctx, payload); err != nil {
		return contract.CreateUserResponse{}, err
	}
	return contract.CreateUserResponse{Message: UserCreatedMessage}, nil
}
