package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hszk-dev/monostack/internal/domain/model"
)

// mockUserRepository provides a configurable mock for UserRepository.
type mockUserRepository struct {
	listFn func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserRepository) List(ctx context.Context) ([]model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// mockUserService is a mock implementation of UserService for testing.
type mockUserService struct {
	listUsersFn  func(ctx context.Context) ([]model.User, error)
	createUserFn func(ctx context.Context, payload json.RawMessage) error
	listCount    atomic.Int32
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	m.listCount.Add(1)
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return []model.User{}, nil
}

func (m *mockUserService) CreateUser(ctx context.Context, payload json.RawMessage) error {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, payload)
	}
	return nil
}

// mockUserListCache is a mock implementation of UserListCache for testing.
type mockUserListCache struct {
	mu       sync.RWMutex
	data     []model.User
	setCount atomic.Int32
	getFn    func(ctx context.Context) ([]model.User, error)
	setFn    func(ctx context.Context, users []model.User, ttl time.Duration) error
}

func (m *mockUserListCache) Get(ctx context.Context) ([]model.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data, nil
}

func (m *mockUserListCache) Set(ctx context.Context, users []model.User, ttl time.Duration) error {
	m.setCount.Add(1)
	if m.setFn != nil {
		return m.setFn(ctx, users, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = users
	return nil
}
