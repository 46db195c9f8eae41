package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hszk-dev/monostack/internal/domain/model"
	"github.com/hszk-dev/monostack/internal/infrastructure/cache"
	"github.com/hszk-dev/monostack/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// usersKey is the singleflight key for the users listing.
const usersKey = "users"

// CachedUserServiceConfig holds configuration for CachedUserService.
type CachedUserServiceConfig struct {
	// CacheTTL is the TTL for the cached users listing.
	CacheTTL time.Duration
}

// cachedUserService wraps UserService with a cache-aside users listing.
type cachedUserService struct {
	delegate UserService
	cache    cache.UserListCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedUserService creates a new UserService wrapping the provided one.
func NewCachedUserService(
	delegate UserService,
	userCache cache.UserListCache,
	cfg CachedUserServiceConfig,
) UserService {
	return &cachedUserService{
		delegate: delegate,
		cache:    userCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// CreateUser delegates to the underlying service. The listing is not
// invalidated because nothing is written.
func (s *cachedUserService) CreateUser(ctx context.Context, payload json.RawMessage) error {
	return s.delegate.CreateUser(ctx, payload)
}

// ListUsers returns the listing from cache, falling back to the delegate.
// Concurrent misses share one delegate call.
func (s *cachedUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	result, err, shared := s.sfGroup.Do(usersKey, func() (any, error) {
		return s.listWithCache(ctx)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.([]model.User), nil
}

func (s *cachedUserService) listWithCache(ctx context.Context) ([]model.User, error) {
	users, err := s.cache.Get(ctx)
	if err != nil {
		slog.Warn("cache get failed, falling back to database",
			"error", err,
		)
	}

	if users != nil {
		return users, nil
	}

	users, err = s.delegate.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, users, s.cacheTTL); err != nil {
		slog.Warn("failed to cache users",
			"error", err,
		)
	}

	return users, nil
}
