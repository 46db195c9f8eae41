package cache

import (
	"context"
	"time"

	"github.com/hszk-dev/monostack/internal/domain/model"
)

// UserListCache defines the interface for caching the users table listing.
// Implementations should handle serialization/deserialization transparently.
type UserListCache interface {
	// Get retrieves the cached listing.
	// Returns nil, nil if nothing is cached (cache miss).
	Get(ctx context.Context) ([]model.User, error)

	// Set stores the listing with the specified TTL.
	Set(ctx context.Context, users []model.User, ttl time.Duration) error
}
