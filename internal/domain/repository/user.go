package repository

import (
	"context"

	"github.com/hszk-dev/monostack/internal/domain/model"
)

// UserRepository defines read access to the users table.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type UserRepository interface {
	// List returns every row of the users table, unfiltered.
	// Returns an empty slice when the table is empty.
	// Returns ErrUpstreamUnavailable if the datastore cannot be reached.
	List(ctx context.Context) ([]model.User, error)
}
