package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/monostack/internal/domain/model"
	"github.com/hszk-dev/monostack/internal/domain/repository"
	"github.com/hszk-dev/monostack/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// List returns every row of the users table with all of its columns.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT * FROM users`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableUsers).Inc()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, classify("failed to query users", err)
	}
	defer rows.Close()

	columns := columnNames(rows.FieldDescriptions())

	users := make([]model.User, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read user row: %w", err)
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		users = append(users, model.NewUserFromRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, classify("error iterating users", err)
	}

	return users, nil
}

func columnNames(fields []pgconn.FieldDescription) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// normalize converts decoded values whose Go type has no faithful JSON form.
// pgx decodes uuid columns to [16]byte, which would encode as a number array.
func normalize(v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val)
	case []any:
		for i, e := range val {
			val[i] = normalize(e)
		}
		return val
	default:
		return v
	}
}

// classify wraps err, marking connection failures as repository.ErrUpstreamUnavailable.
func classify(msg string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", msg, repository.ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isUnavailable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, net.ErrClosed)
}

// Compile-time verification that UserRepository implements repository.UserRepository.
var _ repository.UserRepository = (*UserRepository)(nil)
