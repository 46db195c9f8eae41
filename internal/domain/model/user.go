package model

// User is a row of the users table keyed by column name.
// The columns belong to the database schema; the API passes them through as-is.
type User map[string]any

// NewUserFromRow builds a User from parallel column names and values.
// Values beyond the shorter of the two slices are ignored.
func NewUserFromRow(columns []string, values []any) User {
	n := min(len(columns), len(values))
	u := make(User, n)
	for i := 0; i < n; i++ {
		u[columns[i]] = values[i]
	}
	return u
}
