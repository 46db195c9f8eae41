package contract

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// User is a row of the users table keyed by column name.
// The columns are defined by the database schema, not by this API.
type User map[string]any

// CreateUserResponse is returned by POST /users.
type CreateUserResponse struct {
	Message string `json:"message"`
}
