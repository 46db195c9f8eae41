// Package contract declares the HTTP API shared by the server and its clients.
//
// Every route is an Endpoint value whose type parameters carry the request and
// response payloads. The server binds handlers to these values and the client
// builds its accessors from them, so a change to either payload type fails to
// compile on whichever side has not been updated.
package contract

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Empty marks an endpoint that takes no request body.
type Empty struct{}

// Endpoint describes a single route: its method, its path and, through the
// type parameters, the payloads it accepts and returns.
//
// In is Empty when no body is sent and json.RawMessage when any body is
// accepted without being parsed.
type Endpoint[In, Out any] struct {
	Method string
	Path   string
}

// Key identifies an endpoint by method and fully-qualified path.
type Key struct {
	Method string
	Path   string
}

func (k Key) String() string {
	return k.Method + " " + k.Path
}

// Key returns the method and path of the endpoint.
func (e Endpoint[In, Out]) Key() Key {
	return Key{Method: e.Method, Path: e.Path}
}

// Mounted returns the endpoint with prefix prepended to its path.
func (e Endpoint[In, Out]) Mounted(prefix string) Endpoint[In, Out] {
	return Endpoint[In, Out]{Method: e.Method, Path: JoinPath(prefix, e.Path)}
}

// JoinPath concatenates a mount prefix and a relative route path.
// A relative path of "/" or "" resolves to the prefix itself.
func JoinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	if path == "" || path == "/" {
		if prefix == "" {
			return "/"
		}
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return prefix + path
}

// UsersPrefix is where the users routes are mounted.
const UsersPrefix = "/users"

var (
	// Health reports liveness and process uptime.
	Health = Endpoint[Empty, HealthResponse]{Method: http.MethodGet, Path: "/health"}

	// ListUsers returns every row of the users table. Relative to UsersPrefix.
	ListUsers = Endpoint[Empty, []User]{Method: http.MethodGet, Path: "/"}

	// CreateUser acknowledges a user payload. Relative to UsersPrefix.
	CreateUser = Endpoint[json.RawMessage, CreateUserResponse]{Method: http.MethodPost, Path: "/"}
)

// Keys returns the fully-qualified key of every endpoint in the API.
func Keys() []Key {
	return []Key{
		Health.Key(),
		ListUsers.Mounted(UsersPrefix).Key(),
		CreateUser.Mounted(UsersPrefix).Key(),
	}
}
