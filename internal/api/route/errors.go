package route

import "errors"

var (
	// ErrNotFound is returned when no route matches the request path.
	ErrNotFound = errors.New("route not found")

	// ErrMethodNotAllowed is returned when the path matches but the method does not.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrBadRequest is returned when the request body cannot be decoded into the route input.
	ErrBadRequest = errors.New("bad request")

	// ErrDuplicateRoute is returned when two routes share a method and fully-qualified path.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrInvalidRoute is returned when a route has an unsupported method or a malformed path.
	ErrInvalidRoute = errors.New("invalid route")
)
