// Package route keeps the table of typed API routes and dispatches requests to them.
package route

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/monostack/pkg/contract"
)

// HandlerFunc handles a decoded request and returns the response payload.
type HandlerFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// ErrorFunc writes the HTTP response for an error raised during dispatch,
// decoding or handling.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// Descriptor is a single registered route.
type Descriptor struct {
	Method string
	Path   string
	// Input is nil when the route takes no body.
	Input  reflect.Type
	Output reflect.Type

	serve func(w http.ResponseWriter, r *http.Request, onError ErrorFunc)
}

// Key returns the method and path of the descriptor.
func (d Descriptor) Key() contract.Key {
	return contract.Key{Method: d.Method, Path: d.Path}
}

// Registry is an ordered set of routes. The zero value is not usable; call New.
type Registry struct {
	routes []Descriptor
	index  map[contract.Key]struct{}
	errs   []error
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{index: make(map[contract.Key]struct{})}
}

// Handle registers fn for the endpoint and returns the registry for chaining.
func Handle[In, Out any](reg *Registry, ep contract.Endpoint[In, Out], fn HandlerFunc[In, Out]) *Registry {
	reg.add(Descriptor{
		Method: ep.Method,
		Path:   contract.JoinPath("", ep.Path),
		Input:  inputType[In](),
		Output: reflect.TypeFor[Out](),
		serve: func(w http.ResponseWriter, r *http.Request, onError ErrorFunc) {
			in, err := decodeInput[In](r)
			if err != nil {
				onError(w, r, err)
				return
			}

			out, err := fn(r.Context(), in)
			if err != nil {
				onError(w, r, err)
				return
			}

			writeJSON(w, http.StatusOK, out)
		},
	})
	return reg
}

// Mount adds every route of sub with prefix prepended to its path.
func (r *Registry) Mount(prefix string, sub *Registry) *Registry {
	r.errs = append(r.errs, sub.errs...)
	for _, d := range sub.routes {
		d.Path = contract.JoinPath(prefix, d.Path)
		r.add(d)
	}
	return r
}

// Routes returns the registered routes in registration order.
func (r *Registry) Routes() []Descriptor {
	out := make([]Descriptor, len(r.routes))
	copy(out, r.routes)
	return out
}

// Err reports every configuration error found while registering routes.
func (r *Registry) Err() error {
	return errors.Join(r.errs...)
}

// Handler builds a router dispatching to the registered routes.
// It fails if any route was misconfigured, so a bad table never serves traffic.
func (r *Registry) Handler(onError ErrorFunc) (chi.Router, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if onError == nil {
		onError = DefaultErrorFunc
	}

	mux := chi.NewRouter()
	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		onError(w, req, ErrNotFound)
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		onError(w, req, ErrMethodNotAllowed)
	})

	for _, d := range r.routes {
		serve := d.serve
		mux.Method(d.Method, d.Path, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			serve(w, req, onError)
		}))
	}

	return mux, nil
}

func (r *Registry) add(d Descriptor) {
	if !validMethod(d.Method) {
		r.errs = append(r.errs, fmt.Errorf("%w: unsupported method %q for %s", ErrInvalidRoute, d.Method, d.Path))
		return
	}
	if !strings.HasPrefix(d.Path, "/") {
		r.errs = append(r.errs, fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, d.Path))
		return
	}

	key := d.Key()
	if _, exists := r.index[key]; exists {
		r.errs = append(r.errs, fmt.Errorf("%w: %s", ErrDuplicateRoute, key))
		return
	}
	r.index[key] = struct{}{}
	r.routes = append(r.routes, d)
}

func validMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}

func inputType[In any]() reflect.Type {
	t := reflect.TypeFor[In]()
	if t == reflect.TypeFor[contract.Empty]() {
		return nil
	}
	return t
}

func decodeInput[In any](r *http.Request) (In, error) {
	var in In
	switch p := any(&in).(type) {
	case *contract.Empty:
		return in, nil
	case *json.RawMessage:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return in, fmt.Errorf("%w: read body: %v", ErrBadRequest, err)
		}
		*p = body
		return in, nil
	default:
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			return in, fmt.Errorf("%w: decode body: %v", ErrBadRequest, err)
		}
		return in, nil
	}
}
