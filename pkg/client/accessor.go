package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/hszk-dev/monostack/pkg/contract"
)

// ErrUnboundAccessor is returned when calling an Accessor not built by New.
var ErrUnboundAccessor = errors.New("accessor is not bound to a client")

// ErrMissingPathParam is returned when a path placeholder has no value.
var ErrMissingPathParam = errors.New("missing path parameter")

const requestIDHeader = "X-Request-Id"

type transport struct {
	base   *url.URL
	http   *http.Client
	header http.Header
}

// Accessor calls one API route.
type Accessor[In, Out any] struct {
	t        *transport
	endpoint contract.Endpoint[In, Out]
}

func newAccessor[In, Out any](t *transport, ep contract.Endpoint[In, Out]) Accessor[In, Out] {
	return Accessor[In, Out]{t: t, endpoint: ep}
}

// Key returns the method and path of the route.
func (a Accessor[In, Out]) Key() contract.Key {
	return a.endpoint.Key()
}

// Call issues exactly one request. A transport failure is returned as an
// error; a non-2xx status is not an error and is reported by Response.OK.
func (a Accessor[In, Out]) Call(ctx context.Context, in In, opts ...CallOption) (*Response[Out], error) {
	if a.t == nil {
		return nil, ErrUnboundAccessor
	}

	co := callOptions{header: make(http.Header)}
	for _, opt := range opts {
		opt(&co)
	}

	path, err := expandPath(a.endpoint.Path, co.params)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, a.endpoint.Method, a.t.base.JoinPath(path).String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, vs := range a.t.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, vs := range co.header {
		req.Header[k] = vs
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	resp, err := a.t.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", a.endpoint.Method, a.endpoint.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", a.endpoint.Method, a.endpoint.Path, err)
	}

	return &Response[Out]{
		OK:         resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		body:       data,
	}, nil
}

func encodeBody(in any) (io.Reader, error) {
	switch v := in.(type) {
	case contract.Empty:
		return nil, nil
	case json.RawMessage:
		if len(v) == 0 {
			return nil, nil
		}
		return bytes.NewReader(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

var placeholder = regexp.MustCompile(`\{([^}/]+)\}`)

func expandPath(path string, params map[string]string) (string, error) {
	var missing []string
	expanded := placeholder.ReplaceAllStringFunc(path, func(m string) string {
		name, _, _ := strings.Cut(m[1:len(m)-1], ":")
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingPathParam, strings.Join(missing, ", "))
	}
	return expanded, nil
}
