// Package client is the typed HTTP client for the API.
//
// Its accessors are built from the endpoint declarations in package contract,
// so they accept and return exactly the payload types the server handlers do.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"

	"github.com/hszk-dev/monostack/pkg/contract"
)

// BaseURLEnv names the environment variable read by FromEnv.
const BaseURLEnv = "NEXT_PUBLIC_API_URL"

var (
	// ErrInvalidBaseURL is returned when the base URL is empty or malformed.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrMissingBaseURL is returned by FromEnv when BaseURLEnv is unset.
	ErrMissingBaseURL = errors.New("missing " + BaseURLEnv + " environment variable")
)

// Client mirrors the API route tree: one accessor per route.
type Client struct {
	Health Accessor[contract.Empty, contract.HealthResponse]
	Users  UsersClient

	baseURL *url.URL
}

// UsersClient holds the accessors mounted under /users.
type UsersClient struct {
	List   Accessor[contract.Empty, []contract.User]
	Create Accessor[json.RawMessage, contract.CreateUserResponse]
}

// Option configures a Client.
type Option func(*transport)

// WithHTTPClient sets the http.Client used for every call.
func WithHTTPClient(c *http.Client) Option {
	return func(t *transport) {
		t.http = c
	}
}

// WithHeader adds a header sent with every call.
func WithHeader(key, value string) Option {
	return func(t *transport) {
		t.header.Add(key, value)
	}
}

// New creates a Client targeting baseURL. It validates the URL and performs
// no network I/O.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	t := &transport{
		base:   base,
		http:   http.DefaultClient,
		header: make(http.Header),
	}
	for _, opt := range opts {
		opt(t)
	}

	return &Client{
		Health: newAccessor(t, contract.Health),
		Users: UsersClient{
			List:   newAccessor(t, contract.ListUsers.Mounted(contract.UsersPrefix)),
			Create: newAccessor(t, contract.CreateUser.Mounted(contract.UsersPrefix)),
		},
		baseURL: base,
	}, nil
}

// FromEnv creates a Client targeting the URL in BaseURLEnv.
func FromEnv(opts ...Option) (*Client, error) {
	v := strings.TrimSpace(os.Getenv(BaseURLEnv))
	if v == "" {
		return nil, ErrMissingBaseURL
	}
	return New(v, opts...)
}

// BaseURL returns the URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type keyed interface {
	Key() contract.Key
}

// Keys returns the method and path of every accessor in the client tree.
func (c *Client) Keys() []contract.Key {
	var keys []contract.Key
	collectKeys(reflect.ValueOf(c).Elem(), &keys)
	return keys
}

func collectKeys(v reflect.Value, keys *[]contract.Key) {
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !f.CanInterface() {
			continue
		}
		if k, ok := f.Interface().(keyed); ok {
			*keys = append(*keys, k.Key())
			continue
		}
		if f.Kind() == reflect.Struct {
			collectKeys(f, keys)
		}
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidBaseURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return nil, fmt.Errorf("%w: must not carry a query or fragment", ErrInvalidBaseURL)
	}
	return u, nil
}
