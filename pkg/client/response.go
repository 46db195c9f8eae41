package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the result of a call whose body decodes to T.
// Check OK before decoding: error responses carry a different body.
type Response[T any] struct {
	OK         bool
	StatusCode int
	Header     http.Header

	body []byte
}

// JSON decodes the body into T.
func (r *Response[T]) JSON() (T, error) {
	var v T
	if err := json.Unmarshal(r.body, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// Bytes returns the raw body.
func (r *Response[T]) Bytes() []byte {
	return r.body
}
