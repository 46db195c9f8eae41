package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hszk-dev/monostack/internal/domain/model"
	"github.com/hszk-dev/monostack/internal/domain/repository"
	"github.com/hszk-dev/monostack/pkg/contract"
)

// Mock UserService

type mockUserService struct {
	listUsersFn  func(ctx context.Context) ([]model.User, error)
	createUserFn func(ctx context.Context, payload json.RawMessage) error
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx)
	}
	return []model.User{}, nil
}

func (m *mockUserService) CreateUser(ctx context.Context, payload json.RawMessage) error {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, payload)
	}
	return nil
}

func newTestRouter(t *testing.T, svc *mockUserService) http.Handler {
	t.Helper()
	reg := NewRegistry(NewHealthHandler(time.Now()), NewUserHandler(svc))
	h, err := reg.Handler(WriteError)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return h
}

func TestUserHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(m *mockUserService)
		wantStatusCode int
		wantErrorCode  string
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "returns rows as objects",
			setupMock: func(m *mockUserService) {
				m.listUsersFn = func(ctx context.Context) ([]model.User, error) {
					return []model.User{
						{"id": 1, "email": "ada@example.com"},
						{"id": 2, "email": "linus@example.com"},
					}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp []map[string]any
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if len(resp) != 2 {
					t.Fatalf("expected 2 users, got %d", len(resp))
				}
				if resp[0]["email"] != "ada@example.com" {
					t.Errorf("expected ada@example.com, got %v", resp[0]["email"])
				}
			},
		},
		{
			name:           "empty table encodes as empty array",
			setupMock:      func(m *mockUserService) {},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				if got := string(bytes.TrimSpace(body)); got != "[]" {
					t.Errorf("expected [], got %s", got)
				}
			},
		},
		{
			name: "datastore unreachable",
			setupMock: func(m *mockUserService) {
				m.listUsersFn = func(ctx context.Context) ([]model.User, error) {
					return nil, fmt.Errorf("query users: %w", repository.ErrUpstreamUnavailable)
				}
			},
			wantStatusCode: http.StatusServiceUnavailable,
			wantErrorCode:  "upstream_unavailable",
		},
		{
			name: "unexpected datastore error",
			setupMock: func(m *mockUserService) {
				m.listUsersFn = func(ctx context.Context) ([]model.User, error) {
					return nil, errors.New("relation does not exist")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrorCode:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUserService{}
			tt.setupMock(mock)
			r := newTestRouter(t, mock)

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, rec.Code)
			}

			if tt.wantErrorCode != "" {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Error != tt.wantErrorCode {
					t.Errorf("expected error code %s, got %s", tt.wantErrorCode, resp.Error)
				}
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, rec.Body.Bytes())
			}
		})
	}
}

func TestUserHandler_Create(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{name: "json object", body: []byte(`{"name":"Ada","email":"ada@example.com"}`)},
		{name: "json array", body: []byte(`[1,2,3]`)},
		{name: "not json", body: []byte(`name=Ada`)},
		{name: "empty body", body: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var received json.RawMessage
			mock := &mockUserService{
				createUserFn: func(ctx context.Context, payload json.RawMessage) error {
					received = payload
					return nil
				},
			}
			r := newTestRouter(t, mock)

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}

			var resp contract.CreateUserResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Message != "User created" {
				t.Errorf("expected message %q, got %q", "User created", resp.Message)
			}
			if !bytes.Equal(received, tt.body) {
				t.Errorf("service received %q, want %q", received, tt.body)
			}
		})
	}
}

func TestNewRegistry_DispatchErrors(t *testing.T) {
	r := newTestRouter(t, &mockUserService{})

	tests := []struct {
		name           string
		method         string
		path           string
		wantStatusCode int
		wantErrorCode  string
	}{
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatusCode: http.StatusNotFound, wantErrorCode: "not_found"},
		{name: "wrong method on users", method: http.MethodDelete, path: "/users", wantStatusCode: http.StatusMethodNotAllowed, wantErrorCode: "method_not_allowed"},
		{name: "wrong method on health", method: http.MethodPost, path: "/health", wantStatusCode: http.StatusMethodNotAllowed, wantErrorCode: "method_not_allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatusCode {
				t.Errorf("expected status %d, got %d", tt.wantStatusCode, rec.Code)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error != tt.wantErrorCode {
				t.Errorf("expected error code %s, got %s", tt.wantErrorCode, resp.Error)
			}
		})
	}
}

func TestNewRegistry_MatchesContract(t *testing.T) {
	reg := NewRegistry(NewHealthHandler(time.Now()), NewUserHandler(&mockUserService{}))

	if err := reg.Err(); err != nil {
		t.Fatalf("registry error: %v", err)
	}

	registered := make(map[contract.Key]bool)
	for _, d := range reg.Routes() {
		registered[d.Key()] = true
	}

	want := contract.Keys()
	if len(registered) != len(want) {
		t.Errorf("registry has %d routes, contract has %d", len(registered), len(want))
	}
	for _, k := range want {
		if !registered[k] {
			t.Errorf("contract route %s is not registered", k)
		}
	}
}

func TestHealth_ThroughRouter(t *testing.T) {
	r := newTestRouter(t, &mockUserService{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %v", resp["status"])
	}
	uptime, ok := resp["uptime"].(float64)
	if !ok || uptime < 0 {
		t.Errorf("expected non-negative numeric uptime, got %#v", resp["uptime"])
	}
}
