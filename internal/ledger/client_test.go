package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// staticTokens returns a token source pre-loaded with a valid lease so
// client tests never touch an auth server.
func staticTokens(token string) *TokenSource {
	s := &TokenSource{now: time.Now}
	s.current.Store(&lease{
		token:     token,
		expiresAt: time.Now().Add(time.Hour),
	})
	return s
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &Client{
		baseURL:    server.URL,
		tokens:     staticTokens("test-token"),
		httpClient: server.Client(),
	}
}

func TestInvokeRequestShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/state/ledger-end" {
			t.Errorf("path = %q, want /v2/state/ledger-end", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		w.Write([]byte(`{"offset": 42}`))
	})

	var out map[string]json.Number
	if err := client.Invoke(context.Background(), http.MethodGet, "state/ledger-end", nil, &out); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if out["offset"] != "42" {
		t.Errorf("offset = %q, want 42", out["offset"])
	}
}

func TestInvokeSerializesBodyOnlyForPost(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		wantBody bool
	}{
		{name: "POST carries body", method: http.MethodPost, wantBody: true},
		{name: "GET omits body", method: http.MethodGet, wantBody: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				data, _ := io.ReadAll(r.Body)
				if tt.wantBody && len(data) == 0 {
					t.Error("expected request body, got none")
				}
				if !tt.wantBody && len(data) != 0 {
					t.Errorf("expected no request body, got %q", data)
				}
				w.Write([]byte(`{}`))
			})

			body := map[string]string{"key": "value"}
			if err := client.Invoke(context.Background(), tt.method, "endpoint", body, nil); err != nil {
				t.Fatalf("Invoke() error = %v", err)
			}
		})
	}
}

func TestInvokeErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantCode    string
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "structured ledger error",
			statusCode:  http.StatusConflict,
			body:        `{"code":"CONTRACT_NOT_FOUND","message":"contract abc is archived","cause":""}`,
			wantCode:    "CONTRACT_NOT_FOUND",
			wantMessage: "contract abc is archived",
			wantDetails: true,
		},
		{
			name:        "structured error with cause only",
			statusCode:  http.StatusBadRequest,
			body:        `{"code":"INVALID_ARGUMENT","cause":"missing actAs"}`,
			wantCode:    "INVALID_ARGUMENT",
			wantMessage: "missing actAs",
			wantDetails: true,
		},
		{
			name:        "raw JSON body without error fields",
			statusCode:  http.StatusBadGateway,
			body:        `{"unexpected":"shape"}`,
			wantMessage: `{"unexpected":"shape"}`,
			wantDetails: true,
		},
		{
			name:        "plain text body",
			statusCode:  http.StatusServiceUnavailable,
			body:        "upstream unavailable",
			wantMessage: "upstream unavailable",
			wantDetails: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			})

			err := client.Invoke(context.Background(), http.MethodPost, "endpoint", nil, nil)
			if err == nil {
				t.Fatal("Invoke() expected error, got nil")
			}

			var ledgerErr *LedgerError
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("Invoke() error type = %T, want *LedgerError", err)
			}
			if ledgerErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", ledgerErr.StatusCode, tt.statusCode)
			}
			if ledgerErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", ledgerErr.Code, tt.wantCode)
			}
			if ledgerErr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", ledgerErr.Message, tt.wantMessage)
			}
			if (ledgerErr.Details != nil) != tt.wantDetails {
				t.Errorf("Details present = %v, want %v", ledgerErr.Details != nil, tt.wantDetails)
			}
		})
	}
}

func TestInvokeTokenFailurePropagates(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	t.Cleanup(authServer.Close)

	tokens := &TokenSource{now: time.Now, httpClient: authServer.Client()}
	tokens.cfg.URL = authServer.URL

	client := &Client{
		baseURL:    "http://ledger.invalid",
		tokens:     tokens,
		httpClient: http.DefaultClient,
	}

	err := client.Invoke(context.Background(), http.MethodGet, "state/ledger-end", nil, nil)
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("Invoke() error type = %T, want *AuthError", err)
	}
}
