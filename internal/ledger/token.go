package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
)

// lease is a granted bearer credential. Leases are replaced wholesale on
// refresh, never partially updated.
type lease struct {
	token     string
	expiresAt time.Time
}

// TokenSource obtains and caches the process-wide ledger bearer token via
// an OAuth client-credentials exchange. Concurrent callers may race on a
// refresh; each racer installs a strictly valid lease, so the worst case is
// a redundant exchange, never an inconsistent lease.
type TokenSource struct {
	cfg        config.AuthConfig
	httpClient *http.Client
	now        func() time.Time

	current atomic.Pointer[lease]
}

// NewTokenSource creates a token source for the configured authority.
func NewTokenSource(cfg *config.Config) *TokenSource {
	return &TokenSource{
		cfg:        cfg.Auth,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Token returns a bearer token whose expiry is past the safety margin,
// refreshing the lease first when needed. Exchange failures propagate as
// *AuthError.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	prev := s.current.Load()
	if prev != nil && s.now().Before(prev.expiresAt) {
		return prev.token, nil
	}

	fresh, err := s.exchange(ctx)
	if err != nil {
		return "", err
	}

	if !s.current.CompareAndSwap(prev, fresh) {
		// Another caller refreshed concurrently. Its lease is at least as
		// new as ours; use whichever is installed if still valid.
		if cur := s.current.Load(); cur != nil && s.now().Before(cur.expiresAt) {
			return cur.token, nil
		}
		s.current.Store(fresh)
	}
	log.Debugw("token lease refreshed", "expires_at", fresh.expiresAt.Format(time.RFC3339))
	return fresh.token, nil
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience,omitempty"`
	GrantType    string `json:"grant_type"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (s *TokenSource) exchange(ctx context.Context) (*lease, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     s.cfg.ClientID,
		ClientSecret: s.cfg.ClientSecret,
		Audience:     s.cfg.Audience,
		GrantType:    "client_credentials",
	})
	if err != nil {
		return nil, &AuthError{Message: "encoding token request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &AuthError{Message: "creating token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Message: "token exchange request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &AuthError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("token exchange rejected: %s", bytes.TrimSpace(detail)),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, &AuthError{Message: "decoding token response", Err: err}
	}
	if tr.AccessToken == "" {
		return nil, &AuthError{Message: "token response missing access_token"}
	}

	granted := time.Duration(tr.ExpiresIn) * time.Second
	return &lease{
		token:     tr.AccessToken,
		expiresAt: s.now().Add(granted - s.cfg.SafetyMargin),
	}, nil
}
