package ledger

import (
	"encoding/json"
	"fmt"
)

// LedgerError is the uniform shape every failed ledger call surfaces.
// Code and Message come from the ledger's structured error body when one is
// present; Details keeps the raw body for operator diagnosis.
type LedgerError struct {
	StatusCode int             `json:"statusCode,omitempty"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
}

func (e *LedgerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ledger error (%d/%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("ledger error (%d): %s", e.StatusCode, e.Message)
}

// AuthError reports a failed client-credentials exchange. A stale cached
// token is never substituted for a failed exchange.
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error: %s: %v", e.Message, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("auth error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("auth error: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
