// Package ledger is the gateway's interaction core with the distributed
// ledger's JSON API: token lease management, the low-level request
// executor, and the active-contract query engine. Every ledger interaction
// in the gateway passes through Client.Invoke, giving all higher components
// a uniform error shape.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/config"
)

var log = logging.Logger("ledger")

// Client executes requests against the ledger JSON API v2.
type Client struct {
	baseURL    string
	tokens     *TokenSource
	httpClient *http.Client
}

// NewClient creates a ledger client. Every call attaches a bearer token
// from the token source.
func NewClient(cfg *config.Config, tokens *TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.Ledger.URL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Invoke issues a single request to a /v2 endpoint. The body is serialized
// only for write-style methods. A non-success response is returned as a
// *LedgerError built from the ledger's structured error body when present.
func (c *Client) Invoke(ctx context.Context, method, endpoint string, body, out interface{}) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil && method == http.MethodPost {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling ledger request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	url := fmt.Sprintf("%s/v2/%s", c.baseURL, strings.TrimPrefix(endpoint, "/"))
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("creating ledger request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &LedgerError{Message: fmt.Sprintf("ledger request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ledgerErrorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &LedgerError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("decoding ledger response from %s: %v", endpoint, err),
			}
		}
	}
	return nil
}

// ledgerErrorFromResponse builds a LedgerError from a failed call, falling
// back to the raw body when the ledger sent no structured error.
func ledgerErrorFromResponse(resp *http.Response) *LedgerError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var structured struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Cause   string `json:"cause"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil && (structured.Code != "" || structured.Message != "") {
		msg := structured.Message
		if msg == "" {
			msg = structured.Cause
		}
		return &LedgerError{
			StatusCode: resp.StatusCode,
			Code:       structured.Code,
			Message:    msg,
			Details:    json.RawMessage(raw),
		}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = resp.Status
	}
	le := &LedgerError{
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
	if json.Valid(raw) {
		le.Details = json.RawMessage(raw)
	}
	return le
}
