// Package client provides a Go client for the ledger gateway API.
//
// The client abstracts HTTP communication with the gateway service and
// provides methods that correspond to its REST surface: balance queries,
// staking pool management, deposits and withdrawals, and direct transfers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kshitijjpd/ALPENDBACKEND/internal/models"
)

// Client represents a ledger gateway API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets a custom user agent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a new ledger gateway API client.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	// Validate and normalize base URL
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if u.Scheme == "" {
		u.Scheme = "http"
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   strings.TrimSuffix(u.String(), "/"),
		userAgent: "ledger-gateway-client/1.0",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// HealthCheck checks if the gateway service is healthy.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return fmt.Errorf("creating health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

// Balances retrieves the balance summary for the gateway's operator party.
func (c *Client) Balances(ctx context.Context) (*models.BalanceResult, error) {
	var resp models.BalanceResult
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/balance", nil, &resp); err != nil {
		return nil, fmt.Errorf("getting balances: %w", err)
	}

	return &resp, nil
}

// BalanceByOwner retrieves the balance held by a single owner party.
func (c *Client) BalanceByOwner(ctx context.Context, owner string) (*models.BalanceResult, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner cannot be empty")
	}

	endpoint := fmt.Sprintf("/api/v1/balance/%s", url.PathEscape(owner))

	var resp models.BalanceResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting balance for owner: %w", err)
	}

	return &resp, nil
}

// QueryBalance retrieves balances with an explicit query party and owner filter.
// Both fields are optional; empty values fall back to the gateway defaults.
func (c *Client) QueryBalance(ctx context.Context, partyID, ownerAddress string) (*models.BalanceResult, error) {
	req := models.BalanceQueryRequest{
		PartyID:      partyID,
		OwnerAddress: ownerAddress,
	}

	var resp models.BalanceResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/balance/query", req, &resp); err != nil {
		return nil, fmt.Errorf("querying balance: %w", err)
	}

	return &resp, nil
}

// ContractsResult is the contract detail listing for a single owner.
type ContractsResult struct {
	Contracts    []models.Holding `json:"contracts"`
	Count        int              `json:"count"`
	TotalBalance decimal.Decimal  `json:"totalBalance"`
}

// ContractsByOwner retrieves the holding contracts owned by a party.
func (c *Client) ContractsByOwner(ctx context.Context, owner string) (*ContractsResult, error) {
	if owner == "" {
		return nil, fmt.Errorf("owner cannot be empty")
	}

	endpoint := fmt.Sprintf("/api/v1/contracts/%s", url.PathEscape(owner))

	var resp ContractsResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting contracts for owner: %w", err)
	}

	return &resp, nil
}

// StakingConfig retrieves the gateway's staking configuration.
func (c *Client) StakingConfig(ctx context.Context) (*models.StakingConfig, error) {
	var resp models.StakingConfig
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/staking/config", nil, &resp); err != nil {
		return nil, fmt.Errorf("getting staking config: %w", err)
	}

	return &resp, nil
}

// LedgerEnd retrieves the current ledger end offset.
func (c *Client) LedgerEnd(ctx context.Context) (models.Offset, error) {
	var resp models.LedgerEndResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/staking/ledger-end", nil, &resp); err != nil {
		return "", fmt.Errorf("getting ledger end: %w", err)
	}

	return resp.Offset, nil
}

// CreatePool creates a new staking pool. An empty issuer lets the gateway
// default to its configured coin issuer.
func (c *Client) CreatePool(ctx context.Context, issuer string) (*models.CreatePoolResult, error) {
	req := models.CreatePoolRequest{Issuer: issuer}

	var resp models.CreatePoolResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/staking/pool/create", req, &resp); err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	return &resp, nil
}

// AddStaker authorizes a new staker on an existing pool.
func (c *Client) AddStaker(ctx context.Context, poolContractID, newStaker string) (*models.AddStakerResult, error) {
	if poolContractID == "" {
		return nil, fmt.Errorf("pool contract ID cannot be empty")
	}
	if newStaker == "" {
		return nil, fmt.Errorf("new staker cannot be empty")
	}

	req := models.AddStakerRequest{
		PoolContractID: poolContractID,
		NewStaker:      newStaker,
	}

	var resp models.AddStakerResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/staking/pool/add-staker", req, &resp); err != nil {
		return nil, fmt.Errorf("adding staker: %w", err)
	}

	return &resp, nil
}

// Pool retrieves a single staking pool by contract ID.
func (c *Client) Pool(ctx context.Context, poolContractID string) (*models.Pool, error) {
	if poolContractID == "" {
		return nil, fmt.Errorf("pool contract ID cannot be empty")
	}

	endpoint := fmt.Sprintf("/api/v1/staking/pool/%s", url.PathEscape(poolContractID))

	var resp models.Pool
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting pool: %w", err)
	}

	return &resp, nil
}

// Pools retrieves all active staking pools.
func (c *Client) Pools(ctx context.Context) (*models.PoolsResult, error) {
	var resp models.PoolsResult
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/staking/pools", nil, &resp); err != nil {
		return nil, fmt.Errorf("getting pools: %w", err)
	}

	return &resp, nil
}

// Deposit exercises a deposit of a holding into a staking pool.
func (c *Client) Deposit(ctx context.Context, poolContractID, staker, holdingCid, amount string) (*models.DepositResult, error) {
	if poolContractID == "" {
		return nil, fmt.Errorf("pool contract ID cannot be empty")
	}
	if staker == "" {
		return nil, fmt.Errorf("staker cannot be empty")
	}
	if holdingCid == "" {
		return nil, fmt.Errorf("holding contract ID cannot be empty")
	}
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	req := models.DepositRequest{
		PoolContractID: poolContractID,
		Staker:         staker,
		HoldingCid:     holdingCid,
		Amount:         amount,
	}

	var resp models.DepositResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/staking/pool/deposit", req, &resp); err != nil {
		return nil, fmt.Errorf("depositing: %w", err)
	}

	return &resp, nil
}

// Withdraw exercises a withdrawal on an existing stake.
func (c *Client) Withdraw(ctx context.Context, stakeContractID, staker string) (*models.WithdrawResult, error) {
	if stakeContractID == "" {
		return nil, fmt.Errorf("stake contract ID cannot be empty")
	}
	if staker == "" {
		return nil, fmt.Errorf("staker cannot be empty")
	}

	req := models.WithdrawRequest{
		StakeContractID: stakeContractID,
		Staker:          staker,
	}

	var resp models.WithdrawResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/staking/stake/withdraw", req, &resp); err != nil {
		return nil, fmt.Errorf("withdrawing: %w", err)
	}

	return &resp, nil
}

// Stakes retrieves active stakes, optionally filtered to a single staker.
func (c *Client) Stakes(ctx context.Context, staker string) (*models.StakesResult, error) {
	endpoint := "/api/v1/staking/stakes"
	if staker != "" {
		endpoint += "?staker=" + url.QueryEscape(staker)
	}

	var resp models.StakesResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting stakes: %w", err)
	}

	return &resp, nil
}

// Holdings retrieves active holdings, optionally filtered to a single owner.
func (c *Client) Holdings(ctx context.Context, owner string) (*models.HoldingsResult, error) {
	endpoint := "/api/v1/staking/holdings"
	if owner != "" {
		endpoint += "?owner=" + url.QueryEscape(owner)
	}

	var resp models.HoldingsResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting holdings: %w", err)
	}

	return &resp, nil
}

// Transfer executes a direct transfer between two parties. The amount is in
// display units.
func (c *Client) Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (*models.TransferResult, error) {
	if sender == "" {
		return nil, fmt.Errorf("sender cannot be empty")
	}
	if receiver == "" {
		return nil, fmt.Errorf("receiver cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}

	req := models.TransferRequest{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}

	var resp models.TransferResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/transfer/direct", req, &resp); err != nil {
		return nil, fmt.Errorf("transferring: %w", err)
	}

	return &resp, nil
}

// TransferHistory retrieves the transfer history visible to a party.
func (c *Client) TransferHistory(ctx context.Context, partyID string) (*models.TransferHistoryResult, error) {
	if partyID == "" {
		return nil, fmt.Errorf("party ID cannot be empty")
	}

	endpoint := fmt.Sprintf("/api/v1/transfer/history/%s", url.PathEscape(partyID))

	var resp models.TransferHistoryResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("getting transfer history: %w", err)
	}

	return &resp, nil
}

// doRequest performs an HTTP request with JSON serialization/deserialization.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp)
	}

	// For successful responses, decode into the API response wrapper
	var apiResp models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return fmt.Errorf("API error: %s", apiResp.Error.Message)
		}
		return fmt.Errorf("API error: request unsuccessful")
	}

	// Re-marshal and unmarshal to convert the data to the expected type
	if result != nil && apiResp.Data != nil {
		data, err := json.Marshal(apiResp.Data)
		if err != nil {
			return fmt.Errorf("marshaling response data: %w", err)
		}

		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("unmarshaling response data: %w", err)
		}
	}

	return nil
}

// newRequest creates a new HTTP request with common headers. The endpoint
// may carry a raw query string.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	ep, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing endpoint: %w", err)
	}
	u.Path = path.Join(u.Path, ep.Path)
	u.RawQuery = ep.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// handleErrorResponse processes error responses from the API.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	// Try to decode as an envelope carrying error detail
	var apiResp models.APIResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    apiResp.Error.Message,
			ErrorCode:  apiResp.Error.Code,
		}
	}

	// Fallback to raw response
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    string(body),
		ErrorCode:  fmt.Sprintf("HTTP_%d", resp.StatusCode),
	}
}

// APIError represents an error response from the gateway API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	ErrorCode  string `json:"error_code"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway API error (%d): %s", e.StatusCode, e.ErrorCode)
}

// IsNotFound returns true if the error is a 404 Not Found.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsBadRequest returns true if the error is a 400 Bad Request.
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsForbidden returns true if the error is a 403 Forbidden.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}
