package labpool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type rawMessage = json.RawMessage

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("labpool: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("labpool: status %d: %s: %s", e.StatusCode, e.Type, e.Message)
}

// Client is the LabPool API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithToken starts the client with an existing access token.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient creates a client for the API rooted at baseURL,
// e.g. "https://labpool.example.com/api/v1".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for tokens and keeps the access token for
// later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &pair); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.setToken(pair.AccessToken)
	return &pair, nil
}

// Refresh trades a refresh token for a new pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair TokenPair
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &pair); err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	c.setToken(pair.AccessToken)
	return &pair, nil
}

// ListPools returns one page of approved, active pools.
func (c *Client) ListPools(ctx context.Context, page, pageSize int) (*Page[*Pool], error) {
	var out Page[*Pool]
	if err := c.do(ctx, http.MethodGet, "/pools", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	return &out, nil
}

// GetPool fetches a single pool.
func (c *Client) GetPool(ctx context.Context, id string) (*Pool, error) {
	var out Pool
	if err := c.do(ctx, http.MethodGet, "/pools/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("get pool: %w", err)
	}
	return &out, nil
}

// PoolStats reports funding progress. No token is needed.
func (c *Client) PoolStats(ctx context.Context, poolID string) (*PoolStats, error) {
	var out PoolStats
	if err := c.do(ctx, http.MethodGet, "/donations/pool/"+url.PathEscape(poolID)+"/stats", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("pool stats: %w", err)
	}
	return &out, nil
}

// CreateOrder starts a donation checkout. A signed-in client is recorded
// as the donor.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/donations/create-order", nil, req, &out); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &out, nil
}

// VerifyPayment confirms a completed checkout.
func (c *Client) VerifyPayment(ctx context.Context, p PaymentConfirmation) (*VerifyResult, error) {
	var out VerifyResult
	if err := c.do(ctx, http.MethodPost, "/donations/verify-payment", nil, p, &out); err != nil {
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	return &out, nil
}

// MyDonations lists the signed-in user's donations.
func (c *Client) MyDonations(ctx context.Context, page, pageSize int) (*Page[*Donation], error) {
	var out Page[*Donation]
	if err := c.do(ctx, http.MethodGet, "/donations/user/my-donations", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, fmt.Errorf("my donations: %w", err)
	}
	return &out, nil
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	decodeErr := json.Unmarshal(respBody, &apiResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		if decodeErr == nil && apiResp.Error != nil {
			apiErr.Type = apiResp.Error.Type
			apiErr.Message = apiResp.Error.Message
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if result == nil || len(apiResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(apiResp.Data, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}
