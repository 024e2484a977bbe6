package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
)

// Client wraps the waypoint REST API. It attaches the bearer token to every
// request and transparently refreshes an expired session exactly once per
// request; a 401 that survives the refresh surfaces as KindUnauthorized and
// clears the stored token.
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	token string

	onSessionExpired func()
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The replacement must
// carry a cookie jar or session refresh will not work.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithSessionExpiredHandler registers a callback invoked when a refresh
// fails and the session is abandoned
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

// NewClient creates a new API client. The cookie jar holds the httpOnly
// refresh token set by login.
func NewClient(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken stores the bearer token used for subsequent requests
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token, empty when logged out
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Do performs an API request. body is JSON encoded when non-nil; the
// response is decoded into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	respBody, status, err := c.roundTrip(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			c.expireSession()
			return refreshErr
		}
		respBody, status, err = c.roundTrip(ctx, method, endpoint, body)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			c.expireSession()
			return &APIError{Kind: KindUnauthorized, StatusCode: status, Message: errorMessage(respBody)}
		}
	}

	if status < 200 || status >= 300 {
		return &APIError{Kind: kindForStatus(status), StatusCode: status, Message: errorMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &APIError{Kind: KindServer, StatusCode: status, Message: "malformed response body", Err: err}
		}
	}
	return nil
}

// Get performs a GET request decoding the response into out
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, &APIError{Kind: KindValidation, Message: "failed to encode request body", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, &APIError{Kind: KindNetwork, Message: "failed to create request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, &APIError{Kind: KindNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &APIError{Kind: KindNetwork, Message: "failed to read response body", Err: err}
	}
	return respBody, resp.StatusCode, nil
}

// refresh trades the refresh cookie for a new access token
func (c *Client) refresh(ctx context.Context) error {
	respBody, status, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{Kind: KindUnauthorized, StatusCode: status, Message: errorMessage(respBody)}
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil || payload.Token == "" {
		return &APIError{Kind: KindServer, StatusCode: status, Message: "malformed refresh response", Err: err}
	}

	c.SetToken(payload.Token)
	return nil
}

func (c *Client) expireSession() {
	c.SetToken("")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) > 0 {
		return fmt.Sprintf("unexpected response: %s", body)
	}
	return "unexpected response"
}
