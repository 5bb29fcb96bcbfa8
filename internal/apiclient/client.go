// Package apiclient is a thin JSON client for the product REST API.
//
// Non-2xx responses are returned, not turned into errors: suites assert on
// status codes directly. Only transport and encoding failures are errors.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deprtest/e2e/internal/routes"
	"github.com/deprtest/e2e/internal/version"
)

const defaultTimeout = 30 * time.Second

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body (status %d): %w", r.StatusCode, err)
	}
	return nil
}

// Map decodes an object body.
func (r *Response) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.JSON(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Response) Text() string {
	return string(r.Body)
}

// Client talks to one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *Metrics

	mu      sync.RWMutex
	headers http.Header
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.setToken(token) }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for baseURL, e.g. http://localhost:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
		headers: http.Header{},
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")
	c.headers.Set("User-Agent", version.UserAgent())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthToken sends token as a bearer credential on every later request.
func (c *Client) SetAuthToken(token string) {
	c.setToken(token)
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token == "" {
		c.headers.Del("Authorization")
		return
	}
	c.headers.Set("Authorization", "Bearer "+token)
}

// Token returns the current bearer token, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimPrefix(c.headers.Get("Authorization"), "Bearer ")
}

// Anonymous returns a copy of c that sends no credentials.
func (c *Client) Anonymous() *Client {
	c.mu.RLock()
	headers := c.headers.Clone()
	c.mu.RUnlock()
	headers.Del("Authorization")
	return &Client{
		baseURL: c.baseURL,
		http:    c.http,
		logger:  c.logger,
		metrics: c.metrics,
		headers: headers,
	}
}

// URL joins the base URL and endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Get sends a GET. params are merged into any query already in endpoint.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	target := c.URL(endpoint)
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + params.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, target, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, c.URL(endpoint), body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, endpoint, c.URL(endpoint), body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, c.URL(endpoint), nil)
}

func (c *Client) do(ctx context.Context, method, endpoint, target string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, endpoint, err)
	}
	c.mu.RLock()
	req.Header = c.headers.Clone()
	c.mu.RUnlock()

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observe(method, endpoint, 0, elapsed)
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, endpoint, err)
	}

	c.metrics.observe(method, endpoint, resp.StatusCode, elapsed)
	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Login posts credentials and, on 200 with a token in the body, keeps the
// token for later requests.
func (c *Client) Login(ctx context.Context, username, password string) (*Response, error) {
	resp, err := c.Post(ctx, routes.APILogin, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		var body struct {
			Token string `json:"token"`
		}
		if err := resp.JSON(&body); err == nil && body.Token != "" {
			c.SetAuthToken(body.Token)
		}
	}
	return resp, nil
}
