package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"raynott/services/logger"
)

const (
	DefaultBaseURL = "https://raynott-college-3.onrender.com/api"
	DefaultTimeout = 15 * time.Second
)

// Credentials cung cấp bearer token cho mỗi request. Token rỗng nghĩa là chưa đăng nhập.
type Credentials interface {
	Token() string
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Credentials Credentials
	Logger      logger.Logger
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client gọi REST backend, gắn bearer token khi có
type Client struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	log     logger.Logger
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{baseURL: base, http: hc, creds: cfg.Credentials, log: log}
}

// SetCredentials gắn nguồn token sau khi khởi tạo (session store được tạo sau client)
func (c *Client) SetCredentials(creds Credentials) {
	c.creds = creds
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do gửi request JSON và decode response vào out (có thể nil).
// Lỗi HTTP trả về *HTTPError, lỗi mạng/timeout bọc ErrTransport.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("%s %s failed after %s (request %s): %v", method, path, time.Since(start), requestID, err)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	c.log.Debug("%s %s -> %d in %s (request %s)", method, path, resp.StatusCode, time.Since(start), requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}
