// Package apiclient is the thin REST transport the services share. Timeouts
// and retries are left to the http.Client defaults on purpose; callers that
// need a bound pass a context.
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

	"go.uber.org/zap"
)

// TokenFunc supplies the current bearer credential, or "" when anonymous.
type TokenFunc func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
	logger  *zap.Logger
}

func New(baseURL string, token TokenFunc, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   token,
		logger:  logger,
	}
}

// RequestOption tweaks a single request.
type RequestOption func(*http.Request)

// WithoutAuth suppresses the bearer header. Login, register and logout are
// unauthenticated by construction.
func WithoutAuth() RequestOption {
	return func(req *http.Request) {
		req.Header.Del("Authorization")
	}
}

// WithHeader adds a header when the value is non-empty.
func WithHeader(key, value string) RequestOption {
	return func(req *http.Request) {
		if value != "" {
			req.Header.Set(key, value)
		}
	}
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}, opts ...RequestOption) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, opts ...RequestOption) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport-level failure: the caller gets the fixed message, never
		// the internal detail.
		c.logger.Debug("request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
