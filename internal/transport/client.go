// Package transport is the HTTP layer shared by the HTTP text-generation
// backends: a client with pluggable authentication, JSON request helpers and
// response decoding into the zonemeta error taxonomy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http     *http.Client
	auth     Authenticator
	apiKey   string
	provider string
	headers  map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// New creates a new transport client for a named provider. The API key is
// applied with auth on every request when non-empty.
func New(provider string, auth Authenticator, apiKey string, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:     &http.Client{Timeout: DefaultHTTPTimeout},
		auth:     auth,
		apiKey:   apiKey,
		provider: provider,
		headers:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name used in errors.
func (c *Client) Provider() string {
	return c.provider
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{
			Provider: c.provider,
			Endpoint: req.URL.String(),
			Message:  err.Error(),
			Err:      err,
		}
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(req)
}

// PostJSON encodes body as JSON and POSTs it.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.WrapResource("encode", "request", "POST "+url, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+url, err)
	}
	return c.Do(req)
}
