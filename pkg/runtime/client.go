// Package runtime is the request-dispatch layer that generated API clients
// compile against. Generated bindings funnel every call into Client.Do with
// the method's HTTP verb, its path template, an optional parameter struct,
// and optional request/response bodies; this package owns URL construction,
// authentication, retries, and error envelope handling.
package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// Client dispatches requests for one generated service.
type Client struct {
	// BaseURL is the URL every method path is resolved against.
	BaseURL string
	// Client is the HTTP client to use. If not set, a shared
	// RobustHTTPClient() is used.
	Client *http.Client
	// TokenSource supplies bearer tokens. A nil source sends
	// unauthenticated requests.
	TokenSource oauth2.TokenSource
	UserAgent   string
	Headers     map[string]string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.Client = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.UserAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// NewClient returns a Client bound to the given base URL. ts may be nil for
// APIs that accept unauthenticated calls.
func NewClient(baseURL string, ts oauth2.TokenSource, opts ...ClientOption) *Client {
	c := &Client{
		BaseURL:     baseURL,
		TokenSource: ts,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultClient is built once and shared by every Client constructed
// without an explicit HTTP client, so connections pool across calls.
var defaultClient = sync.OnceValue(func() *http.Client {
	return RobustHTTPClient()
})

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		return defaultClient()
	}
	return c.Client
}

// Do performs one API call. The path template's {name} placeholders are
// bound from params before any request is sent; body is JSON-encoded when
// non-nil (an io.Reader is passed through as-is); a non-nil out receives the
// decoded response body.
//
// Responses are unwrapped from the historical JSON envelope: a top-level
// "error" object turns into a *ServerError and a top-level "data" object is
// decoded as the payload itself.
func (c *Client) Do(ctx context.Context, httpMethod, path string, params Parameterizable, bodyobj, out any) error {
	expanded, err := ExpandPath(path, params)
	if err != nil {
		return err
	}

	uri := joinURL(c.BaseURL, expanded)
	if q := BuildQuery(params); len(q) > 0 {
		uri += "?" + q.Encode()
	}

	var body io.Reader
	if bodyobj != nil {
		if rr, ok := bodyobj.(io.Reader); ok {
			body = rr
		} else {
			b, err := json.Marshal(bodyobj)
			if err != nil {
				return fmt.Errorf("encoding request body: %w", err)
			}
			body = bytes.NewReader(b)
		}
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, uri, body)
	if err != nil {
		return err
	}

	if bodyobj != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	if c.TokenSource != nil {
		tok, err := c.TokenSource.Token()
		if err != nil {
			return fmt.Errorf("fetching token: %w", err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.getClient().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	return decodeResponse(resp.StatusCode, raw, out)
}

// decodeResponse applies the envelope rules to a response body.
func decodeResponse(status int, raw []byte, out any) error {
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *ErrorInfo      `json:"error"`
	}
	// Non-object bodies (arrays, scalars) skip envelope handling.
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Error != nil {
			return &ServerError{
				StatusCode: status,
				Code:       env.Error.Code,
				Message:    env.Error.Message,
				Body:       raw,
			}
		}
		if len(env.Data) > 0 {
			raw = env.Data
		}
	}

	if status < 200 || status > 299 {
		return &ServerError{StatusCode: status, Body: raw}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func joinURL(base, path string) string {
	switch {
	case strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/"):
		return base + path[1:]
	case !strings.HasSuffix(base, "/") && !strings.HasPrefix(path, "/") && base != "" && path != "":
		return base + "/" + path
	default:
		return base + path
	}
}
