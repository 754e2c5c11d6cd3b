// Package api is the single request pipeline for the Opsdesk backend.
//
// Every outgoing call goes through Client.do: the persisted bearer token is
// attached when present, the X-Requested-With header is set unconditionally,
// and every response is classified before it reaches the caller. A 401 on
// the login or validate-token endpoints, or on any endpoint outside the
// permission-sensitive namespaces, clears the credential store and raises
// the session-invalidated signal; the rejection still propagates to the
// caller in all cases.
//
// The pipeline never navigates or exits by itself. Session teardown is
// communicated through the InvalidationFunc registered by the application
// shell, which keeps the pipeline testable in isolation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk/internal/credstore"
	"github.com/opsdeskhq/opsdesk/internal/log"
)

const (
	// APIPrefix is the versioned path prefix of every backend endpoint.
	APIPrefix = "/api/v1"

	// defaultTimeout bounds every request unless overridden.
	defaultTimeout = 10 * time.Second

	headerRequestedWith      = "X-Requested-With"
	headerRequestedWithValue = "XMLHttpRequest"
	headerRequestID          = "X-Request-ID"
)

// Auth endpoints where a 401 means the credential itself was rejected.
const (
	pathLogin         = APIPrefix + "/auth/login"
	pathLogout        = APIPrefix + "/auth/logout"
	pathValidateToken = APIPrefix + "/auth/validate-token"
)

// scopedNamespaces are the permission-sensitive resource namespaces: a 401
// there means "this role lacks access", not "your session is dead", so the
// session is left untouched.
var scopedNamespaces = map[string]bool{
	"marketing":  true,
	"sales":      true,
	"production": true,
	"staff":      true,
}

// InvalidationFunc is the session-invalidated signal. The application shell
// registers one and translates it into teardown; nothing inside the pipeline
// navigates or exits.
type InvalidationFunc func(reason string)

// Client is the shared HTTP client wrapper.
type Client struct {
	baseURL       string
	http          *http.Client
	creds         *credstore.Store
	logger        *log.Logger
	onInvalidated InvalidationFunc
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for 404/5xx recording.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithInvalidationHandler registers the session-invalidated signal handler.
func WithInvalidationHandler(fn InvalidationFunc) Option {
	return func(c *Client) {
		c.onInvalidated = fn
	}
}

// NewClient creates a client rooted at the given backend origin.
func NewClient(baseURL string, creds *credstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		creds:   creds,
		logger:  log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do runs the full pipeline: decorate, send, classify, decode.
// A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	data, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// doRaw runs the pipeline and returns the raw response body. Export
// downloads use it directly for blob payloads.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		// Network-level failure: reported as-is, no session side effects.
		return nil, newTransportError(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	apiErr := newResponseError(resp.StatusCode, path, data)
	c.classify(apiErr)
	return nil, apiErr
}

// decorate attaches credentials and the fixed headers to an outgoing request.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Set unconditionally; any caller-supplied value is overridden.
	req.Header.Set(headerRequestedWith, headerRequestedWithValue)
	req.Header.Set(headerRequestID, uuid.NewString())

	// A failed token read degrades to an unauthenticated request rather
	// than aborting it.
	if token, err := c.creds.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// classify applies the global failure interpretation. The error always
// continues to the caller; this only decides the session side effect.
func (c *Client) classify(e *Error) {
	switch {
	case e.Status == http.StatusUnauthorized:
		switch {
		case isAuthEndpoint(e.Path):
			// The credential itself was rejected.
			c.invalidate("authentication failed on " + e.Path)
		case inScopedNamespace(e.Path):
			// Authorization problem on a permission-sensitive
			// namespace; the session may still be valid.
		default:
			c.invalidate("session expired (401 on " + e.Path + ")")
		}
	case e.Status == http.StatusForbidden:
		// Insufficient permission; session untouched.
	case e.Status == http.StatusNotFound:
		c.logger.Warn("resource not found", "path", e.Path)
	case e.Status >= 500:
		c.logger.Error("server error", "path", e.Path, "status", e.Status)
	}
}

// invalidate clears the persisted credential and raises the signal.
func (c *Client) invalidate(reason string) {
	if err := c.creds.Clear(); err != nil {
		c.logger.Error("failed to clear credentials", "error", err)
	}
	if c.onInvalidated != nil {
		c.onInvalidated(reason)
	}
}

// isAuthEndpoint reports whether path is the login or validate-token
// endpoint, where a 401 is a genuine authentication failure.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/validate-token")
}

// inScopedNamespace reports whether any path segment names a
// permission-sensitive resource namespace.
func inScopedNamespace(path string) bool {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if scopedNamespaces[seg] {
			return true
		}
	}
	return false
}

// get issues a GET request.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST request.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put issues a PUT request.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
