// Package client is a minimal embeddable client for the Opsdesk backend.
// It covers login and authenticated JSON round-trips for programs that want
// to talk to the backend without pulling in the CLI's session machinery.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is returned for non-2xx responses.
type Error struct {
	Status int
	Path   string
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("opsdesk: %s returned %d", e.Path, e.Status)
}

// Client talks to the Opsdesk backend. The zero value is not usable; use New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given backend origin. The token may be empty
// until Login is called.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the access token currently attached to requests.
func (c *Client) Token() string { return c.token }

// SetToken replaces the access token attached to requests.
func (c *Client) SetToken(token string) { c.token = token }

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Data        *struct {
		Token string `json:"token"`
	} `json:"data"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.Do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return err
	}

	token := resp.Token
	if token == "" && resp.Data != nil {
		token = resp.Data.Token
	}
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return fmt.Errorf("opsdesk: login response contained no token")
	}

	c.token = token
	return nil
}

// Do performs an authenticated JSON request. A nil body sends no payload;
// a nil out discards the response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("opsdesk: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("opsdesk: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("opsdesk: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Path: path, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("opsdesk: decode response: %w", err)
	}
	return nil
}

// Get is shorthand for Do with the GET method and no body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is shorthand for Do with the POST method.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}
