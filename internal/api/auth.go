package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/opsdeskhq/opsdesk/internal/domain"
	"github.com/opsdeskhq/opsdesk/internal/errors"
)

// LoginResult is the normalized outcome of a successful login call.
type LoginResult struct {
	Token string
	User  *domain.User
}

// loginEnvelope covers every login response shape the backend has shipped:
// the token may be top-level "token", nested "data.token", or the alternate
// "accessToken" field; the user may be top-level or nested under "data".
type loginEnvelope struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	User        *domain.User `json:"user"`
	Data        *struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	} `json:"data"`
}

// token returns the first token found in the fixed precedence order:
// token, data.token, accessToken.
func (e loginEnvelope) token() string {
	if e.Token != "" {
		return e.Token
	}
	if e.Data != nil && e.Data.Token != "" {
		return e.Data.Token
	}
	if e.AccessToken != "" {
		return e.AccessToken
	}
	return ""
}

func (e loginEnvelope) user() *domain.User {
	if e.User != nil {
		return e.User
	}
	if e.Data != nil {
		return e.Data.User
	}
	return nil
}

// Login posts credentials and extracts the token and user from whichever
// response shape the backend used. A 200 response with no token in any
// recognized shape is an error. Nothing is persisted here; the session
// controller owns storage.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	data, err := c.doRaw(ctx, http.MethodPost, pathLogin, body)
	if err != nil {
		return nil, err
	}

	var env loginEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode login response", err)
	}

	token := env.token()
	if token == "" {
		return nil, errors.NewTokenMissingError()
	}

	return &LoginResult{Token: token, User: env.user()}, nil
}

// Logout posts to the logout endpoint. Callers treat failure as best-effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, pathLogout, nil, nil)
}

// validateEnvelope covers the validate-token response shapes.
type validateEnvelope struct {
	Valid bool         `json:"valid"`
	User  *domain.User `json:"user"`
	Data  *struct {
		Valid bool         `json:"valid"`
		User  *domain.User `json:"user"`
	} `json:"data"`
}

// ValidateToken asks the backend whether the persisted token is still good.
// A 401 here is classified by the pipeline as a genuine authentication
// failure (credentials cleared, session-invalidated signal raised) before
// the error reaches the caller.
func (c *Client) ValidateToken(ctx context.Context) (bool, *domain.User, error) {
	data, err := c.doRaw(ctx, http.MethodGet, pathValidateToken, nil)
	if err != nil {
		return false, nil, err
	}

	var env validateEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false, nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode validate-token response", err)
	}

	if env.Valid {
		return true, env.User, nil
	}
	if env.Data != nil && env.Data.Valid {
		return true, env.Data.User, nil
	}
	return false, nil, nil
}
