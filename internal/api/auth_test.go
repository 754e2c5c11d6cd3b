package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeskhq/opsdesk/internal/errors"
)

func loginServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, pathLogin, r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(payload))
	}))
}

func TestLoginTokenShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"top-level token", `{"token":"t1","user":{"id":"u1","role":"admin"}}`, "t1"},
		{"nested data.token", `{"data":{"token":"t2","user":{"id":"u1","role":"admin"}}}`, "t2"},
		{"accessToken", `{"accessToken":"t3"}`, "t3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := loginServer(t, tt.payload)
			defer srv.Close()

			c := NewClient(srv.URL, newTestStore(t))
			result, err := c.Login(context.Background(), "a@b.c", "pw")
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Token)
		})
	}
}

func TestLoginTokenPrecedence(t *testing.T) {
	// All three shapes present at once: top-level wins, then data.token.
	srv := loginServer(t, `{"token":"top","accessToken":"alt","data":{"token":"nested"}}`)
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t))
	result, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "top", result.Token)
}

func TestLoginSuccessWithoutTokenIsAnError(t *testing.T) {
	srv := loginServer(t, `{"user":{"id":"u1","role":"admin"}}`)
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t))
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)

	var opsErr *errors.OpsdeskError
	require.True(t, stderrors.As(err, &opsErr))
	assert.Equal(t, errors.ErrCodeAuthTokenMissing, opsErr.Code)
}

func TestLoginExtractsNestedUser(t *testing.T) {
	srv := loginServer(t, `{"data":{"token":"t","user":{"id":"u7","email":"x@y.z","role":"sales"}}}`)
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t))
	result, err := c.Login(context.Background(), "x@y.z", "pw")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "u7", result.User.ID)
}

func TestLoginRejectionInvalidatesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	signaled := false
	c := NewClient(srv.URL, creds, WithInvalidationHandler(func(string) { signaled = true }))

	_, err := c.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)

	// Login is an auth endpoint: the rejected credential clears storage and
	// raises the signal even though there was nothing stored yet.
	assert.True(t, signaled)
	assert.False(t, creds.HasToken())
}

func TestValidateTokenVerdictShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{"top-level valid", `{"valid":true,"user":{"id":"u1","role":"admin"}}`, true},
		{"nested valid", `{"data":{"valid":true,"user":{"id":"u1","role":"admin"}}}`, true},
		{"explicit invalid", `{"valid":false}`, false},
		{"empty object", `{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, pathValidateToken, r.URL.Path)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, newTestStore(t))
			valid, user, err := c.ValidateToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
			if tt.valid {
				require.NotNil(t, user)
				assert.Equal(t, "u1", user.ID)
			}
		})
	}
}
