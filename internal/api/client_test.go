package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdeskhq/opsdesk/internal/credstore"
	"github.com/opsdeskhq/opsdesk/internal/domain"
)

func newTestStore(t *testing.T) *credstore.Store {
	t.Helper()
	return credstore.New(filepath.Join(t.TempDir(), "credentials.json"))
}

func TestDecorateAttachesFixedHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	c := NewClient(srv.URL, creds)

	var out map[string]any
	require.NoError(t, c.get(context.Background(), "/api/v1/customers/1", &out))

	assert.Equal(t, "XMLHttpRequest", got.Get("X-Requested-With"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Empty(t, got.Get("Authorization"), "no token stored, no bearer header")
}

func TestDecorateAttachesBearerTokenWhenStored(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	require.NoError(t, creds.Save("tok-123", nil))

	c := NewClient(srv.URL, creds)
	require.NoError(t, c.get(context.Background(), "/api/v1/customers", nil))

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
}

func TestUnauthorizedOnValidateEndpointClearsCredentialsAndSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer srv.Close()

	creds := newTestStore(t)
	require.NoError(t, creds.Save("stale", &domain.User{ID: "u1", Role: domain.RoleAdmin}))

	var signaled string
	c := NewClient(srv.URL, creds, WithInvalidationHandler(func(reason string) {
		signaled = reason
	}))

	_, _, err := c.ValidateToken(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "token expired", apiErr.Message)

	assert.False(t, creds.HasToken(), "credentials must be cleared")
	user, uerr := creds.User()
	require.NoError(t, uerr)
	assert.Nil(t, user, "user record cleared together with the token")
	assert.NotEmpty(t, signaled, "session-invalidated signal must fire")
}

func TestUnauthorizedInScopedNamespaceLeavesSessionUntouched(t *testing.T) {
	for _, path := range []string{
		"/api/v1/marketing/campaigns",
		"/api/v1/sales",
		"/api/v1/production/logs",
		"/api/v1/staff/42",
	} {
		t.Run(path, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			creds := newTestStore(t)
			require.NoError(t, creds.Save("valid-token", nil))

			signaled := false
			c := NewClient(srv.URL, creds, WithInvalidationHandler(func(string) {
				signaled = true
			}))

			err := c.get(context.Background(), path, nil)
			require.Error(t, err)

			assert.True(t, creds.HasToken(), "scoped 401 must not clear credentials")
			assert.False(t, signaled, "scoped 401 must not raise the signal")
		})
	}
}

func TestUnauthorizedElsewhereClearsCredentialsAndSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := newTestStore(t)
	require.NoError(t, creds.Save("stale", nil))

	signaled := false
	c := NewClient(srv.URL, creds, WithInvalidationHandler(func(string) {
		signaled = true
	}))

	err := c.get(context.Background(), "/api/v1/customers", nil)
	require.Error(t, err)

	assert.False(t, creds.HasToken())
	assert.True(t, signaled)
}

func TestForbiddenPropagatesWithoutSideEffects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	creds := newTestStore(t)
	require.NoError(t, creds.Save("valid", nil))

	signaled := false
	c := NewClient(srv.URL, creds, WithInvalidationHandler(func(string) {
		signaled = true
	}))

	err := c.get(context.Background(), "/api/v1/payroll", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.True(t, apiErr.IsForbidden())
	assert.True(t, creds.HasToken())
	assert.False(t, signaled)
}

func TestTransportFailureHasNoSessionSideEffects(t *testing.T) {
	creds := newTestStore(t)
	require.NoError(t, creds.Save("valid", nil))

	signaled := false
	// Nothing listens on this port.
	c := NewClient("http://127.0.0.1:1", creds, WithInvalidationHandler(func(string) {
		signaled = true
	}))

	err := c.get(context.Background(), "/api/v1/customers", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.True(t, apiErr.IsTransport())
	assert.True(t, creds.HasToken())
	assert.False(t, signaled)
}

func TestServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, newTestStore(t))

	err := c.get(context.Background(), "/api/v1/customers", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, "boom", apiErr.Message)
}

func TestInScopedNamespace(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/v1/marketing/campaigns", true},
		{"/api/v1/sales", true},
		{"/api/v1/production/raw-materials", true},
		{"/api/v1/staff/7", true},
		{"/api/v1/customers", false},
		{"/api/v1/analytics/summary", false},
		{"/api/v1/auth/validate-token", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inScopedNamespace(tt.path), tt.path)
	}
}

func TestIsAuthEndpoint(t *testing.T) {
	assert.True(t, isAuthEndpoint(pathLogin))
	assert.True(t, isAuthEndpoint(pathValidateToken))
	assert.False(t, isAuthEndpoint(pathLogout))
	assert.False(t, isAuthEndpoint("/api/v1/customers"))
}
