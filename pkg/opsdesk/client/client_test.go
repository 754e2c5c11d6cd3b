package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		w.Write([]byte(`{"token":"t1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	require.NoError(t, c.Login(context.Background(), "a@b.c", "pw"))
	assert.Equal(t, "t1", c.Token())
}

func TestLoginAcceptsAlternateShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"nested", `{"data":{"token":"t2"}}`, "t2"},
		{"accessToken", `{"accessToken":"t3"}`, "t3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			c := New(srv.URL, "")
			require.NoError(t, c.Login(context.Background(), "a@b.c", "pw"))
			assert.Equal(t, tt.want, c.Token())
		})
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	assert.Error(t, c.Login(context.Background(), "a@b.c", "pw"))
}

func TestDoAttachesHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	var out map[string]bool
	require.NoError(t, c.Get(context.Background(), "/api/v1/ping", &out))

	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Equal(t, "XMLHttpRequest", got.Get("X-Requested-With"))
	assert.True(t, out["ok"])
}

func TestDoReturnsTypedErrorOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"missing"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	err := c.Get(context.Background(), "/api/v1/nothing", nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "/api/v1/nothing", apiErr.Path)
}
