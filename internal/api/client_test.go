package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAndJSONHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "tok-123", nil)

	var result map[string]any
	require.NoError(t, c.Post(context.Background(), "/v1/things", map[string]string{"a": "b"}, &result))

	require.NotNil(t, got)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.NotEmpty(t, got.Header.Get("X-Request-Id"))
	assert.Equal(t, "/v1/things", got.URL.Path)
	assert.Equal(t, map[string]any{"ok": true}, result)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", nil)
	require.NoError(t, c.Get(context.Background(), "/v1/ping", nil))
	assert.Empty(t, auth)
}

func TestErrorEnvelopeExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "structured error",
			status:  http.StatusNotFound,
			body:    `{"error":{"code":"not_found","message":"game not found"}}`,
			wantErr: "game not found (not_found)",
		},
		{
			name:    "message only",
			status:  http.StatusBadRequest,
			body:    `{"message":"version is required"}`,
			wantErr: "version is required",
		},
		{
			name:    "unstructured body",
			status:  http.StatusBadGateway,
			body:    `upstream exploded`,
			wantErr: "HTTP 502: upstream exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "tok", nil)
			err := c.Get(context.Background(), "/v1/whatever", nil)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEmptyResponseBodyIsAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", nil)
	var result map[string]any
	assert.NoError(t, c.Do(context.Background(), http.MethodDelete, "/v1/games/g-1", nil, &result))
	assert.Nil(t, result)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "tok", nil)
	err := c.Get(ctx, "/v1/slow", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
