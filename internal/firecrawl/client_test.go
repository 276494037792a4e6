package firecrawl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llm-tools/ghctx/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(logging.NewLogger(io.Discard, logging.LevelError), srv.URL, "test-key", time.Second)
	require.NoError(t, err)
	return client, srv
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(nil, "", "", 0)
	require.Error(t, err)
}

func TestExtractDecodesData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/extract", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []any{"https://github.com/o/r/issues/1"}, req["urls"])
		assert.NotEmpty(t, req["prompt"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"title": "found it", "number": 1},
		})
	})

	var out struct {
		Title  string `json:"title"`
		Number int    `json:"number"`
	}
	err := client.Extract(context.Background(), "https://github.com/o/r/issues/1", "prompt", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "found it", out.Title)
	assert.Equal(t, 1, out.Number)
}

func TestExtractClassifiesStatusCodes(t *testing.T) {
	cases := []struct {
		status    int
		kind      ErrorKind
		retryable bool
	}{
		{http.StatusTooManyRequests, RateLimited, true},
		{http.StatusUnauthorized, PermissionDenied, false},
		{http.StatusForbidden, PermissionDenied, false},
		{http.StatusNotFound, NotFound, false},
		{http.StatusInternalServerError, ServiceError, true},
		{http.StatusBadGateway, ServiceError, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind)+"_"+http.StatusText(tc.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			})

			var out map[string]any
			err := client.Extract(context.Background(), "https://github.com/o/r/issues/1", "p", nil, &out)
			require.Error(t, err)

			var fcErr *Error
			require.ErrorAs(t, err, &fcErr)
			assert.Equal(t, tc.kind, fcErr.Kind)
			assert.Equal(t, tc.status, fcErr.Status)
			assert.Equal(t, tc.retryable, fcErr.Retryable())
		})
	}
}

func TestExtractReportedFailureIsServiceError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "extraction timed out"})
	})

	var out map[string]any
	err := client.Extract(context.Background(), "https://github.com/o/r/issues/1", "p", nil, &out)

	var fcErr *Error
	require.ErrorAs(t, err, &fcErr)
	assert.Equal(t, ServiceError, fcErr.Kind)
	assert.Contains(t, fcErr.Message, "extraction timed out")
}

func TestExtractTransportFailureIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client, err := NewClient(nil, srv.URL, "key", time.Second)
	require.NoError(t, err)

	var out map[string]any
	err = client.Extract(context.Background(), "https://github.com/o/r/issues/1", "p", nil, &out)

	var fcErr *Error
	require.ErrorAs(t, err, &fcErr)
	assert.Equal(t, ServiceError, fcErr.Kind)
	assert.True(t, fcErr.Retryable())
}
