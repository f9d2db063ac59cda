package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Retry-After", "3")
		w.Header().Set("X-Agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"id":"gen-1"}}`))
	}))
	defer server.Close()

	client := NewHTTPClient()

	tests := []struct {
		name         string
		headers      http.Header
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Authorized",
			headers:      http.Header{"Authorization": []string{"Bearer sk-test"}},
			expectedCode: http.StatusOK,
			expectedBody: `{"data":{"id":"gen-1"}}`,
		},
		{
			name:         "No headers",
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, headers, err := client.Get(context.Background(), server.URL, tt.headers)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCode, status)
			assert.Equal(t, tt.expectedBody, string(body))
			if status == http.StatusOK {
				assert.Equal(t, "3", headers.Get("Retry-After"))
				assert.Equal(t, userAgent, headers.Get("X-Agent"))
			}
		})
	}
}

func TestHTTPClient_GetDoesNotMutateHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	headers := http.Header{"Authorization": []string{"Bearer sk-test"}}
	_, _, _, err := NewHTTPClient().Get(context.Background(), server.URL, headers)
	require.NoError(t, err)
	assert.Empty(t, headers.Get("User-Agent"))
}

func TestHTTPClient_GetBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	client := NewHTTPClient()
	client.maxBody = 16

	status, body, _, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, body)
}

func TestHTTPClient_GetCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := NewHTTPClient().Get(ctx, server.URL, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	_, _, _, err := NewHTTPClientWithTimeout(20*time.Millisecond).Get(context.Background(), server.URL, nil)
	assert.Error(t, err)
}
