package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchdog/watchdog/internal/health"
)

func testClient(url string) *Client {
	c := NewClient("test-key", "test/model")
	c.BaseURL = url
	c.Backoff = time.Millisecond
	return c
}

func TestChatCompletion_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		var req ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test/model", req.Model)
		assert.Len(t, req.Messages, 1)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello"}}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, health.StatusOK, c.HealthCheck().Status)
}

func TestChatCompletion_ContentParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":[{"type":"text","text":"a"},{"type":"image","text":"x"},{"type":"text","text":"b"}]}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).ChatCompletion(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestChatCompletion_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req), "body must be resent on retry")
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestChatCompletion_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Equal(t, health.StatusError, c.HealthCheck().Status)
	ok, failed := c.Stats()
	assert.Equal(t, int64(0), ok)
	assert.Equal(t, int64(1), failed)
}

func TestChatCompletion_APIErrorAndNoChoices(t *testing.T) {
	body := `{"error":{"message":"invalid model"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), nil)
	assert.ErrorContains(t, err, "invalid model")

	body = `{"choices":[]}`
	_, err = c.ChatCompletion(context.Background(), nil)
	assert.ErrorContains(t, err, "no choices")
}

func TestChatCompletion_NoKey(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, DefaultModel, c.Model)
	_, err := c.ChatCompletion(context.Background(), nil)
	assert.ErrorContains(t, err, "API key not set")
	assert.Equal(t, health.StatusDegraded, c.HealthCheck().Status)
}
