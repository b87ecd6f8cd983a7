package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-model-indexer/internal/adapter"
)

var fastRetry = adapter.RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsedTime:  time.Second,
}

func TestGetBodyRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"name":"model"}`))
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(time.Second, fastRetry)
	body, err := client.GetBody(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"model"}`, string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetBodyStatusErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(time.Second, fastRetry)
	_, err := client.GetBody(context.Background(), server.URL, 0)
	require.Error(t, err)

	var statusErr *adapter.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetBodyLimitsSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	client := adapter.NewHTTPClient(time.Second, fastRetry)
	body, err := client.GetBody(context.Background(), server.URL, 4)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(body))
}

func TestCanonicalizerHash(t *testing.T) {
	c := adapter.NewCanonicalizer()

	a, err := c.Hash([]byte(`{"b":1,"a":"x"}`))
	require.NoError(t, err)
	b, err := c.Hash(map[string]any{"a": "x", "b": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	out, err := c.Transform([]byte(`{ "b": 1, "a": "x" }`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1}`, string(out))
}
