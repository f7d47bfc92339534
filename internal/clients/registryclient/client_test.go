package registryclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
)

func testConfig(endpoint string) *config.RegistryConfig {
	return &config.RegistryConfig{
		Endpoint:      endpoint,
		Timeout:       5 * time.Second,
		MaxRetryTimes: 3,
		RetryInterval: 10 * time.Millisecond,
	}
}

func TestTotalSupplyRetries(t *testing.T) {
	// The first two attempts fail, the third succeeds; the read must be
	// retried through to the success.
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"total_supply": 100}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	supply, err := client.TotalSupply(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(100), supply)
	assert.Equal(t, 3, requestCount)
}

func TestTotalSupplyExhaustsRetries(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.TotalSupply(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, requestCount)
}

func TestOwnerOf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/units/7/owner", r.URL.Path)
		w.Write([]byte(`{"owner": "0xc0ffee"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	owner, err := client.OwnerOf(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "0xc0ffee", owner)
}

func TestBurnIsNotRetried(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	err := client.Burn(context.Background(), 7)
	require.Error(t, err)
	// A mutating call must hit the registry exactly once.
	assert.Equal(t, 1, requestCount)
}

func TestBurnRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/units/burn", r.URL.Path)
		w.Write([]byte(`{"burned": false}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	err := client.Burn(context.Background(), 7)
	assert.Error(t, err)
}

func TestBurnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"burned": true}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	assert.NoError(t, client.Burn(context.Background(), 7))
}
