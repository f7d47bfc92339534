package execclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
)

func testConfig(endpoint string) *config.ExecConfig {
	return &config.ExecConfig{
		Endpoint: endpoint,
		Timeout:  5 * time.Second,
	}
}

func TestInvoke(t *testing.T) {
	t.Run("forwards target, value and hex payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/invoke", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "0xcafe", body["target"])
			assert.Equal(t, "42", body["value"])
			assert.Equal(t, "0102", body["payload"])

			w.Write([]byte(`{"success": true, "return_data": "aa"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		returnData, err := client.Invoke(context.Background(), "0xcafe", sdkmath.NewInt(42), []byte{0x01, 0x02})
		require.NoError(t, err)
		assert.Equal(t, []byte{0xaa}, returnData)
	})

	t.Run("reverted call is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Invoke(context.Background(), "0xcafe", sdkmath.ZeroInt(), nil)
		assert.Error(t, err)
	})

	t.Run("transport failure is not retried", func(t *testing.T) {
		requestCount := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCount++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Invoke(context.Background(), "0xcafe", sdkmath.ZeroInt(), nil)
		require.Error(t, err)
		assert.Equal(t, 1, requestCount)
	})
}

func TestBalance(t *testing.T) {
	t.Run("parses the balance", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/accounts/0xdao/balance", r.URL.Path)
			w.Write([]byte(`{"balance": "123456789012345678901234567890"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		balance, err := client.Balance(context.Background(), "0xdao")
		require.NoError(t, err)

		expected, ok := sdkmath.NewIntFromString("123456789012345678901234567890")
		require.True(t, ok)
		assert.Equal(t, expected, balance)
	})

	t.Run("rejects a malformed balance", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"balance": "lots"}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.Balance(context.Background(), "0xdao")
		assert.Error(t, err)
	})
}
