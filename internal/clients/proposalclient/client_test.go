package proposalclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

func testConfig(endpoint string) *config.ProposalConfig {
	return &config.ProposalConfig{
		Endpoint:      endpoint,
		Timeout:       5 * time.Second,
		MaxRetryTimes: 2,
		RetryInterval: 10 * time.Millisecond,
	}
}

func TestProposalCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/proposals/count", r.URL.Path)
		w.Write([]byte(`{"count": 12}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	count, err := client.ProposalCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(12), count)
}

func TestState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/proposals/3/state", r.URL.Path)
		w.Write([]byte(`{"state": "ACTIVE"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	state, err := client.State(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, types.ProposalStateActive, state)
	assert.True(t, state.IsLive())
}

func TestGetActions(t *testing.T) {
	t.Run("parses parallel arrays", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/proposals/3/actions", r.URL.Path)
			w.Write([]byte(`{
				"targets": ["0xcafe", "0xbeef"],
				"values": ["100", "200"],
				"signatures": ["", "transfer(address)"],
				"datas": [null, "AQI="]
			}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		actions, err := client.GetActions(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"0xcafe", "0xbeef"}, actions.Targets)
		assert.Equal(t, []sdkmath.Int{sdkmath.NewInt(100), sdkmath.NewInt(200)}, actions.Values)
		assert.Equal(t, []string{"", "transfer(address)"}, actions.Signatures)
		require.Len(t, actions.Datas, 2)
		assert.Equal(t, []byte{0x01, 0x02}, actions.Datas[1])
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"targets": ["0xcafe"], "values": ["ten"], "signatures": [""], "datas": [null]}`))
		}))
		defer server.Close()

		client := NewClient(testConfig(server.URL))
		_, err := client.GetActions(context.Background(), 3)
		assert.Error(t, err)
	})
}

func TestReadsAreRetried(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"count": 5}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	count, err := client.ProposalCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)
	assert.Equal(t, 2, requestCount)
}
