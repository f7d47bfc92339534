package api

import (
	"bytes"
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
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/timelock"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/treasury"
	"github.com/yanuar-ar/nouns-monorepo-redemption/testutil"
)

var (
	testAdmin    = testutil.RandomAddress()
	testTreasury = testutil.RandomAddress()
	testRedeemer = testutil.RandomAddress()
)

type serverFixture struct {
	handler  http.Handler
	db       *testutil.InMemoryDB
	registry *testutil.FakeRegistry
	exec     *testutil.FakeExec
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()
	ctx := context.Background()

	f := &serverFixture{
		db:       testutil.NewInMemoryDB(),
		registry: testutil.NewFakeRegistry(100),
		exec:     testutil.NewFakeExec(),
	}
	notifier := &testutil.RecordingNotifier{}

	engine := timelock.NewEngine(f.db, notifier, f.exec, testTreasury)
	require.Nil(t, engine.Bootstrap(ctx, &config.TimelockConfig{
		Admin: testAdmin,
		Delay: 3 * 24 * time.Hour,
	}))

	tr := treasury.NewTreasury(f.db, f.registry, &testutil.FakeProposals{}, f.exec, notifier, testTreasury)
	require.Nil(t, tr.Bootstrap(ctx, &config.TreasuryConfig{
		Address:        testTreasury,
		RedemptionRate: 5000,
	}))

	server := New(&config.ServerConfig{Host: "127.0.0.1", Port: 8080}, f.db, engine, tr)
	f.handler = server.routes()
	return f
}

func (f *serverFixture) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
	return out
}

func TestHealthcheck(t *testing.T) {
	f := newServerFixture(t)
	recorder := f.request(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestTimelockEndpoints(t *testing.T) {
	t.Run("queue returns the fingerprint", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/queue", map[string]any{
			"caller": testAdmin,
			"target": "0x7a26e7000000000000000000000000000000cafe",
			"value":  "42",
			"eta":    time.Now().Add(4 * 24 * time.Hour).Unix(),
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[map[string]string](t, recorder)
		assert.NotEmpty(t, body["tx_hash"])
	})

	t.Run("queue by non-admin returns 401 with the error code", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/queue", map[string]any{
			"caller": testRedeemer,
			"target": "0x7a26e7000000000000000000000000000000cafe",
			"eta":    time.Now().Add(4 * 24 * time.Hour).Unix(),
		})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)

		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "UNAUTHORIZED", body["error_code"])
	})

	t.Run("execute of an unqueued action returns 412", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/execute", map[string]any{
			"caller": testAdmin,
			"target": "0x7a26e7000000000000000000000000000000cafe",
			"eta":    time.Now().Unix(),
		})
		assert.Equal(t, http.StatusPreconditionFailed, recorder.Code)
	})

	t.Run("malformed value returns 400", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/queue", map[string]any{
			"caller": testAdmin,
			"target": "0x7a26e7000000000000000000000000000000cafe",
			"value":  "not-a-number",
			"eta":    time.Now().Add(4 * 24 * time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("negative value returns 400", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/queue", map[string]any{
			"caller": testAdmin,
			"target": "0x7a26e7000000000000000000000000000000cafe",
			"value":  "-42",
			"eta":    time.Now().Add(4 * 24 * time.Hour).Unix(),
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)

		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "BAD_REQUEST", body["error_code"])
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		f := newServerFixture(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/timelock/queue", bytes.NewReader([]byte("{")))
		recorder := httptest.NewRecorder()
		f.handler.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("admin state is readable", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodGet, "/v1/timelock/admin", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[map[string]any](t, recorder)
		assert.Equal(t, testAdmin, body["admin"])
	})

	t.Run("accept-admin without a pending admin returns 401", func(t *testing.T) {
		f := newServerFixture(t)
		recorder := f.request(t, http.MethodPost, "/v1/timelock/accept-admin", map[string]any{
			"caller": testRedeemer,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestTreasuryEndpoints(t *testing.T) {
	t.Run("total and redemption quote", func(t *testing.T) {
		f := newServerFixture(t)
		f.exec.Balances[testTreasury] = sdkmath.NewInt(1_000_000)

		recorder := f.request(t, http.MethodGet, "/v1/treasury/total", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "1000000", body["total"])

		recorder = f.request(t, http.MethodGet, "/v1/treasury/redemption", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		body = decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "5050", body["value"])
	})

	t.Run("redeem pays out the owner", func(t *testing.T) {
		f := newServerFixture(t)
		f.exec.Balances[testTreasury] = sdkmath.NewInt(1_000_000)
		f.registry.Owners[7] = testRedeemer

		recorder := f.request(t, http.MethodPost, "/v1/treasury/redeem", map[string]any{
			"caller":  testRedeemer,
			"unit_id": 7,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		body := decodeBody[map[string]string](t, recorder)
		assert.Equal(t, "5050", body["value"])
		assert.Equal(t, []uint64{7}, f.registry.Burned)
	})

	t.Run("redeem by non-owner returns 401", func(t *testing.T) {
		f := newServerFixture(t)
		f.exec.Balances[testTreasury] = sdkmath.NewInt(1_000_000)
		f.registry.Owners[7] = testAdmin

		recorder := f.request(t, http.MethodPost, "/v1/treasury/redeem", map[string]any{
			"caller":  testRedeemer,
			"unit_id": 7,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, f.registry.Burned)
	})

	t.Run("rate change is admin gated", func(t *testing.T) {
		f := newServerFixture(t)

		recorder := f.request(t, http.MethodPost, "/v1/treasury/redemption-rate", map[string]any{
			"caller":   testRedeemer,
			"rate_bps": 7500,
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		recorder = f.request(t, http.MethodPost, "/v1/treasury/redemption-rate", map[string]any{
			"caller":   testAdmin,
			"rate_bps": 7500,
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		rate, err := f.db.GetRedemptionRate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(7500), rate)
	})
}
