package execclient

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
)

const clientLabel = "exec"

type execClientWithMetrics struct {
	exec ExecInterface
}

func NewExecClientWithMetrics(exec ExecInterface) *execClientWithMetrics {
	return &execClientWithMetrics{exec: exec}
}

func (e *execClientWithMetrics) Invoke(ctx context.Context, target string, value sdkmath.Int, payload []byte) ([]byte, error) {
	return runExecMethodWithMetrics("Invoke", func() ([]byte, error) {
		return e.exec.Invoke(ctx, target, value, payload)
	})
}

func (e *execClientWithMetrics) Balance(ctx context.Context, account string) (sdkmath.Int, error) {
	return runExecMethodWithMetrics("Balance", func() (sdkmath.Int, error) {
		return e.exec.Balance(ctx, account)
	})
}

func runExecMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	start := time.Now()
	result, err := f()

	outcome := metrics.Success
	if err != nil {
		outcome = metrics.Error
	}
	metrics.ObserveClientLatency(clientLabel, method, time.Since(start), outcome)

	return result, err
}
