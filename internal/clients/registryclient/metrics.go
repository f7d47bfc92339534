package registryclient

import (
	"context"
	"time"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
)

const clientLabel = "registry"

type registryClientWithMetrics struct {
	registry RegistryInterface
}

func NewRegistryClientWithMetrics(registry RegistryInterface) *registryClientWithMetrics {
	return &registryClientWithMetrics{registry: registry}
}

func (r *registryClientWithMetrics) TotalSupply(ctx context.Context) (uint64, error) {
	return runRegistryMethodWithMetrics("TotalSupply", func() (uint64, error) {
		return r.registry.TotalSupply(ctx)
	})
}

func (r *registryClientWithMetrics) OwnerOf(ctx context.Context, unitID uint64) (string, error) {
	return runRegistryMethodWithMetrics("OwnerOf", func() (string, error) {
		return r.registry.OwnerOf(ctx, unitID)
	})
}

func (r *registryClientWithMetrics) Burn(ctx context.Context, unitID uint64) error {
	type zero struct{}
	_, err := runRegistryMethodWithMetrics("Burn", func() (zero, error) {
		return zero{}, r.registry.Burn(ctx, unitID)
	})
	return err
}

func runRegistryMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	start := time.Now()
	result, err := f()

	outcome := metrics.Success
	if err != nil {
		outcome = metrics.Error
	}
	metrics.ObserveClientLatency(clientLabel, method, time.Since(start), outcome)

	return result, err
}
