package treasury

import (
	"context"
	"fmt"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/execclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/proposalclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/clients/registryclient"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/db"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/observability/metrics"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/queue"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// Treasury routes redemption requests against the pooled value: ownership
// check, curve pricing, burn and payout. Mutating operations are serialized
// behind a single mutex, like the timelock engine.
type Treasury struct {
	mu       sync.Mutex
	db       db.DbInterface
	registry registryclient.RegistryInterface
	proposal proposalclient.ProposalInterface
	exec     execclient.ExecInterface
	notifier queue.Notifier
	// address is the treasury's own account on the execution backend,
	// the holder of the pooled value.
	address string
}

func NewTreasury(
	db db.DbInterface,
	registry registryclient.RegistryInterface,
	proposal proposalclient.ProposalInterface,
	exec execclient.ExecInterface,
	notifier queue.Notifier,
	address string,
) *Treasury {
	return &Treasury{
		db:       db,
		registry: registry,
		proposal: proposal,
		exec:     exec,
		notifier: notifier,
		address:  address,
	}
}

// Bootstrap seeds the redemption rate from config on first start.
func (t *Treasury) Bootstrap(ctx context.Context, cfg *config.TreasuryConfig) *types.Error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.db.GetRedemptionRate(ctx)
	if err == nil {
		return nil
	}
	if !db.IsNotFoundError(err) {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to read redemption rate: %w", err),
		)
	}

	if err := t.db.SaveRedemptionRate(ctx, cfg.RedemptionRate); err != nil {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to seed redemption rate: %w", err),
		)
	}

	log.Ctx(ctx).Info().
		Uint64("rateBps", cfg.RedemptionRate).
		Msg("Seeded redemption rate")
	return nil
}

// RedeemForETH redeems one membership unit for its share of the pooled
// value. The caller must own the unit; the redemption value is computed once
// per call; the burn and the payout must both succeed or the whole operation
// fails.
func (t *Treasury) RedeemForETH(ctx context.Context, caller string, unitID uint64) (sdkmath.Int, *types.Error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()

	value, serviceErr := t.redeem(ctx, caller, unitID)

	outcome := metrics.Success
	if serviceErr != nil {
		outcome = metrics.Error
	}
	metrics.ObserveRedemptionDuration(time.Since(start), outcome)

	return value, serviceErr
}

func (t *Treasury) redeem(ctx context.Context, caller string, unitID uint64) (sdkmath.Int, *types.Error) {
	owner, err := t.registry.OwnerOf(ctx, unitID)
	if err != nil {
		return sdkmath.Int{}, types.NewExternalCallError(
			fmt.Errorf("failed to look up owner of unit %d: %w", unitID, err),
		)
	}
	if owner != caller {
		return sdkmath.Int{}, types.NewUnauthorizedError(
			fmt.Errorf("caller %s does not own unit %d", caller, unitID),
		)
	}

	value, serviceErr := t.CalculateRedemption(ctx)
	if serviceErr != nil {
		return sdkmath.Int{}, serviceErr
	}

	if err := t.registry.Burn(ctx, unitID); err != nil {
		return sdkmath.Int{}, types.NewExternalCallError(
			fmt.Errorf("failed to burn unit %d: %w", unitID, err),
		)
	}

	if _, err := t.exec.Invoke(ctx, caller, value, nil); err != nil {
		// The unit is already burned at this point. There is no
		// compensating mint, so the failed payout needs operator
		// attention.
		log.Ctx(ctx).Error().
			Err(err).
			Uint64("unitId", unitID).
			Str("redeemer", caller).
			Str("value", value.String()).
			Msg("Unit burned but payout failed")
		return sdkmath.Int{}, types.NewExternalCallError(
			fmt.Errorf("failed to transfer %s to %s: %w", value, caller, err),
		)
	}

	rate, serviceErr := t.redemptionRate(ctx)
	if serviceErr != nil {
		return sdkmath.Int{}, serviceErr
	}

	t.publish(ctx, types.EventRedeem, &types.RedeemEvent{
		Type:     types.EventRedeem,
		UnitID:   unitID,
		Redeemer: caller,
		Value:    value.String(),
		RateBps:  rate,
	})
	log.Ctx(ctx).Info().
		Uint64("unitId", unitID).
		Str("redeemer", caller).
		Str("value", value.String()).
		Msg("Redeemed unit")

	return value, nil
}

// RefreshGauges recomputes the treasury gauges. Called from the metrics
// poller; failures are reported, not fatal.
func (t *Treasury) RefreshGauges(ctx context.Context) *types.Error {
	total, serviceErr := t.TotalTreasury(ctx)
	if serviceErr != nil {
		return serviceErr
	}
	allocated, serviceErr := t.AllocatedTreasury(ctx)
	if serviceErr != nil {
		return serviceErr
	}

	totalFloat, _ := total.BigInt().Float64()
	allocatedFloat, _ := allocated.BigInt().Float64()
	metrics.SetTotalTreasury(totalFloat)
	metrics.SetAllocatedTreasury(allocatedFloat)

	return nil
}

func (t *Treasury) publish(ctx context.Context, eventType types.EventType, payload any) {
	if err := t.notifier.Publish(ctx, eventType, payload); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("eventType", eventType.String()).
			Msg("Failed to publish audit event")
	}
}
