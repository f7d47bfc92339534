package treasury

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/config"
	"github.com/yanuar-ar/nouns-monorepo-redemption/internal/types"
)

// TotalTreasury returns the native value currently held by the treasury
// account.
func (t *Treasury) TotalTreasury(ctx context.Context) (sdkmath.Int, *types.Error) {
	balance, err := t.exec.Balance(ctx, t.address)
	if err != nil {
		return sdkmath.Int{}, types.NewExternalCallError(
			fmt.Errorf("failed to get treasury balance: %w", err),
		)
	}
	return balance, nil
}

// CalculateRedemption computes the value claimable by surrendering one
// membership unit, at the current rate, supply and non-allocated pool. The
// result is an aggregate snapshot: within one call it is identical no matter
// which unit is redeemed.
func (t *Treasury) CalculateRedemption(ctx context.Context) (sdkmath.Int, *types.Error) {
	total, serviceErr := t.TotalTreasury(ctx)
	if serviceErr != nil {
		return sdkmath.Int{}, serviceErr
	}
	allocated, serviceErr := t.AllocatedTreasury(ctx)
	if serviceErr != nil {
		return sdkmath.Int{}, serviceErr
	}

	nonAllocated := total.Sub(allocated)
	if nonAllocated.IsNegative() {
		return sdkmath.Int{}, types.NewInternalServiceError(
			fmt.Errorf("allocated treasury %s exceeds total balance %s", allocated, total),
		)
	}

	supply, err := t.registry.TotalSupply(ctx)
	if err != nil {
		return sdkmath.Int{}, types.NewExternalCallError(
			fmt.Errorf("failed to get total supply: %w", err),
		)
	}

	rate, serviceErr := t.redemptionRate(ctx)
	if serviceErr != nil {
		return sdkmath.Int{}, serviceErr
	}

	value, err := RedemptionCurve(rate, supply, nonAllocated)
	if err != nil {
		return sdkmath.Int{}, types.NewInternalServiceError(err)
	}
	return value, nil
}

// RedemptionCurve is the pure rate curve: a linear pool/supply component
// scaled by rate/10000 plus a supply-dependent correction term that vanishes
// as supply grows. It degenerates to the linear payout at the maximum rate
// and to zero at rate zero. Zero supply yields zero rather than a division
// crash.
//
// All arithmetic is arbitrary precision; the multiply happens before the
// final divide with no intermediate truncation.
func RedemptionCurve(rateBps uint64, supply uint64, pool sdkmath.Int) (sdkmath.Int, error) {
	if rateBps == 0 || supply == 0 {
		return sdkmath.ZeroInt(), nil
	}
	// The setter does not bound the rate, but the curve arithmetic does:
	// a rate beyond the maximum would underflow the correction term, so
	// it aborts the calculation instead.
	if rateBps > config.MaxRedemptionRate {
		return sdkmath.Int{}, fmt.Errorf("redemption rate %d exceeds %d basis points", rateBps, config.MaxRedemptionRate)
	}

	base := pool.QuoRaw(int64(supply))
	if rateBps == config.MaxRedemptionRate {
		return base, nil
	}

	correction := (config.MaxRedemptionRate - rateBps) / supply
	return base.MulRaw(int64(rateBps + correction)).QuoRaw(config.MaxRedemptionRate), nil
}

// SetRedemptionRate overwrites the rate. Admin only. The write itself is
// unconditional: no upper bound is enforced here, RedemptionCurve rejects
// out-of-range rates at calculation time.
func (t *Treasury) SetRedemptionRate(ctx context.Context, caller string, rateBps uint64) *types.Error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.db.GetAdminState(ctx)
	if err != nil {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to read admin state: %w", err),
		)
	}
	if caller != state.Admin {
		return types.NewUnauthorizedError(
			fmt.Errorf("caller %s is not the admin", caller),
		)
	}

	if err := t.db.SaveRedemptionRate(ctx, rateBps); err != nil {
		return types.NewInternalServiceError(err)
	}

	t.publish(ctx, types.EventNewRedemptionRate, &types.RateEvent{
		Type:    types.EventNewRedemptionRate,
		RateBps: rateBps,
	})
	log.Ctx(ctx).Info().
		Uint64("rateBps", rateBps).
		Msg("Redemption rate changed")

	return nil
}

func (t *Treasury) redemptionRate(ctx context.Context) (uint64, *types.Error) {
	rate, err := t.db.GetRedemptionRate(ctx)
	if err != nil {
		return 0, types.NewInternalServiceError(
			fmt.Errorf("failed to read redemption rate: %w", err),
		)
	}
	return rate, nil
}
