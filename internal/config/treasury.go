package config

import (
	"errors"
	"fmt"
)

// MaxRedemptionRate is the basis-point ceiling of the redemption-rate curve:
// at 10000 bps the curve degenerates to a linear pool/supply payout.
const MaxRedemptionRate = 10000

type TreasuryConfig struct {
	// Address is the identity of the treasury account itself. Actions
	// targeting this address are self-calls and dispatch to the gated
	// governance setters instead of the execution backend.
	Address string `mapstructure:"address"`
	// RedemptionRate is the initial rate in basis points, used only when
	// no rate has been persisted yet.
	RedemptionRate uint64 `mapstructure:"redemption-rate"`
}

func (cfg *TreasuryConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("treasury address is required")
	}
	if cfg.RedemptionRate > MaxRedemptionRate {
		return fmt.Errorf("redemption rate %d exceeds maximum of %d basis points", cfg.RedemptionRate, MaxRedemptionRate)
	}
	return nil
}
