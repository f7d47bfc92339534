package config

import (
	"errors"
	"fmt"
	"time"
)

// Delay window and staleness bounds for queued administrative actions.
// Protocol constants, not tunables.
const (
	MinimumDelay = 2 * 24 * time.Hour
	MaximumDelay = 30 * 24 * time.Hour
	GracePeriod  = 14 * 24 * time.Hour
)

type TimelockConfig struct {
	// Admin is the initial admin identity, the sole authorization
	// principal for queue/cancel/execute until a two-step transfer
	// completes.
	Admin string `mapstructure:"admin"`
	// Delay is the initial waiting period between queuing an action and
	// its earliest permissible execution.
	Delay time.Duration `mapstructure:"delay"`
}

func (cfg *TimelockConfig) Validate() error {
	if cfg.Admin == "" {
		return errors.New("timelock admin is required")
	}
	if err := ValidateDelay(cfg.Delay); err != nil {
		return err
	}
	return nil
}

// ValidateDelay checks a delay against the [MinimumDelay, MaximumDelay]
// window, inclusive on both ends. The same check gates construction and
// setDelay.
func ValidateDelay(delay time.Duration) error {
	if delay < MinimumDelay {
		return fmt.Errorf("delay %s must not be less than %s", delay, MinimumDelay)
	}
	if delay > MaximumDelay {
		return fmt.Errorf("delay %s must not exceed %s", delay, MaximumDelay)
	}
	return nil
}
