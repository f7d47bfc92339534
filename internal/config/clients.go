package config

import (
	"fmt"
	"time"
)

// RegistryConfig points at the membership registry that tracks total supply
// and ownership of redeemable units.
type RegistryConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *RegistryConfig) Validate() error {
	return validateClientConfig("registry", cfg.Endpoint, cfg.Timeout)
}

// ProposalConfig points at the governance contract that supplies the list of
// obligations and their lifecycle states.
type ProposalConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *ProposalConfig) Validate() error {
	return validateClientConfig("proposal", cfg.Endpoint, cfg.Timeout)
}

// ExecConfig points at the execution backend providing the invoke primitive
// and account balances.
type ExecConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (cfg *ExecConfig) Validate() error {
	return validateClientConfig("exec", cfg.Endpoint, cfg.Timeout)
}

func validateClientConfig(name, endpoint string, timeout time.Duration) error {
	if endpoint == "" {
		return fmt.Errorf("%s endpoint is required", name)
	}
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	return nil
}
