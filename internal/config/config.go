package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Db       DbConfig       `mapstructure:"db"`
	Timelock TimelockConfig `mapstructure:"timelock"`
	Treasury TreasuryConfig `mapstructure:"treasury"`
	Registry RegistryConfig `mapstructure:"registry"`
	Proposal ProposalConfig `mapstructure:"proposal"`
	Exec     ExecConfig     `mapstructure:"exec"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return err
	}
	if err := cfg.Timelock.Validate(); err != nil {
		return err
	}
	if err := cfg.Treasury.Validate(); err != nil {
		return err
	}
	if err := cfg.Registry.Validate(); err != nil {
		return err
	}
	if err := cfg.Proposal.Validate(); err != nil {
		return err
	}
	if err := cfg.Exec.Validate(); err != nil {
		return err
	}
	if err := cfg.Queue.Validate(); err != nil {
		return err
	}
	if err := cfg.Server.Validate(); err != nil {
		return err
	}
	return cfg.Metrics.Validate()
}

// New returns a fully parsed and validated Config object from the given
// config file path. Environment variables override file values, with dots
// replaced by underscores (e.g. DB_ADDRESS).
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
