package config

import (
	"fmt"
	"time"
)

const defaultGaugeRefreshInterval = 30 * time.Second

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// GaugeRefresh controls how often the treasury gauges are
	// recomputed from the external sources.
	GaugeRefresh time.Duration `mapstructure:"gauge-refresh"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("metrics port must be in the range 1-65535")
	}
	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}

func (cfg *MetricsConfig) GaugeRefreshInterval() time.Duration {
	if cfg.GaugeRefresh <= 0 {
		return defaultGaugeRefreshInterval
	}
	return cfg.GaugeRefresh
}
