package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "redemption",
		},
		Timelock: TimelockConfig{
			Admin: "0xa11ce00000000000000000000000000000000001",
			Delay: 3 * 24 * time.Hour,
		},
		Treasury: TreasuryConfig{
			Address:        "0xdddd000000000000000000000000000000000dao",
			RedemptionRate: 5000,
		},
		Registry: RegistryConfig{
			Endpoint:      "http://localhost:8081",
			Timeout:       10 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: time.Second,
		},
		Proposal: ProposalConfig{
			Endpoint:      "http://localhost:8082",
			Timeout:       10 * time.Second,
			MaxRetryTimes: 3,
			RetryInterval: time.Second,
		},
		Exec: ExecConfig{
			Endpoint: "http://localhost:8083",
			Timeout:  30 * time.Second,
		},
		Queue: QueueConfig{
			Username: "guest",
			Password: "guest",
			Url:      "localhost:5672",
			Exchange: "redemption.events",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "missing db username",
			mutate: func(cfg *Config) { cfg.Db.Username = "" },
		},
		{
			name:   "missing timelock admin",
			mutate: func(cfg *Config) { cfg.Timelock.Admin = "" },
		},
		{
			name:   "timelock delay below minimum",
			mutate: func(cfg *Config) { cfg.Timelock.Delay = 24 * time.Hour },
		},
		{
			name:   "timelock delay above maximum",
			mutate: func(cfg *Config) { cfg.Timelock.Delay = 31 * 24 * time.Hour },
		},
		{
			name:   "missing treasury address",
			mutate: func(cfg *Config) { cfg.Treasury.Address = "" },
		},
		{
			name:   "initial redemption rate above maximum",
			mutate: func(cfg *Config) { cfg.Treasury.RedemptionRate = MaxRedemptionRate + 1 },
		},
		{
			name:   "missing registry endpoint",
			mutate: func(cfg *Config) { cfg.Registry.Endpoint = "" },
		},
		{
			name:   "non-positive proposal timeout",
			mutate: func(cfg *Config) { cfg.Proposal.Timeout = 0 },
		},
		{
			name:   "missing exec endpoint",
			mutate: func(cfg *Config) { cfg.Exec.Endpoint = "" },
		},
		{
			name:   "missing queue exchange",
			mutate: func(cfg *Config) { cfg.Queue.Exchange = "" },
		},
		{
			name:   "server port out of range",
			mutate: func(cfg *Config) { cfg.Server.Port = 0 },
		},
		{
			name:   "metrics port out of range",
			mutate: func(cfg *Config) { cfg.Metrics.Port = 70000 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateDelay(t *testing.T) {
	assert.Error(t, ValidateDelay(MinimumDelay-time.Second))
	assert.NoError(t, ValidateDelay(MinimumDelay))
	assert.NoError(t, ValidateDelay(MaximumDelay))
	assert.Error(t, ValidateDelay(MaximumDelay+time.Second))
}

func TestServerConfigDefaults(t *testing.T) {
	cfg := &ServerConfig{Host: "0.0.0.0", Port: 8080}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultReadTimeout, cfg.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, cfg.WriteTimeout)
}

func TestMetricsGaugeRefreshDefault(t *testing.T) {
	cfg := &MetricsConfig{Host: "0.0.0.0", Port: 2112}
	assert.Equal(t, defaultGaugeRefreshInterval, cfg.GaugeRefreshInterval())

	cfg.GaugeRefresh = time.Minute
	assert.Equal(t, time.Minute, cfg.GaugeRefreshInterval())
}

func TestNewFromFile(t *testing.T) {
	content := `
db:
  username: test
  password: test
  address: mongodb://localhost:27017
  db-name: redemption
timelock:
  admin: "0xa11ce00000000000000000000000000000000001"
  delay: 72h
treasury:
  address: "0xdddd000000000000000000000000000000000dao"
  redemption-rate: 5000
registry:
  endpoint: http://localhost:8081
  timeout: 10s
  max-retry-times: 3
  retry-interval: 1s
proposal:
  endpoint: http://localhost:8082
  timeout: 10s
  max-retry-times: 3
  retry-interval: 1s
exec:
  endpoint: http://localhost:8083
  timeout: 30s
queue:
  username: guest
  password: guest
  url: localhost:5672
  exchange: redemption.events
server:
  host: 0.0.0.0
  port: 8080
metrics:
  host: 0.0.0.0
  port: 2112
  gauge-refresh: 1m
`
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	cfg, err := New(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, cfg.Timelock.Delay)
	assert.Equal(t, uint64(5000), cfg.Treasury.RedemptionRate)
	assert.Equal(t, time.Minute, cfg.Metrics.GaugeRefresh)

	_, err = New(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
