package config

import "fmt"

// QueueConfig configures the AMQP broker the audit events are published to.
type QueueConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Url      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Username == "" {
		return fmt.Errorf("missing queue username")
	}
	if cfg.Password == "" {
		return fmt.Errorf("missing queue password")
	}
	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}
	if cfg.Exchange == "" {
		return fmt.Errorf("missing queue exchange")
	}
	return nil
}
