package auth

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Secret     string        `envconfig:"AFYA_AUTH_SECRET" required:"true"`
	SessionTTL time.Duration `envconfig:"AFYA_AUTH_SESSION_TTL" default:"24h"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
