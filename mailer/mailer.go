// Package mailer is a client for the email-relay collaborator, the small
// service that delivers tracking codes and MFA codes to users by email.
package mailer

import (
	"context"
	"time"

	"github.com/kelseyhightower/envconfig"
)

//go:generate mockgen --build_flags=--mod=mod -source=./mailer.go -destination=./test/mock_client.go -package test MockClient

type Client interface {
	SendTrackingCode(ctx context.Context, email, trackingCode, patientName string) error
	SendMFAEmail(ctx context.Context, email, mfaCode string) error
}

type Config struct {
	Address string        `envconfig:"AFYA_MAILER_ADDRESS" default:"http://localhost:3001"`
	Timeout time.Duration `envconfig:"AFYA_MAILER_TIMEOUT" default:"5s"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
