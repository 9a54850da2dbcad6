package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full environment-driven configuration, loaded once in main.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Port        string `envconfig:"PORT" default:"8080"`
	AppURL      string `envconfig:"APP_URL" default:"http://localhost:3000"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	HitPay   HitPayConfig
	SendGrid SendGridConfig
	Twilio   TwilioConfig

	// PendingPaymentMaxAgeHours is how long a hitpay payment may stay
	// pending before the maintenance job marks it failed.
	PendingPaymentMaxAgeHours int `envconfig:"PENDING_PAYMENT_MAX_AGE_HOURS" default:"24"`
}

type HitPayConfig struct {
	APIKey        string `envconfig:"HITPAY_API_KEY"`
	BaseURL       string `envconfig:"HITPAY_BASE_URL" default:"https://api.hit-pay.com"`
	WebhookSecret string `envconfig:"HITPAY_WEBHOOK_SECRET"`
}

type SendGridConfig struct {
	APIKey    string `envconfig:"SENDGRID_API_KEY"`
	FromEmail string `envconfig:"SENDGRID_FROM_EMAIL"`
	FromName  string `envconfig:"SENDGRID_FROM_NAME" default:"Kembara Rentals"`
}

type TwilioConfig struct {
	AccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	FromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
