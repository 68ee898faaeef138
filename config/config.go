package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port              string
	Env               string
	RazorpayKeyID     string
	RazorpayKeySecret string

	// LedgerDSN selects the durable postgres ledger; empty keeps the
	// in-memory ledger, which resets on process restart.
	LedgerDSN string

	// KafkaBrokers is a comma-separated broker list; empty disables
	// payment event publishing.
	KafkaBrokers string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// AppConfig is the process-wide configuration, set by LoadConfig.
var AppConfig *Config

// LoadConfig loads configuration from a .env file when present, falling back
// to the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine in containers; env vars win either way.
	_ = godotenv.Load()

	config := &Config{
		Port:              os.Getenv("PORT"),
		Env:               os.Getenv("ENV"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		LedgerDSN:         os.Getenv("LEDGER_DSN"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          os.Getenv("SMTP_PORT"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:          os.Getenv("SMTP_FROM"),
	}
	if config.Port == "" {
		config.Port = "8080"
	}

	if config.RazorpayKeyID == "" || config.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("razorpay credentials not configured (RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET)")
	}

	AppConfig = config
	return config, nil
}
