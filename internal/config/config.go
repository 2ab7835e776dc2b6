package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds process-wide configuration. It is loaded once at startup
// and treated as immutable for the process lifetime.
type Config struct {
	Port          int           `env:"PORT"            envDefault:"8008"`
	MongoURI      string        `env:"MONGO_URI"`
	MongoDatabase string        `env:"MONGO_DATABASE"  envDefault:"hostel"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER"     envDefault:"hostel-management-api"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	OTPExpiresIn   time.Duration `env:"OTP_EXPIRES_IN"   envDefault:"10m"`
	ResetExpiresIn time.Duration `env:"RESET_EXPIRES_IN" envDefault:"10m"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL"   envDefault:"1m"`
}

// New creates a Config instance from environment variables. An
// incomplete configuration is a fatal startup error.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks the startup preconditions that have no usable default.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}

	return nil
}
