package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envAliases maps config keys to the bare environment variable names the
// service has historically been deployed with. The prefixed form
// (TASKNEST_SERVER_PORT etc.) always takes precedence.
var envAliases = map[string][]string{
	"server.port":      {"PORT"},
	"server.log_level": {"LOG_LEVEL"},
	"database.url":     {"DATABASE_URL"},
	"auth.jwt_secret":  {"JWT_SECRET"},
	"mail.host":        {"SMTP_HOST"},
	"mail.port":        {"SMTP_PORT"},
	"mail.username":    {"SMTP_USERNAME", "EMAIL_USER"},
	"mail.password":    {"SMTP_PASSWORD", "EMAIL_PASS"},
	"mail.from":        {"SMTP_FROM"},
}

// Load reads configuration from a .env file (if present) and the process
// environment. Environment variables take precedence over .env values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	// Populate the process environment from .env when one exists.
	// A missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("mail.port", 587)

	// Environment variables with TASKNEST_ prefix, dots mapped to underscores
	v.SetEnvPrefix("TASKNEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{"TASKNEST_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
