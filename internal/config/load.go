package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file. Environment variables (prefix STASH_, "." replaced by "_") take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_scheme", "opaque")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment variables: STASH_SERVER_PORT, STASH_DATABASE_URL, ...
	v.SetEnvPrefix("STASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine; env vars may carry everything.
	}

	// Viper only reports env-var keys it has seen, so bind the ones we
	// unmarshal explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.token_scheme",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	// The jwt scheme cannot work without a signing secret; the opaque
	// scheme needs none.
	if cfg.Auth.TokenScheme == "jwt" && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf(
			"configuration validation failed: auth.jwt_secret is required when auth.token_scheme is %q",
			cfg.Auth.TokenScheme,
		)
	}

	return &cfg, nil
}
