package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication-related settings.
//
// TokenScheme selects the token implementation: "opaque" (the
// default) returns the raw account id as the bearer token; "jwt"
// issues signed, expiring HS256 tokens and requires JWTSecret to be
// set.
type AuthConfig struct {
	TokenScheme          string `mapstructure:"token_scheme"           validate:"required,oneof=opaque jwt"`
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}
