package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// MigrationsDir is the directory holding goose SQL migrations,
	// applied at startup.
	MigrationsDir string `mapstructure:"migrations_dir" validate:"required"`
}

// AuthConfig contains the settings for validating dashboard bearer tokens.
// Token issuance belongs to the main product backend; this service only
// verifies HS256 signatures with the shared secret.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// AnalyticsConfig tunes the aggregation layer.
type AnalyticsConfig struct {
	// CacheTTLSeconds bounds how long a revision-matched summary may be
	// served before recency windows must be re-evaluated.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" validate:"gte=0"`

	// MinContributors is the minimum distinct-user count a collective
	// wave or pattern needs before it is surfaced. 1 disables the floor.
	MinContributors int `mapstructure:"min_contributors" validate:"gte=1"`
}
