package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,min=1,max=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,min=1,max=43200"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"gte=4,lte=31"`

	// AdminPriority is the priority name a user must hold to delete tasks
	// and categories.
	AdminPriority string `mapstructure:"admin_priority" validate:"required"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst"               validate:"gte=1"`
}
