package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"`
	Media    MediaConfig    `mapstructure:"media"`
	Review   ReviewConfig   `mapstructure:"review"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RateLimitRPS is the sustained request rate allowed per client IP on
	// the auth endpoints; RateLimitBurst caps short spikes.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// MailConfig configures the outbound mail relay used for password resets.
// The relay is a separate HTTPS service; requests authenticate with a
// shared internal token header. All fields are optional: when RelayURL is
// empty the forgot-password flow is disabled.
type MailConfig struct {
	RelayURL          string `mapstructure:"relay_url" validate:"omitempty,url"`
	RelayToken        string `mapstructure:"relay_token"`
	From              string `mapstructure:"from" validate:"omitempty,email"`
	WebResetLinkBase  string `mapstructure:"web_reset_link_base" validate:"omitempty,url"`
	AppResetLinkBase  string `mapstructure:"app_reset_link_base"`
	ResetTokenMinutes int    `mapstructure:"reset_token_minutes" validate:"omitempty,gt=0"`
}

// MediaConfig configures local storage for uploaded avatar images.
type MediaConfig struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// ReviewConfig contains review selection settings.
type ReviewConfig struct {
	// MaxBatchSize caps the number of words returned by a single review
	// request regardless of what the client asks for.
	MaxBatchSize int `mapstructure:"max_batch_size" validate:"omitempty,gt=0"`
}
