package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultSessionSecret = "default-secret-key-change-me"
	defaultJWTSecret     = "default-jwt-secret-change-me"
)

type Config struct {
	AppEnv        string        `mapstructure:"APP_ENV"`
	AppDebug      bool          `mapstructure:"APP_DEBUG"`
	Port          string        `mapstructure:"PORT"`
	GinMode       string        `mapstructure:"GIN_MODE"`
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	DBHost        string        `mapstructure:"DB_HOST"`
	DBPort        string        `mapstructure:"DB_PORT"`
	DBUser        string        `mapstructure:"DB_USER"`
	DBPassword    string        `mapstructure:"DB_PASSWORD"`
	DBName        string        `mapstructure:"DB_NAME"`
	DBSSLMode     string        `mapstructure:"DB_SSLMODE"`
	RedisHost     string        `mapstructure:"REDIS_HOST"`
	RedisPort     string        `mapstructure:"REDIS_PORT"`
	SessionStore  string        `mapstructure:"SESSION_STORE"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTTTL        time.Duration `mapstructure:"JWT_TTL"`
	NATSURL       string        `mapstructure:"NATS_URL"`
}

// Load reads configuration from an optional config.yml and the environment.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "twitter")
	v.SetDefault("DB_PASSWORD", "twitterpassword")
	v.SetDefault("DB_NAME", "twitter_clone")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_STORE", "cookie")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("NATS_URL", "")
}

// Validate checks required values and refuses default secrets in production.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}

	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return errors.New("JWT_SECRET must be changed from the default value in production")
		}
		if c.SessionSecret == defaultSessionSecret {
			return errors.New("SESSION_SECRET must be changed from the default value in production")
		}
		if c.AppDebug {
			slog.Warn("APP_DEBUG is enabled in production; error details will be returned to clients")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.AppEnv)
	return env == "production" || env == "prod"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
