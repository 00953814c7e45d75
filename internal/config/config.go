// Package config loads application configuration once at startup.
// The resulting Config struct is passed explicitly into constructors;
// no package keeps ambient configuration state.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config groups all application settings.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	Auth AuthConfig
	Log  LogConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig holds PostgreSQL settings. If DatabaseURL is set it is used as the
// full connection string, otherwise the DSN is built from the parts.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns the DSN to use.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds a postgres connection string, URL-encoding credentials so
// passwords with special characters survive.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// AuthConfig holds session authentication settings.
type AuthConfig struct {
	// SessionSecret signs session tokens. Must be overridden in production.
	SessionSecret string
	// SessionTTL is how long an established session stays valid.
	SessionTTL time.Duration
	// BootstrapDefaultUser creates the default account at startup if absent.
	BootstrapDefaultUser bool
	DefaultUsername      string
	DefaultPassword      string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables and an optional .env
// file. Environment variables take precedence over file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		Auth: AuthConfig{
			SessionSecret:        v.GetString("SESSION_SECRET"),
			SessionTTL:           v.GetDuration("SESSION_TTL"),
			BootstrapDefaultUser: v.GetBool("AUTH_BOOTSTRAP_DEFAULT_USER"),
			DefaultUsername:      v.GetString("AUTH_DEFAULT_USERNAME"),
			DefaultPassword:      v.GetString("AUTH_DEFAULT_PASSWORD"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DB.ConnectionString() == "" {
		return fmt.Errorf("database configuration is required")
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if !c.App.IsDevelopment() && c.Auth.SessionSecret == devSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be changed outside development")
	}
	return nil
}

const devSessionSecret = "dev-secret-change-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "valora")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "valora")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "valora")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SESSION_SECRET", devSessionSecret)
	v.SetDefault("SESSION_TTL", time.Hour)
	v.SetDefault("AUTH_BOOTSTRAP_DEFAULT_USER", false)
	v.SetDefault("AUTH_DEFAULT_USERNAME", "admin")
	v.SetDefault("AUTH_DEFAULT_PASSWORD", "admin123")

	v.SetDefault("LOG_LEVEL", "info")
}
