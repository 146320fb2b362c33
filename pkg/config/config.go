// Package config loads application configuration via Viper from
// environment variables, with an optional .env file for local runs.
// Env vars always win over file values.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config groups all application configuration.
type Config struct {
	App  AppConfig
	DB   DBConfig
	JWT  JWTConfig
	HTTP HTTPConfig
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

// DBConfig holds PostgreSQL settings.
// If DatabaseURL is set it is used as the full connection string,
// otherwise a DSN is built from the discrete fields.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// ConnectionString returns the DSN to use.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds a PostgreSQL connection string. url.UserPassword handles
// special characters in the password.
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

// JWTConfig holds token validation settings.
// Tokens are issued by an external identity provider; this service
// only validates them.
type JWTConfig struct {
	Secret string
	Issuer string
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

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// Load reads configuration from environment variables and an optional
// .env file in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "stockyard")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "stockyard")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("JWT_ISSUER", "stockyard")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if cfg.JWT.Secret == "" && !cfg.App.IsDevelopment() {
		return nil, fmt.Errorf("JWT_SECRET is required outside development")
	}

	return cfg, nil
}
