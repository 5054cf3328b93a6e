package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API    APIConfig
	Auth   AuthConfig
	Log    LogConfig
	Export ExportConfig
}

// APIConfig locates the remote admin API.
type APIConfig struct {
	BaseURL string
	Prefix  string
	Timeout time.Duration
}

// AuthConfig carries either a ready bearer token or the login pair used to obtain one.
type AuthConfig struct {
	Token    string
	Email    string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig controls where rendered reports are written.
type ExportConfig struct {
	Dir string
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: strings.ToLower(v.GetString("ENV")),
	}

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Prefix:  v.GetString("API_PREFIX"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 30*time.Second),
	}
	if cfg.API.BaseURL == "" {
		return nil, errors.New("API_BASE_URL is required")
	}

	cfg.Auth = AuthConfig{
		Token:    v.GetString("AUTH_TOKEN"),
		Email:    v.GetString("AUTH_EMAIL"),
		Password: v.GetString("AUTH_PASSWORD"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		Dir: v.GetString("EXPORT_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("API_TIMEOUT", "30s")

	v.SetDefault("AUTH_TOKEN", "")
	v.SetDefault("AUTH_EMAIL", "")
	v.SetDefault("AUTH_PASSWORD", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
