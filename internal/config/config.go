package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string
	DBDSN         string
	ServerPort    string
	SessionSecret string

	UploadDir      string
	ReportsDir     string
	MaxUploadBytes int64

	OpenAIKey     string
	OpenAIModel   string
	OpenAITimeout time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	SeedUsers bool
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("REPORTS_DIR", "uploads/reports")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	v.SetDefault("OPENAI_TIMEOUT", "60s")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("SEED_USERS", true)

	cfg := &Config{
		DBDriver:       v.GetString("DB_DRIVER"),
		DBDSN:          v.GetString("DB_DSN"),
		ServerPort:     v.GetString("SERVER_PORT"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		ReportsDir:     v.GetString("REPORTS_DIR"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),
		OpenAIKey:      v.GetString("OPENAI_API_KEY"),
		OpenAIModel:    v.GetString("OPENAI_MODEL"),
		OpenAITimeout:  v.GetDuration("OPENAI_TIMEOUT"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		SeedUsers:      v.GetBool("SEED_USERS"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, errors.New("DB_DRIVER must be postgres or sqlite")
	}

	return cfg, nil
}

// RequireServer checks settings only the HTTP server needs.
func (c *Config) RequireServer() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is not set")
	}
	return nil
}
