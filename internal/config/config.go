package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DBMaxConns        int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns        int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS      float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst    int      `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeoutSec int      `mapstructure:"REQUEST_TIMEOUT_SEC"`
	AdvisoryURL       string   `mapstructure:"ADVISORY_URL"`
	AdvisoryAPIKey    string   `mapstructure:"ADVISORY_API_KEY"`
	AdvisoryTimeoutMS int      `mapstructure:"ADVISORY_TIMEOUT_MS"`
	VitalsOverdueHrs  int      `mapstructure:"VITALS_OVERDUE_HOURS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("REQUEST_TIMEOUT_SEC", 30)
	v.SetDefault("ADVISORY_TIMEOUT_MS", 2000)
	v.SetDefault("VITALS_OVERDUE_HOURS", 4)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")
	v.BindEnv("REQUEST_TIMEOUT_SEC")
	v.BindEnv("ADVISORY_URL")
	v.BindEnv("ADVISORY_API_KEY")
	v.BindEnv("ADVISORY_TIMEOUT_MS")
	v.BindEnv("VITALS_OVERDUE_HOURS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env != "production"
}

// AdvisoryTimeout returns the advisory call timeout as a duration.
func (c *Config) AdvisoryTimeout() time.Duration {
	return time.Duration(c.AdvisoryTimeoutMS) * time.Millisecond
}

// RequestTimeout returns the per-request deadline as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// VitalsOverdue returns how stale a patient's latest reading may be before
// the ward overview flags it.
func (c *Config) VitalsOverdue() time.Duration {
	return time.Duration(c.VitalsOverdueHrs) * time.Hour
}
