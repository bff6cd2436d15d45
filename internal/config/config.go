package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr            string
		RequestTimeout  time.Duration
		ShutdownTimeout time.Duration
		RateLimit       float64
		RateBurst       int
	}
	DB struct {
		Driver          string
		DSN             string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}
	Log struct {
		Level  string
		Pretty bool
	}
	APIToken string
}

// Load reads config from environment (BOOKMARKS_ prefix) and optional bookmarks.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.request_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.rate_burst", 20)
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.RateLimit = v.GetFloat64("http.rate_limit")
	cfg.HTTP.RateBurst = v.GetInt("http.rate_burst")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.DB.MaxOpenConns = v.GetInt("db.max_open_conns")
	cfg.DB.MaxIdleConns = v.GetInt("db.max_idle_conns")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")
	cfg.APIToken = v.GetString("api_token")

	var err error
	if cfg.HTTP.RequestTimeout, err = parseDuration(v, "http.request_timeout"); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownTimeout, err = parseDuration(v, "http.shutdown_timeout"); err != nil {
		return nil, err
	}
	if cfg.DB.ConnMaxLifetime, err = parseDuration(v, "db.conn_max_lifetime"); err != nil {
		return nil, err
	}

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres, pgx)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	if cfg.HTTP.RateLimit < 0 {
		return nil, fmt.Errorf("BOOKMARKS_HTTP_RATE_LIMIT must not be negative")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envName(key), err)
	}
	return d, nil
}

// envName maps a viper key to the environment variable that overrides it.
func envName(key string) string {
	return "BOOKMARKS_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
