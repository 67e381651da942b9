package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Pocketplan"`
		Port     int    `envconfig:"PORT" default:"8080"`
		Timezone string `envconfig:"APP_TIMEZONE" default:"UTC"`
	}

	Auth struct {
		Login       string        `envconfig:"AUTH_LOGIN" default:"admin"`
		Password    string        `envconfig:"AUTH_PASSWORD" default:"admin"`
		TokenSecret string        `envconfig:"AUTH_TOKEN_SECRET" default:""`
		TokenTTL    time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Store struct {
		Backend    string `envconfig:"STORE_BACKEND" default:"file"`
		DataDir    string `envconfig:"STORE_DATA_DIR" default:"data"`
		SQLitePath string `envconfig:"SQLITE_PATH" default:"data/pocketplan.db"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pocketplan"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Series struct {
		MaxDays int `envconfig:"SERIES_MAX_DAYS" default:"1830"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Location resolves APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.App.Timezone, err)
	}

	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Store.Backend {
	case BackendMemory, BackendFile, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}

	return &cfg, nil
}
