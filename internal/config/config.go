// apps/go-server/internal/config/config.go
//
// Typed server configuration read from the environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Results backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Log formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

type Config struct {
	Port           string        `env:"PORT"            envDefault:"3001"`
	AppEnv         string        `env:"APP_ENV"         envDefault:"development"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"   envDefault:"http://localhost:3000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	Log Log

	DatabasePath   string `env:"DATABASE_PATH"   envDefault:"./data/games.db"`
	ResultsBackend string `env:"RESULTS_BACKEND" envDefault:"sqlite"`
	Redis          Redis

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"games_token"`

	SpanishWordsFile string `env:"WORDS_SPANISH_FILE"`
	EnglishWordsFile string `env:"WORDS_ENGLISH_FILE"`

	DailySalt   string        `env:"DAILY_SALT"   envDefault:"local_dev_salt"`
	TurnTimeout time.Duration `env:"TURN_TIMEOUT" envDefault:"10s"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"10000"`
	DefaultLang string        `env:"DEFAULT_LANG" envDefault:"en"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL"        envDefault:"info"`
	Format     string `env:"LOG_FORMAT"       envDefault:"json"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB"  envDefault:"50"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS"  envDefault:"3"`
	MaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"28"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB"       envDefault:"0"`
	Prefix   string        `env:"REDIS_PREFIX"   envDefault:"games:"`
	TTL      time.Duration `env:"REDIS_TTL"      envDefault:"0s"`
}

// Production reports whether cookies must be Secure.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

// FromMap builds a Config from an explicit environment, ignoring the process
// environment.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	switch c.ResultsBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("RESULTS_BACKEND: unknown backend %q", c.ResultsBackend)
	}
	switch c.Log.Format {
	case FormatJSON, FormatConsole:
	default:
		return fmt.Errorf("LOG_FORMAT: unknown format %q", c.Log.Format)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT: must not be empty")
	}
	if c.JWTExpiresDays <= 0 {
		return fmt.Errorf("JWT_EXPIRES_DAYS: must be positive")
	}
	if c.TurnTimeout < 0 {
		return fmt.Errorf("TURN_TIMEOUT: must not be negative")
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("MAX_SESSIONS: must be positive")
	}
	return nil
}
