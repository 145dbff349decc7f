// Package config turns viper settings into the typed service configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"
)

// Auth policies decide which product routes sit behind the bearer token gate.
const (
	AuthPolicyNone   = "none"
	AuthPolicyWrites = "writes"
	AuthPolicyAll    = "all"
)

type Config struct {
	Host string
	Port int

	Store         string
	DatabaseURL   string
	MongoDatabase string

	LogLevel  string
	LogFormat string

	ReadRPS        int
	WriteRPS       int
	MaxBodyBytes   int64
	AllowedOrigins []string
	MaxPageLimit   int

	AuthPolicy string
	JWTSecret  string
	JWTIssuer  string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WriteTimeout leaves the server room to write the 504 produced when a
// request hits RequestTimeout.
func (c *Config) WriteTimeout() time.Duration {
	return c.RequestTimeout + 5*time.Second
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 5000)
	v.SetDefault("MONGO_DATABASE", "catalog")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RATE_LIMIT_READ_RPS", 100)
	v.SetDefault("RATE_LIMIT_WRITE_RPS", 20)
	v.SetDefault("MAX_REQUEST_BODY_BYTES", 1048576)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MAX_PAGE_LIMIT", 100)
	v.SetDefault("AUTH_POLICY", AuthPolicyAll)
	v.SetDefault("JWT_ISSUER", "catalog")
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	_ = v.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGO_URI")
	v.AutomaticEnv()
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host:            v.GetString("HOST"),
		Port:            v.GetInt("PORT"),
		Store:           strings.ToLower(v.GetString("STORE")),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		MongoDatabase:   v.GetString("MONGO_DATABASE"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ReadRPS:         v.GetInt("RATE_LIMIT_READ_RPS"),
		WriteRPS:        v.GetInt("RATE_LIMIT_WRITE_RPS"),
		MaxBodyBytes:    v.GetInt64("MAX_REQUEST_BODY_BYTES"),
		AllowedOrigins:  ParseAllowedOrigins(v.GetString("CORS_ALLOWED_ORIGINS")),
		MaxPageLimit:    v.GetInt("MAX_PAGE_LIMIT"),
		AuthPolicy:      strings.ToLower(v.GetString("AUTH_POLICY")),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.Store == "" {
		cfg.Store = StoreFromURL(cfg.DatabaseURL)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres, StoreMongo:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store %q", c.Store)
		}
	case StoreMemory:
	case "":
		return fmt.Errorf("DATABASE_URL is required (or set STORE=memory)")
	default:
		return fmt.Errorf("unsupported STORE %q", c.Store)
	}

	switch c.AuthPolicy {
	case AuthPolicyNone:
	case AuthPolicyWrites, AuthPolicyAll:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_POLICY is %q", c.AuthPolicy)
		}
	default:
		return fmt.Errorf("unsupported AUTH_POLICY %q", c.AuthPolicy)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.MaxPageLimit <= 0 {
		return fmt.Errorf("MAX_PAGE_LIMIT must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// StoreFromURL infers the store backend from a connection string scheme.
func StoreFromURL(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		return StoreMongo
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return StorePostgres
	default:
		return ""
	}
}

func ParseAllowedOrigins(originsStr string) []string {
	if originsStr == "" {
		return []string{"*"}
	}
	origins := strings.Split(originsStr, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
