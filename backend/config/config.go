package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	AppEnv     string `mapstructure:"APP_ENV"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`
	DBSeed      bool   `mapstructure:"DB_SEED"`

	RedisAddr  string        `mapstructure:"REDIS_ADDR"`
	RateLimit  int           `mapstructure:"RATE_LIMIT"`
	RateWindow time.Duration `mapstructure:"RATE_WINDOW"`

	AllowOrigins    string `mapstructure:"ALLOW_ORIGINS"`
	CatalogPageSize int    `mapstructure:"CATALOG_PAGE_SIZE"`
	ListPageSize    int    `mapstructure:"LIST_PAGE_SIZE"`
	MaxPageSize     int    `mapstructure:"MAX_PAGE_SIZE"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":       "8080",
	"APP_ENV":           "development",
	"JWT_SECRET":        "secret",
	"JWT_TTL":           "72h",
	"STORE_DRIVER":      StoreMemory,
	"DB_HOST":           "localhost",
	"DB_PORT":           "5432",
	"DB_USER":           "postgres",
	"DB_PASSWORD":       "postgres",
	"DB_NAME":           "learnhub",
	"DB_SSLMODE":        "disable",
	"DB_SEED":           false,
	"REDIS_ADDR":        "",
	"RATE_LIMIT":        30,
	"RATE_WINDOW":       "1m",
	"ALLOW_ORIGINS":     "*",
	"CATALOG_PAGE_SIZE": 12,
	"LIST_PAGE_SIZE":    10,
	"MAX_PAGE_SIZE":     50,
}

// LoadConfig reads .env (when present), an optional app.env under path and
// the process environment, in increasing priority.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StorePostgres, c.StoreDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.MaxPageSize < 1 || c.CatalogPageSize < 1 || c.ListPageSize < 1 {
		return fmt.Errorf("page sizes must be positive")
	}
	return nil
}

// DSN is the postgres connection string for the GORM store.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RateLimitEnabled reports whether a Redis address and a positive limit are set.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddr != "" && c.RateLimit > 0
}
