package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	Upstream     UpstreamConfig
	Redis        RedisConfig
	Cart         CartConfig
	ManualSale   ManualSaleConfig
	Dashboard    DashboardConfig
	Search       SearchConfig
	AdminJWT     AdminJWTConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the remote retail API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"STOREFRONT_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	if strings.TrimSpace(u.BaseURL) == "" {
		return fmt.Errorf("upstream base url is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
	ConnectTries int           `envconfig:"STOREFRONT_REDIS_CONNECT_TRIES" default:"5"`
}

// CartConfig controls the persistent cart store.
type CartConfig struct {
	TTL        time.Duration `envconfig:"STOREFRONT_CART_TTL" default:"720h"`
	SQLitePath string        `envconfig:"STOREFRONT_CART_SQLITE_PATH" default:"storefront.db"`
}

// ManualSaleConfig controls admin point-of-sale sessions.
type ManualSaleConfig struct {
	SessionTTL time.Duration `envconfig:"STOREFRONT_MANUAL_SALE_SESSION_TTL" default:"1h"`
}

// DashboardConfig controls the admin dashboard cache.
type DashboardConfig struct {
	RefreshInterval time.Duration `envconfig:"STOREFRONT_DASHBOARD_REFRESH_INTERVAL" default:"5m"`
}

// SearchConfig controls product search behavior.
type SearchConfig struct {
	MinQueryLength int `envconfig:"STOREFRONT_SEARCH_MIN_QUERY_LENGTH" default:"2"`
}

type AdminJWTConfig struct {
	Secret            string `envconfig:"STOREFRONT_ADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONT_ADMIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREFRONT_ADMIN_JWT_EXPIRATION_MINUTES" default:"480"`
}

type FeatureFlagsConfig struct {
	UseSQLite bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
}
