package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by Load.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv        = "TIOPELOTTE_APP_ENV"
	EnvPort          = "TIOPELOTTE_APP_PORT"
	EnvRedisURL      = "TIOPELOTTE_REDIS_URL"
	EnvJWTSecret     = "TIOPELOTTE_JWT_SECRET"
	EnvCMSBaseURL    = "TIOPELOTTE_CMS_BASE_URL"
	EnvMPAccessToken = "TIOPELOTTE_MP_ACCESS_TOKEN"
	EnvMPBackURLBase = "TIOPELOTTE_MP_BACK_URL_BASE"
)

type Config struct {
	App         AppConfig
	Service     ServiceConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CMS         CMSConfig
	MercadoPago MercadoPagoConfig
	Cart        CartConfig
	Checkout    CheckoutConfig
	Cron        CronConfig
	CORS        CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TIOPELOTTE_APP_ENV" required:"true"`
	Port         string `envconfig:"TIOPELOTTE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TIOPELOTTE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TIOPELOTTE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TIOPELOTTE_SERVICE_KIND" default:"api"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TIOPELOTTE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TIOPELOTTE_REDIS_ADDR"`
	Password     string        `envconfig:"TIOPELOTTE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TIOPELOTTE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TIOPELOTTE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TIOPELOTTE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TIOPELOTTE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TIOPELOTTE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TIOPELOTTE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies tokens issued by the CMS; the storefront never signs its
// own tokens, it only shares the CMS secret.
type JWTConfig struct {
	Secret     string        `envconfig:"TIOPELOTTE_JWT_SECRET" required:"true"`
	Issuer     string        `envconfig:"TIOPELOTTE_JWT_ISSUER"`
	SessionTTL time.Duration `envconfig:"TIOPELOTTE_SESSION_TTL" default:"24h"`
}

type CMSConfig struct {
	BaseURL  string        `envconfig:"TIOPELOTTE_CMS_BASE_URL" required:"true"`
	APIToken string        `envconfig:"TIOPELOTTE_CMS_API_TOKEN"`
	Timeout  time.Duration `envconfig:"TIOPELOTTE_CMS_TIMEOUT" default:"10s"`
}

type MercadoPagoConfig struct {
	BaseURL     string        `envconfig:"TIOPELOTTE_MP_BASE_URL" default:"https://api.mercadopago.com"`
	AccessToken string        `envconfig:"TIOPELOTTE_MP_ACCESS_TOKEN" required:"true"`
	BackURLBase string        `envconfig:"TIOPELOTTE_MP_BACK_URL_BASE" required:"true"`
	Timeout     time.Duration `envconfig:"TIOPELOTTE_MP_TIMEOUT" default:"10s"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"TIOPELOTTE_CART_TTL" default:"720h"`
}

type CheckoutConfig struct {
	StateTTL time.Duration `envconfig:"TIOPELOTTE_CHECKOUT_STATE_TTL" default:"168h"`
}

type CronConfig struct {
	Interval     time.Duration `envconfig:"TIOPELOTTE_CRON_INTERVAL" default:"1h"`
	TempOrderTTL time.Duration `envconfig:"TIOPELOTTE_TEMP_ORDER_TTL" default:"168h"`
}

type CORSConfig struct {
	Origins []string `envconfig:"TIOPELOTTE_CORS_ORIGINS" default:"http://localhost:3000"`
}
