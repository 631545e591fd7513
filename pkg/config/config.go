package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/money"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Pricing PricingConfig
	DB      DBConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments configure the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.parse(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KULSHY_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"KULSHY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KULSHY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig carries the checkout pricing policy. Raw values are decimal
// strings so the amounts survive env round-trips without float drift.
type PricingConfig struct {
	TaxRateRaw               string `envconfig:"KULSHY_TAX_RATE" default:"0.08"`
	StandardShippingRaw      string `envconfig:"KULSHY_SHIPPING_STANDARD_RATE" default:"5.99"`
	ExpressShippingRaw       string `envconfig:"KULSHY_SHIPPING_EXPRESS_RATE" default:"12.99"`
	FreeShippingThresholdRaw string `envconfig:"KULSHY_FREE_SHIPPING_THRESHOLD" default:"50"`

	taxRate               decimal.Decimal
	standardShipping      decimal.Decimal
	expressShipping       decimal.Decimal
	freeShippingThreshold decimal.Decimal
}

func (p *PricingConfig) parse() error {
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{EnvTaxRate, p.TaxRateRaw, &p.taxRate},
		{EnvShippingStandardRate, p.StandardShippingRaw, &p.standardShipping},
		{EnvShippingExpressRate, p.ExpressShippingRaw, &p.expressShipping},
		{EnvFreeShippingThreshold, p.FreeShippingThresholdRaw, &p.freeShippingThreshold},
	}
	for _, field := range fields {
		value, err := money.Parse(strings.TrimSpace(field.raw))
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dst = value
	}
	return nil
}

// TaxRate returns the fractional tax rate applied to order subtotals.
func (p PricingConfig) TaxRate() decimal.Decimal {
	return p.taxRate
}

// StandardShipping returns the flat standard shipping rate.
func (p PricingConfig) StandardShipping() decimal.Decimal {
	return p.standardShipping
}

// ExpressShipping returns the flat express shipping rate.
func (p PricingConfig) ExpressShipping() decimal.Decimal {
	return p.expressShipping
}

// FreeShippingThreshold returns the subtotal above which standard shipping is free.
func (p PricingConfig) FreeShippingThreshold() decimal.Decimal {
	return p.freeShippingThreshold
}

type DBConfig struct {
	DSN    string `envconfig:"KULSHY_DB_DSN"`
	Driver string `envconfig:"KULSHY_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"KULSHY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KULSHY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KULSHY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KULSHY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"KULSHY_REDIS_URL"`
	Address      string        `envconfig:"KULSHY_REDIS_ADDR"`
	Password     string        `envconfig:"KULSHY_REDIS_PASSWORD"`
	DB           int           `envconfig:"KULSHY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KULSHY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KULSHY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KULSHY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KULSHY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KULSHY_REDIS_WRITE_TIMEOUT" default:"5s"`
}
