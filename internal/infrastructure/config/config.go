package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Redis       RedisConfig
	Fulfillment FulfillmentConfig
	Currency    CurrencyConfig
	Pricing     PricingConfig
	Telemetry   TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// RedisConfig holds Redis connection settings for the currency rate cache
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// FulfillmentConfig holds print provider API settings
type FulfillmentConfig struct {
	APIBaseURL          string
	APIKey              string
	TimeoutSeconds      int
	PlaceholderAssetURL string
}

// CurrencyConfig holds exchange rate source and cache settings
type CurrencyConfig struct {
	RateSourceURL  string
	BaseCurrency   string
	TimeoutSeconds int
	CacheTTL       time.Duration
}

// PricingConfig holds pricing computation settings
type PricingConfig struct {
	// DeliverySlackDays is how many extra delivery days a cheaper quote may
	// cost before it stops being recommended
	DeliverySlackDays int
	// TaxRate is a flat percentage applied to the subtotal; 0 disables tax
	TaxRate float64
	// QuoteTimeout bounds each individual provider quote call
	QuoteTimeout time.Duration
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PRINTWORKS_ prefix (e.g., PRINTWORKS_FULFILLMENT_APIKEY)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PRINTWORKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Fulfillment: FulfillmentConfig{
			APIBaseURL:          v.GetString("fulfillment.api_base_url"),
			APIKey:              v.GetString("fulfillment.api_key"),
			TimeoutSeconds:      v.GetInt("fulfillment.timeout_seconds"),
			PlaceholderAssetURL: v.GetString("fulfillment.placeholder_asset_url"),
		},
		Currency: CurrencyConfig{
			RateSourceURL:  v.GetString("currency.rate_source_url"),
			BaseCurrency:   v.GetString("currency.base_currency"),
			TimeoutSeconds: v.GetInt("currency.timeout_seconds"),
			CacheTTL:       v.GetDuration("currency.cache_ttl"),
		},
		Pricing: PricingConfig{
			DeliverySlackDays: v.GetInt("pricing.delivery_slack_days"),
			TaxRate:           v.GetFloat64("pricing.tax_rate"),
			QuoteTimeout:      v.GetDuration("pricing.quote_timeout"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "printworks-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Fulfillment.TimeoutSeconds == 0 {
		cfg.Fulfillment.TimeoutSeconds = 15
	}
	if cfg.Currency.BaseCurrency == "" {
		cfg.Currency.BaseCurrency = "USD"
	}
	if cfg.Currency.TimeoutSeconds == 0 {
		cfg.Currency.TimeoutSeconds = 10
	}
	if cfg.Currency.CacheTTL == 0 {
		cfg.Currency.CacheTTL = time.Hour
	}
	if cfg.Pricing.DeliverySlackDays == 0 {
		cfg.Pricing.DeliverySlackDays = 3
	}
	if cfg.Pricing.QuoteTimeout == 0 {
		cfg.Pricing.QuoteTimeout = 20 * time.Second
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Pricing.DeliverySlackDays < 0 {
		return fmt.Errorf("pricing.delivery_slack_days cannot be negative")
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 100 {
		return fmt.Errorf("pricing.tax_rate must be in [0, 100), got %f", c.Pricing.TaxRate)
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if c.Fulfillment.APIBaseURL == "" {
			return fmt.Errorf("fulfillment.api_base_url is required in production")
		}
		if c.Fulfillment.APIKey == "" {
			return fmt.Errorf("fulfillment.api_key is required in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}
