package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Storage      StorageConfig
	Log          LogConfig
	Cart         CartConfig
	Pricing      PricingConfig
	Notification NotificationConfig
	Checkout     CheckoutConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// DatabaseConfig holds the SQLite database settings
type DatabaseConfig struct {
	Path string // file path, or ":memory:" for an in-memory database
}

// StorageConfig holds shopper state store settings
type StorageConfig struct {
	Backend  string // "memory" or "sqlite"
	MaxBytes int    // quota across all stored documents
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// CartConfig holds cart limits
type CartConfig struct {
	MaxItems          int
	EvictionBatchSize int
}

// PricingConfig holds the estimate literals shown in cart summaries
type PricingConfig struct {
	TaxRatePercent        float64
	FreeShippingThreshold float64
	FlatShippingFee       float64
}

// NotificationConfig holds toast stack settings
type NotificationConfig struct {
	MaxVisible int
	Duration   time.Duration
}

// CheckoutConfig holds checkout flow settings
type CheckoutConfig struct {
	ProcessingDelay time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g., STOREFRONT_DATABASE_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Storage: StorageConfig{
			Backend:  v.GetString("storage.backend"),
			MaxBytes: v.GetInt("storage.max_bytes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Cart: CartConfig{
			MaxItems:          v.GetInt("cart.max_items"),
			EvictionBatchSize: v.GetInt("cart.eviction_batch_size"),
		},
		Pricing: PricingConfig{
			TaxRatePercent:        v.GetFloat64("pricing.tax_rate_percent"),
			FreeShippingThreshold: v.GetFloat64("pricing.free_shipping_threshold"),
			FlatShippingFee:       v.GetFloat64("pricing.flat_shipping_fee"),
		},
		Notification: NotificationConfig{
			MaxVisible: v.GetInt("notification.max_visible"),
			Duration:   v.GetDuration("notification.duration"),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: v.GetDuration("checkout.processing_delay"),
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
		cfg.App.Name = "storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "storefront.db"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.MaxBytes == 0 {
		cfg.Storage.MaxBytes = 5 * 1024 * 1024
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
	if cfg.Cart.MaxItems == 0 {
		cfg.Cart.MaxItems = 50
	}
	if cfg.Cart.EvictionBatchSize == 0 {
		cfg.Cart.EvictionBatchSize = 10
	}
	if cfg.Pricing.TaxRatePercent == 0 {
		cfg.Pricing.TaxRatePercent = 8.25
	}
	if cfg.Pricing.FreeShippingThreshold == 0 {
		cfg.Pricing.FreeShippingThreshold = 25.00
	}
	if cfg.Pricing.FlatShippingFee == 0 {
		cfg.Pricing.FlatShippingFee = 5.99
	}
	if cfg.Notification.MaxVisible == 0 {
		cfg.Notification.MaxVisible = 5
	}
	if cfg.Notification.Duration == 0 {
		cfg.Notification.Duration = 4 * time.Second
	}
	if cfg.Checkout.ProcessingDelay == 0 {
		cfg.Checkout.ProcessingDelay = 2 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Storage.Backend != "memory" && c.Storage.Backend != "sqlite" {
		return fmt.Errorf("storage.backend must be \"memory\" or \"sqlite\", got %q", c.Storage.Backend)
	}
	if c.Storage.MaxBytes < 0 {
		return fmt.Errorf("storage.max_bytes cannot be negative")
	}
	if c.Cart.MaxItems <= 0 {
		return fmt.Errorf("cart.max_items must be positive")
	}
	if c.Cart.EvictionBatchSize <= 0 {
		return fmt.Errorf("cart.eviction_batch_size must be positive")
	}
	if c.Pricing.TaxRatePercent < 0 {
		return fmt.Errorf("pricing.tax_rate_percent cannot be negative")
	}
	if c.Pricing.FreeShippingThreshold < 0 {
		return fmt.Errorf("pricing.free_shipping_threshold cannot be negative")
	}
	if c.Pricing.FlatShippingFee < 0 {
		return fmt.Errorf("pricing.flat_shipping_fee cannot be negative")
	}
	if c.Notification.MaxVisible <= 0 {
		return fmt.Errorf("notification.max_visible must be positive")
	}
	return nil
}
