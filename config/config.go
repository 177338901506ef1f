package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Fetcher FetcherConfig
	Basket  BasketConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog storage configuration
type CatalogConfig struct {
	DataDir  string        `mapstructure:"data_dir"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// FetcherConfig holds stores API scraping configuration. Shops listed in
// WebstoreBaseURLs have no JSON listings API and are scraped from their
// storefront HTML instead.
type FetcherConfig struct {
	BaseURL          string            `mapstructure:"base_url"`
	WebstoreBaseURLs map[string]string `mapstructure:"webstore_base_urls"`
	PageCount        int               `mapstructure:"page_count"`
	PerPage          int               `mapstructure:"per_page"`
	BatchSize        int               `mapstructure:"batch_size"`
	BatchDelay       time.Duration     `mapstructure:"batch_delay"`
	RatePerSecond    float64           `mapstructure:"rate_per_second"`
	Burst            int               `mapstructure:"burst"`
}

// BasketConfig holds basket assembly configuration
type BasketConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/koshyk/")

	// Environment variable settings
	v.SetEnvPrefix("KOSHYK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.data_dir", "./data")
	v.SetDefault("catalog.cache_ttl", "15m")

	// Fetcher defaults
	v.SetDefault("fetcher.base_url", "https://stores-api.zakaz.ua/stores")
	v.SetDefault("fetcher.webstore_base_urls", map[string]string{})
	v.SetDefault("fetcher.page_count", 3)
	v.SetDefault("fetcher.per_page", 100)
	v.SetDefault("fetcher.batch_size", 15)
	v.SetDefault("fetcher.batch_delay", "2500ms")
	v.SetDefault("fetcher.rate_per_second", 5)
	v.SetDefault("fetcher.burst", 10)

	// Basket defaults
	v.SetDefault("basket.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.DataDir == "" {
		return fmt.Errorf("catalog data dir is required (set KOSHYK_CATALOG_DATA_DIR)")
	}

	if config.Fetcher.BaseURL == "" {
		return fmt.Errorf("fetcher base URL is required (set KOSHYK_FETCHER_BASE_URL)")
	}

	if config.Fetcher.PageCount < 1 {
		return fmt.Errorf("fetcher page count must be at least 1, got: %d", config.Fetcher.PageCount)
	}

	if config.Fetcher.PerPage < 1 || config.Fetcher.PerPage > 100 {
		return fmt.Errorf("fetcher per page must be between 1 and 100, got: %d", config.Fetcher.PerPage)
	}

	if config.Fetcher.BatchSize < 1 {
		return fmt.Errorf("fetcher batch size must be at least 1, got: %d", config.Fetcher.BatchSize)
	}

	return nil
}

// loadEnvFile loads a local .env file into the process environment without
// overriding variables that are already set. Missing file is not an error.
func loadEnvFile() error {
	file, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
	return scanner.Err()
}
