package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	OFF       OFFConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	StaticDir      string   `mapstructure:"static_dir"`
}

// OFFConfig holds Open Food Facts API configuration
type OFFConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds client-side rate limits for the food database.
// Open Food Facts asks for at most 100 product reads and 10 searches per minute.
type RateLimitConfig struct {
	ProductPerMinute int `mapstructure:"product_per_minute"`
	SearchPerMinute  int `mapstructure:"search_per_minute"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/proteinscan/")

	// Environment variable settings
	v.SetEnvPrefix("PROTEINSCAN")
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
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.static_dir", "./web")

	// Open Food Facts defaults
	v.SetDefault("off.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("off.user_agent", "ProteinScan/1.0 (proteinscan.app)")
	v.SetDefault("off.timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults, per Open Food Facts usage guidance
	v.SetDefault("ratelimit.product_per_minute", 100)
	v.SetDefault("ratelimit.search_per_minute", 10)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.OFF.BaseURL == "" {
		return fmt.Errorf("Open Food Facts base URL is required (set PROTEINSCAN_OFF_BASE_URL)")
	}

	if config.OFF.UserAgent == "" {
		return fmt.Errorf("Open Food Facts requires an identifying User-Agent (set PROTEINSCAN_OFF_USER_AGENT)")
	}

	if config.OFF.Timeout <= 0 {
		return fmt.Errorf("OFF timeout must be positive, got: %s", config.OFF.Timeout)
	}

	if config.RateLimit.ProductPerMinute <= 0 || config.RateLimit.SearchPerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}
