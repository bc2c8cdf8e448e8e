package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Matcher MatcherConfig `mapstructure:"matcher"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
}

// CatalogConfig holds recipe catalog configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"` // empty selects the embedded catalog
}

// MatcherConfig holds ingredient matching configuration
type MatcherConfig struct {
	Mode               string  `mapstructure:"mode"` // "batch" or "best"
	FuzzyThreshold     float64 `mapstructure:"fuzzy_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // how often expired entries are swept
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// Load loads configuration from environment variables and config files.
// A non-empty configFile replaces the default search path.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("chefood")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/chefood/")
	}

	// Environment variable settings
	v.SetEnvPrefix("CHEFOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
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
	// Catalog defaults
	v.SetDefault("catalog.path", "")

	// Matcher defaults
	v.SetDefault("matcher.mode", "batch")
	v.SetDefault("matcher.fuzzy_threshold", 0.8)
	v.SetDefault("matcher.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matcher.Mode != "batch" && config.Matcher.Mode != "best" {
		return fmt.Errorf("matcher mode must be 'batch' or 'best', got: %s", config.Matcher.Mode)
	}

	if config.Matcher.FuzzyThreshold <= 0 || config.Matcher.FuzzyThreshold > 1 {
		return fmt.Errorf("matcher fuzzy threshold must be in (0, 1], got: %v", config.Matcher.FuzzyThreshold)
	}

	if config.Log.Format != "json" && config.Log.Format != "console" {
		return fmt.Errorf("log format must be 'json' or 'console', got: %s", config.Log.Format)
	}

	if config.Cache.Enabled && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when the cache is enabled, got: %s", config.Cache.TTL)
	}

	if config.Cache.Enabled && config.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("cache cleanup interval must be positive when the cache is enabled, got: %s", config.Cache.CleanupInterval)
	}

	return nil
}
