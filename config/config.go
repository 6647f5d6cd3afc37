package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Summarizer SummarizerConfig
	Cache      CacheConfig
	Recommend  RecommendConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// CatalogConfig holds the catalog data source configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// SummarizerConfig holds summarization backend configuration
type SummarizerConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	MaxInputChars int           `mapstructure:"max_input_chars"`
	ExcerptLength int           `mapstructure:"excerpt_length"`
}

// CacheConfig holds summary cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RecommendConfig holds recommendation engine configuration
type RecommendConfig struct {
	DefaultTopN        int  `mapstructure:"default_top_n"`
	MaxTopN            int  `mapstructure:"max_top_n"`
	SummaryWorkers     int  `mapstructure:"summary_workers"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/skinpro/")

	// Environment variable settings
	v.SetEnvPrefix("SKINPRO")
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
	v.SetDefault("server.request_timeout", "60s")

	// Catalog defaults
	v.SetDefault("catalog.path", "data/final_data_cleaned.csv")

	// Summarizer defaults
	v.SetDefault("summarizer.base_url", "https://api-inference.huggingface.co/models/sshleifer/distilbart-cnn-12-6")
	v.SetDefault("summarizer.timeout", "10s")
	v.SetDefault("summarizer.max_retries", 3)
	v.SetDefault("summarizer.retry_delay", "2s")
	v.SetDefault("summarizer.max_input_chars", 500)
	v.SetDefault("summarizer.excerpt_length", 200)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Recommendation defaults
	v.SetDefault("recommend.default_top_n", 20)
	v.SetDefault("recommend.max_top_n", 50)
	v.SetDefault("recommend.summary_workers", 4)
	v.SetDefault("recommend.enable_debug_logging", false)
}

// validate validates the configuration. The summarizer API key is
// deliberately optional: without one the engine falls back to review
// excerpts instead of refusing to start.
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set SKINPRO_CATALOG_PATH)")
	}

	if config.Summarizer.MaxRetries < 1 {
		return fmt.Errorf("summarizer max_retries must be at least 1, got: %d", config.Summarizer.MaxRetries)
	}

	if config.Recommend.MaxTopN < 1 {
		return fmt.Errorf("recommend max_top_n must be at least 1, got: %d", config.Recommend.MaxTopN)
	}

	if config.Recommend.DefaultTopN > config.Recommend.MaxTopN {
		return fmt.Errorf("recommend default_top_n (%d) cannot exceed max_top_n (%d)",
			config.Recommend.DefaultTopN, config.Recommend.MaxTopN)
	}

	return nil
}
