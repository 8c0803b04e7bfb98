package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	Provider struct {
		Name           string `mapstructure:"name"` // "openai", "gemini", "falcon"
		OpenaiApiKey   string `mapstructure:"openai_api_key"`
		OpenaiModel    string `mapstructure:"openai_model"`
		GoogleApiKey   string `mapstructure:"google_api_key"`
		GeminiModel    string `mapstructure:"gemini_model"`
		FalconBaseURL  string `mapstructure:"falcon_base_url"`
		FalconApiKey   string `mapstructure:"falcon_api_key"`
		FalconModel    string `mapstructure:"falcon_model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"provider"`

	RateLimit struct {
		MaxRequests   int `mapstructure:"max_requests"`
		WindowSeconds int `mapstructure:"window_seconds"`
	} `mapstructure:"rate_limit"`

	Quota struct {
		MaxTokensPerDay   int `mapstructure:"max_tokens_per_day"`
		MaxRequestsPerDay int `mapstructure:"max_requests_per_day"`
	} `mapstructure:"quota"`

	Cache struct {
		TTLSeconds int `mapstructure:"ttl_seconds"`
	} `mapstructure:"cache"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	// Explicit bindings so the usual provider env vars work without a
	// config file.
	viper.BindEnv("provider.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("provider.google_api_key", "GEMINI_API_KEY")
	viper.BindEnv("provider.falcon_base_url", "FALCON_API_BASE_URL")
	viper.BindEnv("provider.falcon_api_key", "FALCON_API_KEY")
	viper.BindEnv("provider.name", "CONTENTAI_PROVIDER")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("provider.name", "openai")
	viper.SetDefault("provider.timeout_seconds", 60)
	viper.SetDefault("rate_limit.max_requests", 10)
	viper.SetDefault("rate_limit.window_seconds", 60)
	viper.SetDefault("quota.max_tokens_per_day", 100000)
	viper.SetDefault("quota.max_requests_per_day", 100)
	viper.SetDefault("cache.ttl_seconds", 3600)
	viper.SetDefault("worker.concurrency", 5)
	viper.SetDefault("worker.queues", map[string]int{"usage": 1})

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env vars carry the
		// whole configuration.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}
