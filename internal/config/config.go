package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageInMemory = "in-memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port            string
		ShutdownTimeout time.Duration
	}
	Storage struct {
		Type       string // "in-memory", "postgres" or "sqlite"
		DSN        string
		SQLitePath string
		LogSQL     bool
	}
	YouTube struct {
		APIKey  string
		BaseURL string
	}
	AssemblyAI struct {
		APIKey       string
		BaseURL      string
		LanguageCode string
		PollInterval time.Duration
	}
	LLM struct {
		APIKey      string
		BaseURL     string
		Model       string
		Temperature float64
		TopP        float64
		MaxTokens   int
	}
	HTTP struct {
		Timeout time.Duration
	}
	Analyze struct {
		RatePerMinute int // 0 disables the limit
		Burst         int
	}
}

// Load reads config.yaml from . or ./config if present, then applies
// IDEAS_* environment overrides (IDEAS_STORAGE_TYPE, IDEAS_LLM_API_KEY, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ideas")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no config file; defaults and env vars only
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("storage.type", StorageInMemory)
	v.SetDefault("storage.sqlite_path", "data/ideas.db")
	v.SetDefault("storage.log_sql", false)

	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")

	v.SetDefault("assemblyai.base_url", "https://api.assemblyai.com")
	v.SetDefault("assemblyai.language_code", "en")
	v.SetDefault("assemblyai.poll_interval", 3*time.Second)

	v.SetDefault("llm.base_url", "https://models.inference.ai.azure.com")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.temperature", 1.0)
	v.SetDefault("llm.top_p", 1.0)
	v.SetDefault("llm.max_tokens", 4000)

	v.SetDefault("http.timeout", 60*time.Second)

	v.SetDefault("analyze.rate_per_minute", 10)
	v.SetDefault("analyze.burst", 3)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Server.Port = v.GetString("server.port")
	cfg.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")

	cfg.Storage.Type = v.GetString("storage.type")
	cfg.Storage.DSN = v.GetString("storage.dsn")
	cfg.Storage.SQLitePath = v.GetString("storage.sqlite_path")
	cfg.Storage.LogSQL = v.GetBool("storage.log_sql")

	cfg.YouTube.APIKey = v.GetString("youtube.api_key")
	cfg.YouTube.BaseURL = v.GetString("youtube.base_url")

	cfg.AssemblyAI.APIKey = v.GetString("assemblyai.api_key")
	cfg.AssemblyAI.BaseURL = v.GetString("assemblyai.base_url")
	cfg.AssemblyAI.LanguageCode = v.GetString("assemblyai.language_code")
	cfg.AssemblyAI.PollInterval = v.GetDuration("assemblyai.poll_interval")

	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.TopP = v.GetFloat64("llm.top_p")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")

	cfg.HTTP.Timeout = v.GetDuration("http.timeout")

	cfg.Analyze.RatePerMinute = v.GetInt("analyze.rate_per_minute")
	cfg.Analyze.Burst = v.GetInt("analyze.burst")

	return cfg
}

// Validate checks the settings the chosen storage backend needs.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case StorageInMemory:
	case StoragePostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for postgres storage")
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for sqlite storage")
		}
	default:
		return fmt.Errorf("unknown storage.type %q (want %s, %s or %s)",
			c.Storage.Type, StorageInMemory, StoragePostgres, StorageSQLite)
	}
	return nil
}

// ValidateAnalysis checks the provider keys the /analyze pipeline needs.
// Idea CRUD works without them.
func (c *Config) ValidateAnalysis() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("youtube.api_key is required")
	}
	if c.AssemblyAI.APIKey == "" {
		return fmt.Errorf("assemblyai.api_key is required")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	return nil
}
