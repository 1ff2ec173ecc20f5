package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Tokenizer strategies accepted by summary.tokenizer.
const (
	TokenizerTiktoken = "tiktoken"
	TokenizerWords    = "words"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Summary SummaryConfig `yaml:"summary"`
	Fetch   FetchConfig   `yaml:"fetch"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"        env:"HTTP_ADDRESS"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"    env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"   env:"HTTP_WRITE_TIMEOUT"`
	AllowedOrigins []string        `yaml:"allowedOrigins" env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"           env:"HTTP_RATE_LIMIT_ENABLED"`
	RequestsPerMinute int  `yaml:"requestsPerMinute" env:"HTTP_RATE_LIMIT_RPM"`
	Burst             int  `yaml:"burst"             env:"HTTP_RATE_LIMIT_BURST"`
}

// LLMConfig contains OpenAI settings.
type LLMConfig struct {
	APIKey             string `yaml:"apiKey"             env:"OPENAI_API_KEY"`
	BaseURL            string `yaml:"baseUrl"            env:"OPENAI_BASE_URL"`
	Model              string `yaml:"model"              env:"OPENAI_API_MODEL"`
	AllowModelOverride bool   `yaml:"allowModelOverride" env:"OPENAI_ALLOW_MODEL_OVERRIDE"`
}

// SummaryConfig holds the token budgeting policy.
type SummaryConfig struct {
	TokenCoefficient float64           `yaml:"tokenCoefficient" env:"OPENAI_TOKEN_COEFFICIENT"`
	MaxTokenCount    int               `yaml:"maxTokenCount"    env:"OPENAI_MAX_TOKEN_COUNT"`
	MinTokenCount    StyleTokenCounts  `yaml:"minTokenCount"`
	Temperature      StyleTemperatures `yaml:"temperature"`
	Tokenizer        string            `yaml:"tokenizer"        env:"SUMMARY_TOKENIZER"`
	Encoding         string            `yaml:"encoding"         env:"SUMMARY_TOKEN_ENCODING"`
}

// StyleTokenCounts holds one minimum token count per summary style.
type StyleTokenCounts struct {
	Concise      int `yaml:"concise"      env:"OPENAI_CONCISE_MIN_TOKEN_COUNT"`
	BulletPoints int `yaml:"bulletPoints" env:"OPENAI_BULLET_MIN_TOKEN_COUNT"`
	Detailed     int `yaml:"detailed"     env:"OPENAI_DETAILED_MIN_TOKEN_COUNT"`
}

// StyleTemperatures holds one sampling temperature per summary style.
type StyleTemperatures struct {
	Concise      float64 `yaml:"concise"      env:"OPENAI_CONCISE_TEMPERATURE"`
	BulletPoints float64 `yaml:"bulletPoints" env:"OPENAI_BULLET_TEMPERATURE"`
	Detailed     float64 `yaml:"detailed"     env:"OPENAI_DETAILED_TEMPERATURE"`
}

// FetchConfig controls how target pages are retrieved.
type FetchConfig struct {
	UserAgent    string `yaml:"userAgent"    env:"FETCH_USER_AGENT"`
	MaxBodyBytes int64  `yaml:"maxBodyBytes" env:"FETCH_MAX_BODY_BYTES"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		LLM: LLMConfig{
			Model: "chatgpt-4o-latest",
		},
		Summary: SummaryConfig{
			TokenCoefficient: 1.33,
			MaxTokenCount:    3000,
			MinTokenCount: StyleTokenCounts{
				Concise:      150,
				BulletPoints: 250,
				Detailed:     300,
			},
			Temperature: StyleTemperatures{
				Concise:      0.3,
				BulletPoints: 0.4,
				Detailed:     0.5,
			},
			Tokenizer: TokenizerTiktoken,
			Encoding:  "cl100k_base",
		},
		Fetch: FetchConfig{
			MaxBodyBytes: 5 << 20,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm.apiKey cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	switch c.Summary.Tokenizer {
	case TokenizerTiktoken, TokenizerWords:
	default:
		return fmt.Errorf("summary.tokenizer must be %q or %q", TokenizerTiktoken, TokenizerWords)
	}
	if c.Fetch.MaxBodyBytes < 0 {
		return errors.New("fetch.maxBodyBytes cannot be negative")
	}
	return nil
}
