// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.concierge/config.yaml or ./config.yaml)
//  3. Default values
//
// Security: the OpenRouter API key is never logged; it is masked in
// MarshalJSON/String and excluded from the Public() debug map.
//
// Error handling: sentinel errors for Go-idiomatic checks with errors.Is(),
// wrapped with context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the OpenRouter API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidBaseURL indicates the OpenRouter base URL is invalid.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidTemperature indicates the temperature value is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidMaxTurns indicates the agent turn limit is out of range.
	ErrInvalidMaxTurns = errors.New("invalid max turns")

	// ErrInvalidTimeout indicates the request timeout is out of range.
	ErrInvalidTimeout = errors.New("invalid request timeout")

	// ErrInvalidPort indicates the listen port is out of range.
	ErrInvalidPort = errors.New("invalid port")

	// ErrInvalidQuestionLength indicates the question length cap is invalid.
	ErrInvalidQuestionLength = errors.New("invalid max question length")
)

// Validation bounds shared with the HTTP boundary.
const (
	// MinTemperature and MaxTemperature bound the sampling temperature
	// accepted both in config and per-request overrides.
	MinTemperature = 0.0
	MaxTemperature = 2.0

	// MinMaxTokens and MaxMaxTokens bound the completion token limit.
	MinMaxTokens = 1
	MaxMaxTokens = 8000
)

// Config stores application configuration.
// SECURITY: sensitive fields are explicitly masked in MarshalJSON().
// When adding a new secret field, update MarshalJSON and Public().
type Config struct {
	// OpenRouter connection
	OpenRouterAPIKey  string `mapstructure:"openrouter_api_key" json:"openrouter_api_key"` // SENSITIVE: masked in MarshalJSON
	OpenRouterBaseURL string `mapstructure:"openrouter_base_url" json:"openrouter_base_url"`

	// Model configuration
	ModelName   string  `mapstructure:"model_name" json:"model_name"`
	Temperature float64 `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens" json:"max_tokens"`
	MaxTurns    int     `mapstructure:"max_turns" json:"max_turns"`

	// Request handling
	RequestTimeout    int `mapstructure:"request_timeout" json:"request_timeout"` // seconds
	MaxQuestionLength int `mapstructure:"max_question_length" json:"max_question_length"`

	// Server configuration
	Host  string `mapstructure:"host" json:"host"`
	Port  int    `mapstructure:"port" json:"port"`
	Debug bool   `mapstructure:"debug" json:"debug"`

	// CORS configuration
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`

	// Rate limiting (per-IP token bucket burst; refill is 1 token/sec)
	RateBurst int `mapstructure:"rate_burst" json:"rate_burst"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	// Configuration directory: ~/.concierge/
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".concierge"))
	}
	v.AddConfigPath(".") // Also support current directory

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// OpenRouter defaults
	v.SetDefault("openrouter_base_url", "https://openrouter.ai/api/v1")

	// Model defaults
	v.SetDefault("model_name", "qwen/qwen3-235b-a22b-2507")
	v.SetDefault("temperature", 0.7)
	v.SetDefault("max_tokens", 2048)
	v.SetDefault("max_turns", 5)

	// Request defaults
	v.SetDefault("request_timeout", 30)
	v.SetDefault("max_question_length", 5000)

	// Server defaults
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8000)
	v.SetDefault("debug", false)

	// CORS defaults (local frontend dev servers)
	v.SetDefault("cors_origins", []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:3001",
	})

	// Rate limiting defaults
	v.SetDefault("rate_burst", 60)

	// Logging defaults
	v.SetDefault("log_level", "info")
}

// bindEnvVariables binds environment variables explicitly.
// Explicit bindings keep the env surface auditable — no AutomaticEnv.
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't
	// fail; a panic here is a bug in our code, not a runtime error).
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("openrouter_api_key", "OPENROUTER_API_KEY")
	mustBind("openrouter_base_url", "OPENROUTER_BASE_URL")
	mustBind("model_name", "MODEL_NAME")
	mustBind("temperature", "MODEL_TEMPERATURE")
	mustBind("max_tokens", "MODEL_MAX_TOKENS")
	mustBind("max_turns", "MODEL_MAX_TURNS")
	mustBind("request_timeout", "REQUEST_TIMEOUT")
	mustBind("max_question_length", "MAX_QUESTION_LENGTH")
	mustBind("host", "HOST")
	mustBind("port", "PORT")
	mustBind("debug", "DEBUG")
	mustBind("cors_origins", "ALLOWED_ORIGINS")
	mustBind("rate_burst", "RATE_BURST")
	mustBind("log_level", "LOG_LEVEL")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Secrets of 8 characters or fewer are fully masked; longer secrets show
// the first and last 2 characters for debug utility.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit secret masking.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.OpenRouterAPIKey = maskSecret(a.OpenRouterAPIKey)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to prevent accidental printing of secrets.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}

// Public returns the non-secret configuration served by GET /api/config.
// The API key is deliberately absent, not masked — debug consumers have no
// use for its shape.
func (c *Config) Public() map[string]any {
	return map[string]any{
		"model":       c.ModelName,
		"temperature": c.Temperature,
		"max_tokens":  c.MaxTokens,
		"max_turns":   c.MaxTurns,
		"timeout":     c.RequestTimeout,
		"debug":       c.Debug,
	}
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeout returns the outbound model-call timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
