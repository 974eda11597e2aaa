package config

import (
	"fmt"
	"strings"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
// A missing API key is fatal: the process must refuse to start rather than
// run in a broken state.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if strings.TrimSpace(c.OpenRouterAPIKey) == "" {
		return fmt.Errorf("%w: OPENROUTER_API_KEY environment variable is not set", ErrMissingAPIKey)
	}

	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	if !strings.HasPrefix(c.OpenRouterBaseURL, "http://") && !strings.HasPrefix(c.OpenRouterBaseURL, "https://") {
		return fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidBaseURL, c.OpenRouterBaseURL)
	}

	if c.Temperature < MinTemperature || c.Temperature > MaxTemperature {
		return fmt.Errorf("%w: must be between %.1f and %.1f, got %.2f",
			ErrInvalidTemperature, MinTemperature, MaxTemperature, c.Temperature)
	}

	if c.MaxTokens < MinMaxTokens || c.MaxTokens > MaxMaxTokens {
		return fmt.Errorf("%w: must be between %d and %d, got %d",
			ErrInvalidMaxTokens, MinMaxTokens, MaxMaxTokens, c.MaxTokens)
	}

	if c.MaxTurns < 1 || c.MaxTurns > 25 {
		return fmt.Errorf("%w: must be between 1 and 25, got %d", ErrInvalidMaxTurns, c.MaxTurns)
	}

	if c.RequestTimeout < 1 || c.RequestTimeout > 600 {
		return fmt.Errorf("%w: must be between 1 and 600 seconds, got %d", ErrInvalidTimeout, c.RequestTimeout)
	}

	if c.MaxQuestionLength < 1 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidQuestionLength, c.MaxQuestionLength)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: must be between 1 and 65535, got %d", ErrInvalidPort, c.Port)
	}

	return nil
}
