package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingSetting is returned when a required environment variable is not
// set for the requested operation.
var ErrMissingSetting = errors.New("missing required setting")

// Config holds all application configuration.
// It organizes settings into logical groups and is immutable after Load.
type Config struct {
	LLM    LLMConfig    `mapstructure:",squash"`
	Sheets SheetsConfig `mapstructure:",squash"`
	Log    LogConfig    `mapstructure:",squash"`
}

// LLMConfig contains all Gemini integration related settings.
type LLMConfig struct {
	// GeminiAPIKey authenticates against the Gemini API. Only required when
	// the run actually calls the API; RequireAPIKey enforces that.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	// ModelName is the Gemini model used for generation.
	ModelName string `mapstructure:"gemini_model" validate:"required"`

	// MaxTokens caps the output length of a single generation call.
	MaxTokens int `mapstructure:"gemini_max_tokens" validate:"gt=0"`

	// Temperature controls response randomness; 0 is deterministic, 1 is most random.
	Temperature float64 `mapstructure:"gemini_temperature" validate:"gte=0,lte=1"`

	// BatchSize is the number of terms grouped into one generation call.
	BatchSize int `mapstructure:"gemini_batch_size" validate:"gt=0"`

	// MaxRetries bounds retry attempts for transient API failures.
	MaxRetries int `mapstructure:"gemini_max_retries" validate:"gte=0"`

	// RetryDelaySeconds is the base delay for exponential backoff between retries.
	RetryDelaySeconds int `mapstructure:"gemini_retry_delay_seconds" validate:"gte=0"`

	// TimeoutSeconds bounds a single attempt against the API.
	TimeoutSeconds int `mapstructure:"gemini_timeout_seconds" validate:"gt=0"`
}

// Timeout returns the per-attempt deadline as a time.Duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SheetsConfig contains Google Sheets credential settings.
type SheetsConfig struct {
	// CredentialsPath points at the OAuth client credentials JSON file.
	CredentialsPath string `mapstructure:"google_sheets_credentials_path"`

	// TokenPath is where the cached user token is read from and written to.
	TokenPath string `mapstructure:"google_sheets_token_path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// RequireAPIKey returns an error unless a Gemini API key is configured.
// Called by code paths that are about to make generation calls, so that
// key-less runs of --info against a local CSV still work.
func (c *Config) RequireAPIKey() error {
	if c.LLM.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY must be set to call the Gemini API", ErrMissingSetting)
	}
	return nil
}

// RequireSheetsCredentials returns an error unless Google Sheets credentials
// are configured. Called before any Sheets access is attempted.
func (c *Config) RequireSheetsCredentials() error {
	if c.Sheets.CredentialsPath == "" {
		return fmt.Errorf(
			"%w: GOOGLE_SHEETS_CREDENTIALS_PATH must be set to read from Google Sheets",
			ErrMissingSetting,
		)
	}
	return nil
}
