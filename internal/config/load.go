package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied when the corresponding environment variable is unset.
const (
	DefaultModelName         = "gemini-2.0-flash-exp"
	DefaultMaxTokens         = 4096
	DefaultTemperature       = 0.3
	DefaultBatchSize         = 5
	DefaultMaxRetries        = 2
	DefaultRetryDelaySeconds = 2
	DefaultTimeoutSeconds    = 60
	DefaultTokenPath         = "token.json"
	DefaultLogLevel          = "info"
)

// Load reads configuration from environment variables, optionally seeded from
// a dotenv-style file. Environment variables take precedence over file
// values. Returns a populated Config or an error if loading or validation
// fails.
//
// envFile may be empty; ".env" in the working directory is then used when it
// exists, matching the conventional dotenv layout.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("gemini_model", DefaultModelName)
	v.SetDefault("gemini_max_tokens", DefaultMaxTokens)
	v.SetDefault("gemini_temperature", DefaultTemperature)
	v.SetDefault("gemini_batch_size", DefaultBatchSize)
	v.SetDefault("gemini_max_retries", DefaultMaxRetries)
	v.SetDefault("gemini_retry_delay_seconds", DefaultRetryDelaySeconds)
	v.SetDefault("gemini_timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("google_sheets_token_path", DefaultTokenPath)
	v.SetDefault("log_level", DefaultLogLevel)

	if err := readEnvFile(v, envFile); err != nil {
		return nil, err
	}

	// Real environment variables override file values.
	v.AutomaticEnv()
	for _, key := range []string{
		"gemini_api_key",
		"gemini_model",
		"gemini_max_tokens",
		"gemini_temperature",
		"gemini_batch_size",
		"gemini_max_retries",
		"gemini_retry_delay_seconds",
		"gemini_timeout_seconds",
		"google_sheets_credentials_path",
		"google_sheets_token_path",
		"log_level",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readEnvFile loads a dotenv-style file into the viper instance. A missing
// explicit file is an error; a missing default ".env" is not.
func readEnvFile(v *viper.Viper, envFile string) error {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}

	if _, err := os.Stat(envFile); err != nil {
		if explicit {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
		return nil
	}

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}
	return nil
}

// validate checks field-level constraints on the loaded configuration and
// rewrites validator errors into messages naming the offending environment
// variable.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s (rule: %s)", envVarForField(fe.StructField()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}

// envVarForField maps a config struct field back to the environment variable
// a user would need to fix.
func envVarForField(field string) string {
	switch field {
	case "GeminiAPIKey":
		return "GEMINI_API_KEY"
	case "ModelName":
		return "GEMINI_MODEL"
	case "MaxTokens":
		return "GEMINI_MAX_TOKENS"
	case "Temperature":
		return "GEMINI_TEMPERATURE"
	case "BatchSize":
		return "GEMINI_BATCH_SIZE"
	case "MaxRetries":
		return "GEMINI_MAX_RETRIES"
	case "RetryDelaySeconds":
		return "GEMINI_RETRY_DELAY_SECONDS"
	case "TimeoutSeconds":
		return "GEMINI_TIMEOUT_SECONDS"
	case "CredentialsPath":
		return "GOOGLE_SHEETS_CREDENTIALS_PATH"
	case "TokenPath":
		return "GOOGLE_SHEETS_TOKEN_PATH"
	case "Level":
		return "LOG_LEVEL"
	default:
		return field
	}
}
