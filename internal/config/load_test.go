package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvVars lists every environment variable Load reads, so tests can
// start from a clean slate.
var configEnvVars = []string{
	"GEMINI_API_KEY",
	"GEMINI_MODEL",
	"GEMINI_MAX_TOKENS",
	"GEMINI_TEMPERATURE",
	"GEMINI_BATCH_SIZE",
	"GEMINI_MAX_RETRIES",
	"GEMINI_RETRY_DELAY_SECONDS",
	"GEMINI_TIMEOUT_SECONDS",
	"GOOGLE_SHEETS_CREDENTIALS_PATH",
	"GOOGLE_SHEETS_TOKEN_PATH",
	"LOG_LEVEL",
}

// setupEnv clears all config environment variables and applies the given
// overrides, restoring the previous state via t.Cleanup.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	for _, name := range configEnvVars {
		original, had := os.LookupEnv(name)
		require.NoError(t, os.Unsetenv(name), "Failed to unset %s", name)
		if had {
			name, original := name, original
			t.Cleanup(func() { _ = os.Setenv(name, original) })
		}
	}

	for name, value := range envVars {
		require.NoError(t, os.Setenv(name, value), "Failed to set environment variable %s", name)
		name := name
		t.Cleanup(func() { _ = os.Unsetenv(name) })
	}
}

// TestLoadDefaults verifies that Load applies the documented defaults when no
// environment variables are set.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := Load("")

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, DefaultModelName, cfg.LLM.ModelName, "Default model name mismatch")
	assert.Equal(t, DefaultMaxTokens, cfg.LLM.MaxTokens, "Default max tokens should be 4096")
	assert.InDelta(t, DefaultTemperature, cfg.LLM.Temperature, 1e-9, "Default temperature should be 0.3")
	assert.Equal(t, DefaultBatchSize, cfg.LLM.BatchSize, "Default batch size should be 5")
	assert.Equal(t, DefaultTokenPath, cfg.Sheets.TokenPath, "Default token path should be token.json")
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level, "Default log level should be 'info'")
	assert.Empty(t, cfg.LLM.GeminiAPIKey, "API key should be empty when unset")
}

// TestLoadFromEnv verifies that Load reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_API_KEY":     "test-api-key",
		"GEMINI_MODEL":       "gemini-2.5-pro",
		"GEMINI_MAX_TOKENS":  "2048",
		"GEMINI_TEMPERATURE": "0.7",
		"GEMINI_BATCH_SIZE":  "10",
		"LOG_LEVEL":          "debug",
	})

	cfg, err := Load("")

	require.NoError(t, err, "Load() should not return an error with valid environment variables")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.ModelName)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 10, cfg.LLM.BatchSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestLoadFromEnvFile verifies that a dotenv-style file seeds values and that
// real environment variables still take precedence.
func TestLoadFromEnvFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_BATCH_SIZE": "3",
	})

	envFile := filepath.Join(t.TempDir(), "custom.env")
	content := "GEMINI_API_KEY=file-key\nGEMINI_BATCH_SIZE=7\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)

	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.LLM.GeminiAPIKey, "File values should be used when env is unset")
	assert.Equal(t, 3, cfg.LLM.BatchSize, "Environment variables should override file values")
}

// TestLoadMissingEnvFile verifies that an explicitly named env file must
// exist, while the implicit .env default may be absent.
func TestLoadMissingEnvFile(t *testing.T) {
	setupEnv(t, nil)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.Error(t, err, "An explicit env file that does not exist should fail Load")
}

// TestLoadValidationErrors verifies field-level validation of loaded values.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name           string
		envVars        map[string]string
		errorSubstring string
	}{
		{
			name:           "Temperature above range",
			envVars:        map[string]string{"GEMINI_TEMPERATURE": "1.5"},
			errorSubstring: "GEMINI_TEMPERATURE",
		},
		{
			name:           "Negative temperature",
			envVars:        map[string]string{"GEMINI_TEMPERATURE": "-0.1"},
			errorSubstring: "GEMINI_TEMPERATURE",
		},
		{
			name:           "Zero batch size",
			envVars:        map[string]string{"GEMINI_BATCH_SIZE": "0"},
			errorSubstring: "GEMINI_BATCH_SIZE",
		},
		{
			name:           "Zero max tokens",
			envVars:        map[string]string{"GEMINI_MAX_TOKENS": "0"},
			errorSubstring: "GEMINI_MAX_TOKENS",
		},
		{
			name:           "Unknown log level",
			envVars:        map[string]string{"LOG_LEVEL": "verbose"},
			errorSubstring: "LOG_LEVEL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			_, err := Load("")

			require.Error(t, err, "Load() should reject invalid configuration")
			assert.Contains(t, err.Error(), tc.errorSubstring,
				"Error should name the offending environment variable")
		})
	}
}

// TestRequireAPIKey verifies the operation-scoped required-setting checks.
func TestRequireAPIKey(t *testing.T) {
	setupEnv(t, nil)

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.RequireAPIKey()
	require.Error(t, err, "RequireAPIKey should fail without GEMINI_API_KEY")
	assert.ErrorIs(t, err, ErrMissingSetting)

	err = cfg.RequireSheetsCredentials()
	require.Error(t, err, "RequireSheetsCredentials should fail without credentials path")
	assert.ErrorIs(t, err, ErrMissingSetting)

	cfg.LLM.GeminiAPIKey = "key"
	cfg.Sheets.CredentialsPath = "credentials.json"
	assert.NoError(t, cfg.RequireAPIKey())
	assert.NoError(t, cfg.RequireSheetsCredentials())
}
