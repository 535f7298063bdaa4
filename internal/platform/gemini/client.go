package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/quizgen/quizgen/internal/config"
	"github.com/quizgen/quizgen/internal/generation"
	"github.com/quizgen/quizgen/internal/redact"
)

// Client implements the generation.TextGenerator interface using Google's
// Gemini API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// cfg contains LLM-specific configuration
	cfg config.LLMConfig

	// client is the Gemini API client for making requests
	client *genai.Client

	// sleep is swapped out in tests to avoid real backoff delays
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name, and other settings
//
// Returns:
//   - A properly initialized Client or an error if initialization fails
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", generation.ErrInvalidConfig)
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger,
		cfg:    cfg,
		client: client,
		sleep:  sleepContext,
	}, nil
}

// Generate sends one prompt to the Gemini API and returns the raw response
// text. Transient failures are retried up to MaxRetries times with
// exponential backoff and jitter; each attempt runs under its own timeout.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	maxRetries := c.cfg.MaxRetries
	if maxRetries < 0 {
		c.logger.WarnContext(ctx, "Invalid max retries value, using default", "max_retries", 2)
		maxRetries = 2
	}

	baseDelaySeconds := c.cfg.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.logger.DebugContext(ctx, "Making Gemini API call",
			"model", c.cfg.ModelName,
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		c.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", redact.Error(err))

		// Malformed and safety-blocked responses will not improve on retry.
		if !isTransient(err) {
			return "", err
		}

		if attempt == maxRetries {
			break
		}

		if err := c.sleep(ctx, backoffDelay(baseDelaySeconds, attempt)); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrTransientFailure, maxRetries+1, lastErr)
}

// generateOnce performs a single attempt under the configured timeout.
func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	callCtx := ctx
	if c.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
	}

	temperature := float32(c.cfg.Temperature)
	resp, err := c.client.Models.GenerateContent(callCtx, c.cfg.ModelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: int32(c.cfg.MaxTokens),
			Temperature:     &temperature,
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrInvalidResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	return text, nil
}

// TestConnection makes a minimal API call to verify that the configured key
// and model work. Used by the --test-api mode.
func (c *Client) TestConnection(ctx context.Context) error {
	callCtx := ctx
	if c.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout())
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(callCtx, c.cfg.ModelName,
		genai.Text("Say 'test' if you can hear me."),
		&genai.GenerateContentConfig{MaxOutputTokens: 10})
	if err != nil {
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if !strings.Contains(strings.ToLower(resp.Text()), "test") {
		return fmt.Errorf("%w: unexpected test reply", generation.ErrInvalidResponse)
	}

	return nil
}

// isTransient reports whether an attempt error is worth retrying.
func isTransient(err error) bool {
	return !errors.Is(err, generation.ErrInvalidResponse)
}

// backoffDelay computes the exponential backoff delay with jitter for the
// given attempt: base * 2^attempt * rand(0.5, 1.0).
func backoffDelay(baseDelaySeconds, attempt int) time.Duration {
	backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(backoff * jitter * float64(time.Second))
}

// sleepContext waits for the delay or context cancellation, whichever comes
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
