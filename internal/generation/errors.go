package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when flashcard generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate flashcards")

	// ErrInvalidResponse is returned when the model response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned for API failures (network, auth, rate limiting)
	// that may resolve on retry
	ErrTransientFailure = errors.New("transient error calling language model")

	// ErrInvalidConfig is returned when the orchestrator or generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
