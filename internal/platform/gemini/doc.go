// Package gemini implements the generation.TextGenerator interface using
// Google's Gemini API. It wraps each call with a per-attempt timeout and
// bounded retry with exponential backoff and jitter; transient API failures
// are retried, malformed or safety-blocked responses are not.
package gemini
