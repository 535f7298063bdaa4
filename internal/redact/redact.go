// Package redact scrubs credentials from strings before they reach logs.
// Error messages from the Gemini API can echo the API key back as a query
// parameter, and the Sheets OAuth flow handles bearer tokens; neither
// belongs in log output.
package redact

import "regexp"

// Placeholders substituted for matched credential material.
const (
	KeyPlaceholder   = "[REDACTED_KEY]"
	TokenPlaceholder = "[REDACTED_TOKEN]"
)

var (
	// API key passed as a URL query parameter, e.g. ?key=AIza....
	queryKeyRegex = regexp.MustCompile(`(?i)([?&]key=)[A-Za-z0-9_\-]{8,}`)

	// Key-value style credentials in error text or config dumps.
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|secret|token)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// OAuth bearer tokens in headers echoed into errors.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]{8,}`)
)

// String redacts credential material from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := queryKeyRegex.ReplaceAllString(input, "${1}"+KeyPlaceholder)
	result = apiKeyRegex.ReplaceAllString(result, "${1}${2}"+KeyPlaceholder)
	result = bearerRegex.ReplaceAllString(result, TokenPlaceholder)
	return result
}

// Error redacts credential material from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
