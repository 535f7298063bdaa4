package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardKeywordEmpty is returned when a card's keyword is empty.
	ErrCardKeywordEmpty = errors.New("card keyword cannot be empty")

	// ErrCardDefinitionEmpty is returned when a card's definition is empty.
	ErrCardDefinitionEmpty = errors.New("card definition cannot be empty")
)

// Card represents a single flashcard: a keyword (the front side shown to the
// student) and its generated definition (the back side). Both fields are
// plain text; Sanitized returns a copy safe for single-line CSV export.
type Card struct {
	Keyword    string `json:"keyword"`
	Definition string `json:"definition"`
}

// NewCard creates a new Card with the given keyword and definition.
// Returns an error if validation fails.
func NewCard(keyword, definition string) (Card, error) {
	card := Card{
		Keyword:    keyword,
		Definition: definition,
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// NewErrorCard creates a degraded Card for a term whose generation failed on
// both the batch and the per-item path. The keyword is preserved verbatim and
// the definition carries an explicit error marker, so a failed row never
// aborts the run.
func NewErrorCard(keyword string, cause error) Card {
	definition := "Error generating definition"
	if cause != nil {
		definition = fmt.Sprintf("Error generating definition: %s", cause)
	}
	return Card{
		Keyword:    keyword,
		Definition: definition,
	}
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Keyword) == "" {
		return ErrCardKeywordEmpty
	}

	if strings.TrimSpace(c.Definition) == "" {
		return ErrCardDefinitionEmpty
	}

	return nil
}

// Sanitized returns a copy of the card with both fields rewritten so each
// record occupies exactly one two-field line in the output CSV.
func (c Card) Sanitized() Card {
	return Card{
		Keyword:    SanitizeField(c.Keyword),
		Definition: SanitizeField(c.Definition),
	}
}

// SanitizeField rewrites text for delimiter-safe CSV export: commas become
// semicolons, CR/LF become spaces, and runs of whitespace collapse to a
// single space. The model is asked to avoid commas in the first place; this
// is the backstop for when it does not comply.
func SanitizeField(s string) string {
	s = strings.ReplaceAll(s, ",", ";")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}
