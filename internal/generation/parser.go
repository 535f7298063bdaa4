package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizgen/quizgen/internal/domain"
)

// cardEntry mirrors one element of the JSON array the batch prompts ask the
// model to produce.
type cardEntry struct {
	Keyword    string `json:"keyword"`
	Definition string `json:"definition"`
}

// keywordEntry mirrors one element of the keyword-generation batch response.
type keywordEntry struct {
	Description string `json:"description"`
	Keyword     string `json:"keyword"`
}

// stripFences removes a surrounding markdown code fence from a model
// response. Models frequently wrap JSON in ```json fences despite
// instructions not to.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// parseBatchCards parses a batch response into exactly want cards, in
// response order. Any JSON error, count mismatch, or empty field fails the
// whole batch with ErrInvalidResponse so the caller can fall back to
// per-term generation.
func parseBatchCards(text string, want int) ([]domain.Card, error) {
	var entries []cardEntry
	if err := json.Unmarshal([]byte(stripFences(text)), &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON batch response: %v", ErrInvalidResponse, err)
	}

	if len(entries) != want {
		return nil, fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidResponse, want, len(entries))
	}

	cards := make([]domain.Card, 0, len(entries))
	for i, entry := range entries {
		card, err := domain.NewCard(entry.Keyword, entry.Definition)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidResponse, i, err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// parseBatchKeywords parses a keyword-generation batch response into exactly
// want keywords, in response order. Entries are matched back to input order
// by position; the description field is informational only.
func parseBatchKeywords(text string, want int) ([]string, error) {
	var entries []keywordEntry
	if err := json.Unmarshal([]byte(stripFences(text)), &entries); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON keyword response: %v", ErrInvalidResponse, err)
	}

	if len(entries) != want {
		return nil, fmt.Errorf("%w: expected %d keywords, got %d", ErrInvalidResponse, want, len(entries))
	}

	keywords := make([]string, 0, len(entries))
	for i, entry := range entries {
		keyword := strings.TrimSpace(entry.Keyword)
		if keyword == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty keyword", ErrInvalidResponse, i)
		}
		keywords = append(keywords, keyword)
	}

	return keywords, nil
}

// parseKeywordDefinition extracts the enhanced keyword and the definition
// from a single-term response in Keyword:/Definition: line format. Parsing
// is forgiving: a missing Keyword line falls back to the original term, and
// a missing Definition line falls back to the whole response, so a slightly
// off-format reply still yields a usable card.
func parseKeywordDefinition(text, fallbackKeyword string) (string, string) {
	text = strings.TrimSpace(text)
	keyword := fallbackKeyword
	definition := text

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "Keyword:"); ok {
			if v := strings.TrimSpace(after); v != "" {
				keyword = v
			}
		} else if after, ok := strings.CutPrefix(line, "Definition:"); ok {
			if v := strings.TrimSpace(after); v != "" {
				definition = v
			}
			break
		}
	}

	return keyword, definition
}
