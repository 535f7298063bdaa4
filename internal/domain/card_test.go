package domain

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid card creation
	card, err := NewCard("Binary Search", "Halve the search space each step; O(log n) time.")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.Keyword != "Binary Search" {
		t.Errorf("Expected keyword %q, got %q", "Binary Search", card.Keyword)
	}

	if card.Definition == "" {
		t.Error("Expected non-empty definition")
	}

	// Test empty keyword
	_, err = NewCard("", "a definition")
	if err != ErrCardKeywordEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardKeywordEmpty, err)
	}

	// Test whitespace-only keyword
	_, err = NewCard("   ", "a definition")
	if err != ErrCardKeywordEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardKeywordEmpty, err)
	}

	// Test empty definition
	_, err = NewCard("Binary Search", "")
	if err != ErrCardDefinitionEmpty {
		t.Errorf("Expected error %v, got %v", ErrCardDefinitionEmpty, err)
	}
}

func TestNewErrorCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cause := errors.New("rate limited")
	card := NewErrorCard("Hash Table", cause)

	if card.Keyword != "Hash Table" {
		t.Errorf("Expected keyword preserved verbatim, got %q", card.Keyword)
	}

	if card.Definition != "Error generating definition: rate limited" {
		t.Errorf("Unexpected sentinel definition: %q", card.Definition)
	}

	// Nil cause still yields a usable marker
	card = NewErrorCard("Hash Table", nil)
	if card.Definition != "Error generating definition" {
		t.Errorf("Unexpected sentinel definition for nil cause: %q", card.Definition)
	}

	if err := card.Validate(); err != nil {
		t.Errorf("Sentinel card should validate, got %v", err)
	}
}

func TestSanitizeField(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"commas become semicolons", "a, b, c", "a; b; c"},
		{"newlines removed", "line one\nline two", "line one line two"},
		{"carriage returns removed", "line one\r\nline two", "line one line two"},
		{"whitespace collapsed", "too   many\t spaces", "too many spaces"},
		{"clean text unchanged", "already clean text", "already clean text"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := SanitizeField(tc.in)
			if got != tc.want {
				t.Errorf("SanitizeField(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCardSanitized(t *testing.T) {
	t.Parallel() // Enable parallel execution
	card := Card{
		Keyword:    "Two Sum, classic",
		Definition: "Use a hash map,\nstore complements",
	}

	clean := card.Sanitized()

	if clean.Keyword != "Two Sum; classic" {
		t.Errorf("Expected sanitized keyword, got %q", clean.Keyword)
	}

	if clean.Definition != "Use a hash map; store complements" {
		t.Errorf("Expected sanitized definition, got %q", clean.Definition)
	}

	// Original card is unchanged
	if card.Keyword != "Two Sum, classic" {
		t.Error("Sanitized must not mutate the receiver")
	}
}
