package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a prompt type is not one of the supported
// templates.
var ErrUnknownType = errors.New("unknown prompt type")

// Type selects one of the fixed prompt templates controlling the style of
// generated definitions.
type Type string

const (
	// TypeGeneral produces concise dictionary-style definitions.
	TypeGeneral Type = "general"

	// TypeAlgorithm produces study guides for algorithms and data structures.
	TypeAlgorithm Type = "algorithm"

	// TypeLeetcode produces study guides for coding interview problems.
	TypeLeetcode Type = "leetcode"
)

// AvailableTypes lists the supported prompt type names, in display order.
func AvailableTypes() []string {
	return []string{string(TypeGeneral), string(TypeAlgorithm), string(TypeLeetcode)}
}

// ParseType validates a prompt type name from user input.
// Returns ErrUnknownType with the available names if it does not match.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeGeneral, TypeAlgorithm, TypeLeetcode:
		return Type(s), nil
	default:
		return "", fmt.Errorf("%w: %q (available types: %s)",
			ErrUnknownType, s, strings.Join(AvailableTypes(), ", "))
	}
}

// TermContext pairs a generated keyword with the original description it was
// derived from. Used by the keyword-generation pipeline so definitions are
// grounded in the source text rather than the short keyword alone.
type TermContext struct {
	Keyword     string
	Description string
}
