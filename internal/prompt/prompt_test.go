package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen/internal/prompt"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, name := range prompt.AvailableTypes() {
		pt, err := prompt.ParseType(name)
		require.NoError(t, err, "ParseType should accept %q", name)
		assert.Equal(t, prompt.Type(name), pt)
	}

	_, err := prompt.ParseType("poetry")
	require.Error(t, err, "ParseType should reject unknown types")
	assert.ErrorIs(t, err, prompt.ErrUnknownType)
	// The error lists the valid choices so the CLI message stays useful
	assert.Contains(t, err.Error(), "general")
	assert.Contains(t, err.Error(), "algorithm")
	assert.Contains(t, err.Error(), "leetcode")
}

func TestSingleIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := prompt.Single(prompt.TypeGeneral, "Binary Search")
	require.NoError(t, err)
	second, err := prompt.Single(prompt.TypeGeneral, "Binary Search")
	require.NoError(t, err)
	assert.Equal(t, first, second, "the same inputs must produce the same prompt")
}

func TestSinglePerTypeMarkers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pt     prompt.Type
		marker string
	}{
		{prompt.TypeGeneral, "Term: Binary Search"},
		{prompt.TypeAlgorithm, "Algorithm/Concept: Binary Search"},
		{prompt.TypeLeetcode, "Problem: Binary Search"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.pt), func(t *testing.T) {
			t.Parallel()
			p, err := prompt.Single(tc.pt, "Binary Search")
			require.NoError(t, err)
			assert.Contains(t, p, tc.marker)
			// Response-format contract with the single-term parser
			assert.Contains(t, p, "Keyword:")
			assert.Contains(t, p, "Definition:")
			// CSV-safety instructions are always present
			assert.Contains(t, p, "Avoid commas")
		})
	}

	_, err := prompt.Single(prompt.Type("poetry"), "Binary Search")
	assert.ErrorIs(t, err, prompt.ErrUnknownType)
}

func TestBatchListsEveryTerm(t *testing.T) {
	t.Parallel()

	terms := []string{"Binary Search", "Hash Table", "Dijkstra"}
	p, err := prompt.Batch(prompt.TypeAlgorithm, terms)
	require.NoError(t, err)

	for _, term := range terms {
		assert.Contains(t, p, "- "+term, "batch prompt must list every term")
	}

	// Response-format contract with the batch parser
	assert.Contains(t, p, `"keyword"`)
	assert.Contains(t, p, `"definition"`)
	assert.Contains(t, p, "JSON array")
	assert.Contains(t, p, "Avoid commas")

	_, err = prompt.Batch(prompt.Type("poetry"), terms)
	assert.ErrorIs(t, err, prompt.ErrUnknownType)
}

func TestKeywordGeneration(t *testing.T) {
	t.Parallel()

	p := prompt.KeywordGeneration("find two numbers that add to a target")
	assert.Contains(t, p, "find two numbers that add to a target")
	assert.Contains(t, p, "2-5 words max")
	assert.Contains(t, p, "just the keyword/title, nothing else")
}

func TestBatchKeywordGeneration(t *testing.T) {
	t.Parallel()

	descs := []string{"reverse a linked list", "merge sorted arrays"}
	p := prompt.BatchKeywordGeneration(descs)

	for _, d := range descs {
		assert.Contains(t, p, "- "+d)
	}
	assert.Contains(t, p, `"description"`)
	assert.Contains(t, p, `"keyword"`)
}

func TestBatchWithDescriptions(t *testing.T) {
	t.Parallel()

	pairs := []prompt.TermContext{
		{Keyword: "Two Sum", Description: "find two numbers that add to a target"},
		{Keyword: "Reverse List", Description: "reverse a linked list"},
	}
	p := prompt.BatchWithDescriptions(pairs)

	for _, pair := range pairs {
		assert.Contains(t, p, "Problem: "+pair.Keyword)
		assert.Contains(t, p, "Original Description: "+pair.Description)
	}
	assert.Contains(t, p, "JSON array")

	// Pairs are listed in submission order
	first := strings.Index(p, "Two Sum")
	second := strings.Index(p, "Reverse List")
	assert.Less(t, first, second, "pairs must appear in submission order")
}

func TestSingleWithDescription(t *testing.T) {
	t.Parallel()

	p := prompt.SingleWithDescription(prompt.TermContext{
		Keyword:     "Two Sum",
		Description: "find two numbers that add to a target",
	})
	assert.Contains(t, p, `"Two Sum"`)
	assert.Contains(t, p, "find two numbers that add to a target")
	assert.Contains(t, p, "Keyword:")
	assert.Contains(t, p, "Definition:")
}
