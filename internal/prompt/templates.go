package prompt

import (
	"fmt"
	"strings"
)

// csvSafety is appended to every template so the model output survives
// two-column CSV export without quoting.
const csvSafety = `IMPORTANT: This will be exported to a CSV file, so:
- Avoid commas or the CSV will break
- Use semicolons (;) or dashes (-) instead of commas
- Keep all text on a single line (no line breaks)
- Use simple punctuation only`

// batchFormat instructs the model to answer with a machine-parsable JSON
// array, one object per submitted term, in submission order.
const batchFormat = `Please respond with a valid JSON array containing objects with "keyword" and "definition" fields, one object per term, in the same order the terms were listed.

Format your response as:
[
  {"keyword": "term1 - brief description of what it is", "definition": "detailed definition here"},
  {"keyword": "term2 - brief description of what it is", "definition": "detailed definition here"}
]`

// Single returns a one-term prompt for the given type. The model is asked to
// reply with a Keyword: line followed by a Definition: line.
func Single(pt Type, term string) (string, error) {
	switch pt {
	case TypeGeneral:
		return fmt.Sprintf(`Create a concise definition for the term %q for a quiz flashcard.

Your response should be in this format:
Keyword: [original term] - [brief 3-5 word description]
Definition: [detailed explanation]

The definition should be:
- Clear and accurate
- 1-2 sentences maximum
- Perfect for quick study and review

The keyword enhancement should briefly describe what the term is (3-5 words max).

%s

Term: %s

Keyword:
Definition:`, term, csvSafety, term), nil

	case TypeAlgorithm:
		return fmt.Sprintf(`Create a study guide explanation for the algorithm or data structure %q for a quiz flashcard.

Your response should be in this format:
Keyword: [original term] - [brief description of what it does]
Definition: [detailed explanation]

Include in the definition:
1. Brief definition
2. Key approach or steps (2-3 main points)
3. Time/space complexity if relevant
4. Primary use case

The keyword enhancement should briefly describe what the algorithm does (4-6 words max).

%s

Algorithm/Concept: %s

Keyword:
Definition:`, term, csvSafety, term), nil

	case TypeLeetcode:
		return fmt.Sprintf(`Create a concise study guide for the algorithm problem %q for a quiz flashcard.

Your response should be in this format:
Keyword: [original problem given] - [brief description of what the problem asks]
Definition: [detailed study guide]

Include in the definition:
1. Problem category/type
2. Key solution approach (2-3 steps max)
3. Time/space complexity
4. Important edge cases

The keyword enhancement should briefly describe what the problem asks you to do (5-8 words max).

%s

Problem: %s

Keyword:
Definition:`, term, csvSafety, term), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, pt)
	}
}

// Batch returns a combined prompt covering every term, expecting one JSON
// object per term in submission order.
func Batch(pt Type, terms []string) (string, error) {
	var description, context string
	switch pt {
	case TypeGeneral:
		description = "concise definitions for quiz flashcards"
		context = "These are for quick study and quiz review."
	case TypeAlgorithm:
		description = "algorithm and data structure explanations for coding interview flashcards"
		context = "These are for coding interview preparation and algorithm review."
	case TypeLeetcode:
		description = "coding interview problem study guides for flashcards"
		context = "These are for coding interview preparation and problem pattern review."
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, pt)
	}

	var list strings.Builder
	for _, term := range terms {
		fmt.Fprintf(&list, "- %s\n", term)
	}

	return fmt.Sprintf(`Create %s. %s

Terms to define:
%s
Each definition should be:
- Concise and focused (1-2 sentences for general terms; 3-4 for algorithms and problems)
- Perfect for quiz/flashcard study
- Clear and memorable

Use the original term as the first part of each keyword.

%s

%s`, description, context, list.String(), csvSafety, batchFormat), nil
}

// KeywordGeneration returns a prompt that turns a free-form problem
// description into a short flashcard-friendly keyword.
func KeywordGeneration(description string) string {
	return fmt.Sprintf(`Generate a concise keyword/title for this algorithm problem that will work on a quiz flashcard:

Description: %q

Create a short, memorable keyword or title (2-5 words max) that captures the core concept. The keyword should be:
- Easy to remember for quiz purposes
- Descriptive of the main technique or pattern
- Perfect as a flashcard front-side term

Respond with just the keyword/title, nothing else.`, description)
}

// BatchKeywordGeneration returns a combined keyword-generation prompt for a
// batch of descriptions, expecting a JSON array of description/keyword pairs.
func BatchKeywordGeneration(descriptions []string) string {
	var list strings.Builder
	for _, desc := range descriptions {
		fmt.Fprintf(&list, "- %s\n", desc)
	}

	return fmt.Sprintf(`Generate concise keywords/titles for these algorithm problems that will work on quiz flashcards:

Problem Descriptions:
%s
For each description, create a short, memorable keyword or title (2-5 words max) that captures the core concept.

Please respond with a valid JSON array containing objects with "description" and "keyword" fields, one object per description, in the same order the descriptions were listed:
[
  {"description": "original description", "keyword": "generated keyword"},
  {"description": "original description", "keyword": "generated keyword"}
]

Note: Keywords should be concise titles only (like "Two Sum" or "Binary Search") - they will be enhanced with descriptions later.`, list.String())
}

// SingleWithDescription returns a one-problem prompt carrying both the
// generated keyword and the original description for context.
func SingleWithDescription(tc TermContext) string {
	return fmt.Sprintf(`Create a concise study guide for the algorithm problem %q for a quiz flashcard.

Original Problem Description: %q

Your response should be in this format:
Keyword: [problem name] - [brief description of what the problem asks]
Definition: [detailed study guide]

Include in the definition:
1. Problem category/type
2. Key solution approach (2-3 steps max)
3. Time/space complexity
4. Important edge cases

The keyword enhancement should briefly describe what the problem asks you to do based on the original description (5-8 words max).

%s

Problem: %s
Original Description: %s

Keyword:
Definition:`, tc.Keyword, tc.Description, csvSafety, tc.Keyword, tc.Description)
}

// BatchWithDescriptions returns a combined prompt for keyword/description
// pairs, expecting one JSON object per pair in submission order.
func BatchWithDescriptions(pairs []TermContext) string {
	var items strings.Builder
	for i, tc := range pairs {
		if i > 0 {
			items.WriteString("\n\n")
		}
		fmt.Fprintf(&items, "Problem: %s\nOriginal Description: %s", tc.Keyword, tc.Description)
	}

	return fmt.Sprintf(`Create concise study guides for these algorithm problems for quiz flashcards.

%s

For each problem, include:
1. Problem category/type
2. Key solution approach (2-3 steps max)
3. Time/space complexity
4. Important edge cases

The keyword should be enhanced with a brief description: "Problem Name - brief description of what it asks"

%s

%s`, items.String(), csvSafety, batchFormat)
}
