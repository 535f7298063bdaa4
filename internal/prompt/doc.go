// Package prompt builds the text prompts sent to the language model. All
// builders are pure functions of their inputs: the same prompt type and terms
// always produce the same prompt text. The response-format instructions
// embedded here (a Keyword:/Definition: pair for single-term prompts, a JSON
// array of keyword/definition objects for batch prompts) must stay in
// lockstep with the parsers in the generation package.
package prompt
