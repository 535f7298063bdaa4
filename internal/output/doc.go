// Package output serializes generated flashcards into the two-column,
// header-less CSV layout the Quizlet importer expects.
package output
