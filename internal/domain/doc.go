// Package domain contains the core business entities and value objects of
// the application: the flashcard produced by generation and the sanitization
// rules that keep card text safe for single-line CSV export. It is
// independent of any specific infrastructure or delivery mechanism.
package domain
