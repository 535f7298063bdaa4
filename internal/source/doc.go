// Package source provides the input adapters that feed the generation
// pipeline: a local CSV file reader and a Google Sheets reader. Both extract
// an ordered sequence of values from a named column, skipping blank cells
// while preserving the order of everything else.
package source
