package source

import (
	"context"
	"errors"
)

// Errors shared by the input adapters.
var (
	// ErrColumnNotFound is returned when the requested column is missing from
	// the input's header row. The error message lists the available columns.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyInput is returned when the input has no header row at all.
	ErrEmptyInput = errors.New("input is empty")

	// ErrNoSheets is returned when a spreadsheet contains no sheet tabs.
	ErrNoSheets = errors.New("no sheets found in the spreadsheet")

	// ErrSheetNotFound is returned when the requested sheet tab does not exist.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrInvalidSheetRef is returned for a malformed Google Sheets URL or ID.
	ErrInvalidSheetRef = errors.New("invalid Google Sheets URL or ID")
)

// Source reads input terms from somewhere a user keeps them.
type Source interface {
	// ReadColumn returns the values of the named column in input order,
	// skipping blank cells. The column lookup is case-sensitive.
	ReadColumn(ctx context.Context, column string) ([]string, error)

	// Info describes the input: its title and the columns of each sheet.
	// Used by the --info mode.
	Info(ctx context.Context) (*Info, error)
}

// Info describes an input source for display.
type Info struct {
	// Title is the CSV file path or the spreadsheet title.
	Title string

	// Sheets holds one entry per sheet tab; a CSV file has exactly one.
	Sheets []SheetInfo
}

// SheetInfo names one sheet tab and its header columns.
type SheetInfo struct {
	Name    string
	Headers []string
}
