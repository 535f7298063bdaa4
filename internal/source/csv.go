package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CSVSource reads terms from a column of a local CSV file. The first row is
// treated as the header.
type CSVSource struct {
	path string
}

// NewCSVSource validates the path and returns a CSVSource.
// The file must exist, be a regular file, and carry a .csv extension.
func NewCSVSource(path string) (*CSVSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("CSV file not found: %s: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is not a file: %s", path)
	}

	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("file is not a CSV: %s", path)
	}

	return &CSVSource{path: path}, nil
}

// ReadColumn extracts the named column's values in file order. Blank cells
// are skipped and surrounding whitespace is trimmed.
func (s *CSVSource) ReadColumn(_ context.Context, column string) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	// Rows may have trailing empty fields trimmed by their editor.
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyInput, s.path)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := -1
	for i, h := range headers {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q (available columns: %s)",
			ErrColumnNotFound, column, strings.Join(headers, ", "))
	}

	var values []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if idx >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[idx]); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

// Info returns the file path and its header columns.
func (s *CSVSource) Info(_ context.Context) (*Info, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyInput, s.path)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	return &Info{
		Title:  s.path,
		Sheets: []SheetInfo{{Name: filepath.Base(s.path), Headers: headers}},
	}, nil
}
