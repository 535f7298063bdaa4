package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quizgen/quizgen/internal/domain"
)

// WriteCards writes the cards to path as a header-less two-column CSV,
// creating the parent directory when missing. Every field is sanitized first
// so each record occupies exactly one line.
func WriteCards(path string, cards []domain.Card) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	if err := Write(f, cards); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// Write serializes the cards to w in Quizlet CSV form.
func Write(w io.Writer, cards []domain.Card) error {
	cw := csv.NewWriter(w)
	for _, card := range cards {
		clean := card.Sanitized()
		if err := cw.Write([]string{clean.Keyword, clean.Definition}); err != nil {
			return fmt.Errorf("failed to write card %q: %w", card.Keyword, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}
