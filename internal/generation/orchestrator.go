package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quizgen/quizgen/internal/config"
	"github.com/quizgen/quizgen/internal/domain"
	"github.com/quizgen/quizgen/internal/prompt"
)

// Result is the outcome of a generation run. Cards always has one entry per
// input term, in input order; Degraded counts the entries that carry a
// sentinel error definition because both the batch and the per-term path
// failed for them.
type Result struct {
	Cards    []domain.Card
	Degraded int
}

// Orchestrator converts an ordered sequence of input terms into an equally
// ordered sequence of flashcards. Terms are processed in consecutive batches
// of up to the configured batch size; each batch is one model call, and a
// failed batch falls back to sequential per-term calls.
type Orchestrator struct {
	gen    TextGenerator
	cfg    config.LLMConfig
	logger *slog.Logger
}

// NewOrchestrator creates an Orchestrator with the provided dependencies.
// A fresh run ID is attached to the logger for correlating a run's records.
func NewOrchestrator(gen TextGenerator, cfg config.LLMConfig, logger *slog.Logger) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("text generator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, cfg.BatchSize)
	}

	return &Orchestrator{
		gen:    gen,
		cfg:    cfg,
		logger: logger.With("run_id", uuid.New().String()),
	}, nil
}

// GenerateCards produces one flashcard per term, preserving input order.
// Terms are batched into combined prompts; a batch whose response cannot be
// parsed into exactly one card per term is retried term by term, and a term
// whose individual call also fails yields a sentinel card instead of an
// error.
func (o *Orchestrator) GenerateCards(ctx context.Context, terms []string, pt prompt.Type) (*Result, error) {
	if _, err := prompt.ParseType(string(pt)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	result := &Result{Cards: make([]domain.Card, 0, len(terms))}
	if len(terms) == 0 {
		return result, nil
	}

	batches := partition(terms, o.cfg.BatchSize)
	for i, batch := range batches {
		o.logger.InfoContext(ctx, "Processing batch",
			"batch", i+1,
			"total_batches", len(batches),
			"batch_size", len(batch))

		cards, err := o.generateBatch(ctx, batch, pt)
		if err != nil {
			o.logger.WarnContext(ctx, "Batch failed, falling back to per-term generation",
				"batch", i+1,
				"error", err)
			cards = o.generateTermsIndividually(ctx, batch, pt, result)
		}
		result.Cards = append(result.Cards, cards...)
	}

	o.logger.InfoContext(ctx, "Generation run complete",
		"cards", len(result.Cards),
		"degraded", result.Degraded)

	return result, nil
}

// GenerateFromDescriptions runs the keyword-generation pipeline: first each
// description is turned into a short flashcard keyword, then keyword and
// description together are turned into a card. Both phases batch with the
// same fallback discipline, and output order matches input order.
func (o *Orchestrator) GenerateFromDescriptions(ctx context.Context, descriptions []string) (*Result, error) {
	result := &Result{Cards: make([]domain.Card, 0, len(descriptions))}
	if len(descriptions) == 0 {
		return result, nil
	}

	o.logger.InfoContext(ctx, "Generating keywords from descriptions", "count", len(descriptions))
	pairs := o.generateKeywords(ctx, descriptions)

	o.logger.InfoContext(ctx, "Generating definitions with problem context")
	batches := partitionPairs(pairs, o.cfg.BatchSize)
	for i, batch := range batches {
		o.logger.InfoContext(ctx, "Processing batch",
			"batch", i+1,
			"total_batches", len(batches),
			"batch_size", len(batch))

		cards, err := o.generatePairBatch(ctx, batch)
		if err != nil {
			o.logger.WarnContext(ctx, "Batch failed, falling back to per-term generation",
				"batch", i+1,
				"error", err)
			cards = o.generatePairsIndividually(ctx, batch, result)
		}
		result.Cards = append(result.Cards, cards...)
	}

	o.logger.InfoContext(ctx, "Generation run complete",
		"cards", len(result.Cards),
		"degraded", result.Degraded)

	return result, nil
}

// generateBatch issues one combined call for the batch and parses the
// response into exactly one card per term.
func (o *Orchestrator) generateBatch(ctx context.Context, batch []string, pt prompt.Type) ([]domain.Card, error) {
	p, err := prompt.Batch(pt, batch)
	if err != nil {
		return nil, err
	}

	text, err := o.gen.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	return parseBatchCards(text, len(batch))
}

// generateTermsIndividually is the fallback path for a failed batch: one call
// per term, sequential, in order. A term whose call fails becomes a sentinel
// card and bumps the degraded counter; one term's failure never affects the
// others.
func (o *Orchestrator) generateTermsIndividually(ctx context.Context, batch []string, pt prompt.Type, result *Result) []domain.Card {
	cards := make([]domain.Card, 0, len(batch))
	for _, term := range batch {
		card, err := o.generateSingle(ctx, term, pt)
		if err != nil {
			o.logger.ErrorContext(ctx, "Per-term generation failed",
				"term", term,
				"error", err)
			card = domain.NewErrorCard(term, err)
			result.Degraded++
		}
		cards = append(cards, card)
	}
	return cards
}

// generateSingle issues one single-term call and parses the
// Keyword:/Definition: response, falling back to the original term as the
// keyword when the reply is off-format.
func (o *Orchestrator) generateSingle(ctx context.Context, term string, pt prompt.Type) (domain.Card, error) {
	p, err := prompt.Single(pt, term)
	if err != nil {
		return domain.Card{}, err
	}

	text, err := o.gen.Generate(ctx, p)
	if err != nil {
		return domain.Card{}, err
	}

	keyword, definition := parseKeywordDefinition(text, term)
	return domain.NewCard(keyword, definition)
}

// generateKeywords turns descriptions into short keywords, batch first with
// per-description fallback. A description whose keyword cannot be generated
// keeps the description itself as its keyword, so phase two always has one
// pair per input.
func (o *Orchestrator) generateKeywords(ctx context.Context, descriptions []string) []prompt.TermContext {
	pairs := make([]prompt.TermContext, 0, len(descriptions))

	batches := partition(descriptions, o.cfg.BatchSize)
	for i, batch := range batches {
		o.logger.InfoContext(ctx, "Keyword generation batch",
			"batch", i+1,
			"total_batches", len(batches),
			"batch_size", len(batch))

		keywords, err := o.generateKeywordBatch(ctx, batch)
		if err != nil {
			o.logger.WarnContext(ctx, "Keyword batch failed, falling back to per-description generation",
				"batch", i+1,
				"error", err)
			keywords = o.generateKeywordsIndividually(ctx, batch)
		}

		for j, desc := range batch {
			pairs = append(pairs, prompt.TermContext{Keyword: keywords[j], Description: desc})
		}
	}

	return pairs
}

func (o *Orchestrator) generateKeywordBatch(ctx context.Context, descriptions []string) ([]string, error) {
	text, err := o.gen.Generate(ctx, prompt.BatchKeywordGeneration(descriptions))
	if err != nil {
		return nil, err
	}
	return parseBatchKeywords(text, len(descriptions))
}

func (o *Orchestrator) generateKeywordsIndividually(ctx context.Context, descriptions []string) []string {
	keywords := make([]string, 0, len(descriptions))
	for _, desc := range descriptions {
		text, err := o.gen.Generate(ctx, prompt.KeywordGeneration(desc))
		if err != nil {
			o.logger.ErrorContext(ctx, "Keyword generation failed, keeping description",
				"description", desc,
				"error", err)
			keywords = append(keywords, desc)
			continue
		}
		keyword := strings.Trim(strings.TrimSpace(text), `"'`)
		if keyword == "" {
			keywords = append(keywords, desc)
			continue
		}
		keywords = append(keywords, keyword)
	}
	return keywords
}

// generatePairBatch issues one combined call for keyword/description pairs.
func (o *Orchestrator) generatePairBatch(ctx context.Context, batch []prompt.TermContext) ([]domain.Card, error) {
	text, err := o.gen.Generate(ctx, prompt.BatchWithDescriptions(batch))
	if err != nil {
		return nil, err
	}
	return parseBatchCards(text, len(batch))
}

// generatePairsIndividually is the per-pair fallback for a failed
// description batch.
func (o *Orchestrator) generatePairsIndividually(ctx context.Context, batch []prompt.TermContext, result *Result) []domain.Card {
	cards := make([]domain.Card, 0, len(batch))
	for _, pair := range batch {
		text, err := o.gen.Generate(ctx, prompt.SingleWithDescription(pair))
		if err != nil {
			o.logger.ErrorContext(ctx, "Per-problem generation failed",
				"keyword", pair.Keyword,
				"error", err)
			cards = append(cards, domain.NewErrorCard(pair.Keyword, err))
			result.Degraded++
			continue
		}

		keyword, definition := parseKeywordDefinition(text, pair.Keyword)
		card, err := domain.NewCard(keyword, definition)
		if err != nil {
			cards = append(cards, domain.NewErrorCard(pair.Keyword, err))
			result.Degraded++
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// partition splits items into consecutive non-overlapping chunks of up to
// size elements, preserving order. The final chunk may be shorter.
func partition(items []string, size int) [][]string {
	batches := make([][]string, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}

func partitionPairs(items []prompt.TermContext, size int) [][]prompt.TermContext {
	batches := make([][]prompt.TermContext, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}
	return batches
}
