// Package pipeline runs raw document text through structural filtering,
// normalization, sentence segmentation, chunk building, pair repair and
// validation.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/book-expert/tts-chunker/internal/normalize"
	"github.com/book-expert/tts-chunker/internal/segment"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// DefaultBatchWorkers bounds PrepareBatch when no limit is given.
const DefaultBatchWorkers = 4

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Pipeline prepares documents with one chunking configuration. It holds no
// per-document state and is safe for concurrent use.
type Pipeline struct {
	cfg        chunking.Config
	normalizer *normalize.Normalizer
	builder    *chunking.Builder
	validator  *chunking.Validator
}

// New returns a Pipeline for cfg. Zero fields of cfg take their defaults and
// the result must pass chunking.Config.Validate. A nil table selects the
// default rule table.
func New(cfg chunking.Config, table *normalize.RuleTable) (*Pipeline, error) {
	cfg = cfg.WithDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid chunking config: %w", err)
	}

	return &Pipeline{
		cfg:        cfg,
		normalizer: normalize.New(table),
		builder:    chunking.NewBuilder(cfg),
		validator:  chunking.NewValidator(cfg),
	}, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() chunking.Config {
	return p.cfg
}

// Normalize applies the line filter and the normalizer without chunking.
func (p *Pipeline) Normalize(text string) string {
	return p.normalizer.Normalize(filterStructure(text))
}

// Prepare turns text into ordered, validated chunks with reading estimates.
func (p *Pipeline) Prepare(text string) core.Preparation {
	normalized := p.Normalize(text)
	if normalized == "" {
		return core.Preparation{}
	}

	built := p.builder.Build(segment.Split(normalized))
	repaired := chunking.Repair(built, p.cfg.PairLookahead, p.cfg.RelaxedMaxChars)
	kept, rejected := p.validator.Filter(repaired)

	result := core.Preparation{
		Chunks:   make([]core.Chunk, len(kept)),
		Rejected: rejected,
	}

	for i, chunk := range kept {
		duration := chunking.EstimateDuration(chunk, p.cfg.WordsPerMinute)
		result.Chunks[i] = core.Chunk{Index: i + 1, Text: chunk, EstimatedDuration: duration}
		result.TotalDuration += duration
	}

	return result
}

// PrepareBatch prepares documents in parallel with at most workers running at
// once. Results keep the order of texts. It stops early only when ctx is
// cancelled.
func (p *Pipeline) PrepareBatch(ctx context.Context, texts []string, workers int) ([]core.Preparation, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	results := make([]core.Preparation, len(texts))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, text := range texts {
		group.Go(func() error {
			err := groupCtx.Err()
			if err != nil {
				return fmt.Errorf("document %d: %w", i, err)
			}

			results[i] = p.Prepare(text)

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare batch: %w", err)
	}

	return results, nil
}

// filterStructure composes text to NFC, unifies line endings and drops
// structural noise lines.
func filterStructure(text string) string {
	text = lineEndings.Replace(norm.NFC.String(text))
	lines := segment.FilterLines(strings.Split(text, "\n"))

	return strings.Join(lines, "\n")
}
