// Package chunking sizes sentences into speakable chunks, repairs chunks that
// split paired punctuation, filters unspeakable chunks and estimates reading
// time.
package chunking

import (
	"errors"
	"fmt"
)

// Default size band, in runes.
const (
	DefaultMinChars        = 40
	DefaultOptimalMinChars = 80
	DefaultOptimalMaxChars = 160
	DefaultMaxChars        = 220
	DefaultRelaxedMaxChars = 280
	DefaultPairLookahead   = 3
	DefaultWordsPerMinute  = 140
	DefaultMinLetters      = 10
)

// Configuration errors.
var (
	ErrInvalidBand      = errors.New("invalid chunk size band")
	ErrInvalidRate      = errors.New("words per minute must be positive")
	ErrInvalidLookahead = errors.New("pair lookahead must not be negative")
)

// Config holds the tunable chunk sizing parameters. Lengths count runes.
//
// Built chunks stay within [MinChars, MaxChars] and aim for
// [OptimalMinChars, OptimalMaxChars]. Pair repair may merge up to
// PairLookahead following chunks as long as the result fits RelaxedMaxChars.
// A trailing chunk shorter than MinChars is kept when it has at least
// MinLetters letters.
type Config struct {
	MinChars        int     `toml:"min_chars"`
	OptimalMinChars int     `toml:"optimal_min_chars"`
	OptimalMaxChars int     `toml:"optimal_max_chars"`
	MaxChars        int     `toml:"max_chars"`
	RelaxedMaxChars int     `toml:"relaxed_max_chars"`
	PairLookahead   int     `toml:"pair_lookahead"`
	WordsPerMinute  float64 `toml:"words_per_minute"`
	MinLetters      int     `toml:"min_letters"`
}

// DefaultConfig returns the default sizing parameters.
func DefaultConfig() Config {
	return Config{
		MinChars:        DefaultMinChars,
		OptimalMinChars: DefaultOptimalMinChars,
		OptimalMaxChars: DefaultOptimalMaxChars,
		MaxChars:        DefaultMaxChars,
		RelaxedMaxChars: DefaultRelaxedMaxChars,
		PairLookahead:   DefaultPairLookahead,
		WordsPerMinute:  DefaultWordsPerMinute,
		MinLetters:      DefaultMinLetters,
	}
}

// WithDefaults returns c with every zero field replaced by its default.
func (c Config) WithDefaults() Config {
	defaults := DefaultConfig()

	if c.MinChars == 0 {
		c.MinChars = defaults.MinChars
	}

	if c.OptimalMinChars == 0 {
		c.OptimalMinChars = defaults.OptimalMinChars
	}

	if c.OptimalMaxChars == 0 {
		c.OptimalMaxChars = defaults.OptimalMaxChars
	}

	if c.MaxChars == 0 {
		c.MaxChars = defaults.MaxChars
	}

	if c.RelaxedMaxChars == 0 {
		c.RelaxedMaxChars = max(defaults.RelaxedMaxChars, c.MaxChars)
	}

	if c.PairLookahead == 0 {
		c.PairLookahead = defaults.PairLookahead
	}

	if c.WordsPerMinute == 0 {
		c.WordsPerMinute = defaults.WordsPerMinute
	}

	if c.MinLetters == 0 {
		c.MinLetters = defaults.MinLetters
	}

	return c
}

// Validate rejects unsatisfiable configurations. The band must be ordered:
// MinChars <= OptimalMinChars <= OptimalMaxChars <= MaxChars <= RelaxedMaxChars.
func (c Config) Validate() error {
	if c.MinChars <= 0 {
		return fmt.Errorf("%w: min_chars %d must be positive", ErrInvalidBand, c.MinChars)
	}

	if c.MinChars > c.MaxChars {
		return fmt.Errorf("%w: min_chars %d exceeds max_chars %d", ErrInvalidBand, c.MinChars, c.MaxChars)
	}

	if c.OptimalMinChars > c.OptimalMaxChars {
		return fmt.Errorf("%w: optimal_min_chars %d exceeds optimal_max_chars %d",
			ErrInvalidBand, c.OptimalMinChars, c.OptimalMaxChars)
	}

	if c.OptimalMinChars < c.MinChars || c.OptimalMaxChars > c.MaxChars {
		return fmt.Errorf("%w: optimal band [%d, %d] lies outside [%d, %d]",
			ErrInvalidBand, c.OptimalMinChars, c.OptimalMaxChars, c.MinChars, c.MaxChars)
	}

	if c.RelaxedMaxChars < c.MaxChars {
		return fmt.Errorf("%w: relaxed_max_chars %d is below max_chars %d",
			ErrInvalidBand, c.RelaxedMaxChars, c.MaxChars)
	}

	if c.WordsPerMinute <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidRate, c.WordsPerMinute)
	}

	if c.PairLookahead < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLookahead, c.PairLookahead)
	}

	return nil
}
