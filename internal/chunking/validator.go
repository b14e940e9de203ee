package chunking

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Content limits applied by the validator.
const (
	// MaxSymbolRatio is the largest share of runes that may be neither
	// letters, digits, spaces nor punctuation.
	MaxSymbolRatio = 0.3
	// MaxUpperRatio is the largest share of letters that may be uppercase.
	MaxUpperRatio = 0.8
)

// Rejection reasons returned by Validator.Check.
var (
	ErrEmpty           = errors.New("chunk is empty")
	ErrNoCyrillic      = errors.New("chunk has no cyrillic letters")
	ErrTooShort        = errors.New("chunk is too short")
	ErrTooManySymbols  = errors.New("chunk is dominated by symbols")
	ErrMostlyUppercase = errors.New("chunk is mostly uppercase")
	ErrMetadata        = errors.New("chunk looks like publication metadata")
)

var (
	leadingJunk     = regexp.MustCompile(`^[.,;:\-–—\s]+`)
	metadataPattern = regexp.MustCompile(`(?i)isbn|ай эс би эн|удк|ббк|тираж|басмакана|издательство|` +
		`типография|©|автордук укук|все права защищены|бардык укуктар корголгон`)
)

// Validator rejects chunks that should not be recorded.
type Validator struct {
	minChars   int
	minLetters int
}

// NewValidator returns a Validator using the length limits of cfg.
func NewValidator(cfg Config) *Validator {
	return &Validator{minChars: cfg.MinChars, minLetters: cfg.MinLetters}
}

// Clean trims dangling punctuation and whitespace from the start of a chunk
// and whitespace from its end.
func Clean(chunk string) string {
	return strings.TrimSpace(leadingJunk.ReplaceAllString(chunk, ""))
}

// IsValid reports whether chunk passes every check.
func (v *Validator) IsValid(chunk string) bool {
	return v.Check(chunk, false) == nil
}

// Check returns the first reason chunk is rejected, or nil. A trailing chunk
// shorter than the minimum is accepted when it has enough letters.
func (v *Validator) Check(chunk string, trailing bool) error {
	text := strings.TrimSpace(chunk)
	if text == "" {
		return ErrEmpty
	}

	stats := measure(text)

	if stats.cyrillic == 0 {
		return ErrNoCyrillic
	}

	if stats.runes < v.minChars && (!trailing || stats.letters < v.minLetters) {
		return fmt.Errorf("%w: %d runes, need %d", ErrTooShort, stats.runes, v.minChars)
	}

	if float64(stats.symbols) > MaxSymbolRatio*float64(stats.runes) {
		return fmt.Errorf("%w: %d of %d runes", ErrTooManySymbols, stats.symbols, stats.runes)
	}

	if float64(stats.upper) > MaxUpperRatio*float64(stats.letters) {
		return fmt.Errorf("%w: %d of %d letters", ErrMostlyUppercase, stats.upper, stats.letters)
	}

	if match := metadataPattern.FindString(text); match != "" {
		return fmt.Errorf("%w: %q", ErrMetadata, match)
	}

	return nil
}

// Filter cleans every chunk and drops the rejected ones. The last chunk is
// checked as a trailing fragment.
func (v *Validator) Filter(chunks []string) (kept []string, rejected []error) {
	kept = make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		cleaned := Clean(chunk)

		err := v.Check(cleaned, i == len(chunks)-1)
		if err != nil {
			rejected = append(rejected, err)

			continue
		}

		kept = append(kept, cleaned)
	}

	return kept, rejected
}

type textStats struct {
	runes    int
	letters  int
	cyrillic int
	upper    int
	symbols  int
}

func measure(text string) textStats {
	var stats textStats

	for _, r := range text {
		stats.runes++

		switch {
		case unicode.IsLetter(r):
			stats.letters++

			if unicode.Is(unicode.Cyrillic, r) {
				stats.cyrillic++
			}

			if unicode.IsUpper(r) {
				stats.upper++
			}
		case unicode.IsDigit(r), unicode.IsSpace(r), unicode.IsPunct(r):
		default:
			stats.symbols++
		}
	}

	return stats
}
