// Package segment turns extracted book text into sentences: it drops
// structural noise from raw lines and splits normalized text at sentence
// terminators without breaking initials, abbreviations or ellipses.
package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Thresholds for structural line classification.
const (
	// HeaderMaxRunes is the longest line still considered a running header.
	HeaderMaxRunes = 60
	// HeaderUpperRatio is the uppercase letter share above which a short line
	// is a header.
	HeaderUpperRatio = 0.7
	// TitleMaxRunes is the longest line still considered a section title.
	TitleMaxRunes = 100
	// TitleUpperRatio is the uppercase letter share above which an
	// unpunctuated line is a section title.
	TitleUpperRatio = 0.8
	// ShortLineMaxRunes is the longest unpunctuated, digit-free line dropped
	// as a stray header fragment ("Б", "а)") unless the next line continues it.
	ShortLineMaxRunes = 3
	// RepeatThreshold is the number of occurrences after which a short
	// unpunctuated line is treated as a running header or footer.
	RepeatThreshold = 3
)

var (
	pageNumberPattern    = regexp.MustCompile(`^\d{1,4}$`)
	decoratedPagePattern = regexp.MustCompile(`^[-–—*~=_.\s]*\d{1,4}[-–—*~=_.\s]*$`)
	labeledPagePattern   = regexp.MustCompile(`(?i)^(?:стр|бет|page|с)\.?\s*\d{1,4}$`)
	listItemPattern      = regexp.MustCompile(`^\d{1,3}\.$`)
	romanOnlyPattern     = regexp.MustCompile(`^[IVXLCDM]+\.?$`)
)

// structuralKeywords open lines that belong to the book's apparatus rather
// than its text.
var structuralKeywords = map[string]bool{
	"мазмуну":      true,
	"мазмун":       true,
	"содержание":   true,
	"оглавление":   true,
	"глава":        true,
	"бөлүм":        true,
	"isbn":         true,
	"ббк":          true,
	"удк":          true,
	"тираж":        true,
	"басмакана":    true,
	"издательство": true,
	"типография":   true,
}

// FilterLines drops page numbers, running headers and footers, and
// standalone section titles. Blank lines are kept so paragraph breaks
// survive. When a line is ambiguous it is kept.
func FilterLines(lines []string) []string {
	repeats := countRepeats(lines)
	kept := make([]string, 0, len(lines))

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			kept = append(kept, "")

			continue
		}

		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		if isNoise(line, next, repeats[line]) {
			continue
		}

		kept = append(kept, line)
	}

	return kept
}

func isNoise(line, next string, occurrences int) bool {
	switch {
	case listItemPattern.MatchString(line):
		return !startsUpper(next)
	case isPageNumber(line):
		return true
	case !hasLetterOrDigit(line):
		return true
	case romanOnlyPattern.MatchString(line):
		return true
	case startsWithKeyword(line):
		return true
	}

	length := utf8.RuneCountInString(line)
	ratio := upperRatio(line)
	terminated := endsSentence(line)

	switch {
	case length <= HeaderMaxRunes && ratio > HeaderUpperRatio:
		return true
	case length < TitleMaxRunes && ratio > TitleUpperRatio && !terminated:
		return true
	case length <= HeaderMaxRunes && !terminated && occurrences >= RepeatThreshold:
		return true
	case length <= ShortLineMaxRunes && !terminated && !hasDigit(line) && !startsLower(next):
		return true
	}

	return false
}

func isPageNumber(line string) bool {
	return pageNumberPattern.MatchString(line) ||
		decoratedPagePattern.MatchString(line) ||
		labeledPagePattern.MatchString(line)
}

// countRepeats counts short unpunctuated lines, the shape of running headers.
func countRepeats(lines []string) map[string]int {
	counts := make(map[string]int)

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || utf8.RuneCountInString(line) > HeaderMaxRunes || endsSentence(line) {
			continue
		}

		counts[line]++
	}

	return counts
}

func startsWithKeyword(line string) bool {
	if strings.HasPrefix(line, "©") {
		return true
	}

	end := strings.IndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) })
	if end == -1 {
		end = len(line)
	}

	return structuralKeywords[strings.ToLower(line[:end])] && utf8.RuneCountInString(line) <= HeaderMaxRunes
}

func upperRatio(s string) float64 {
	letters, upper := 0, 0

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}

		letters++

		if unicode.IsUpper(r) {
			upper++
		}
	}

	if letters == 0 {
		return 0
	}

	return float64(upper) / float64(letters)
}

func hasLetterOrDigit(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.IsLower(r)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)

	return unicode.IsUpper(r)
}

// endsSentence reports whether s ends in terminal punctuation, ignoring
// trailing closing quotes and brackets.
func endsSentence(s string) bool {
	s = strings.TrimRight(s, `»"”’)]`)
	r, _ := utf8.DecodeLastRuneInString(s)

	return r == '.' || r == '!' || r == '?' || r == '…'
}
