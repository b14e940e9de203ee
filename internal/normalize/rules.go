package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category groups rules of the same kind. Rules of one category are applied
// together; categories are applied in a fixed order.
type Category string

// Rule categories in application order.
const (
	CategoryShortAbbreviation         Category = "abbreviations-short"
	CategoryPhone                     Category = "phones"
	CategoryEmail                     Category = "emails"
	CategoryDate                      Category = "dates"
	CategoryYear                      Category = "years"
	CategoryTime                      Category = "times"
	CategoryCurrency                  Category = "currencies"
	CategoryOrdinal                   Category = "ordinals"
	CategoryUnit                      Category = "units"
	CategoryReference                 Category = "references"
	CategoryPercent                   Category = "percentages"
	CategoryArithmetic                Category = "arithmetic"
	CategoryInstitutionalAbbreviation Category = "abbreviations-institutional"
	CategoryEnglishAbbreviation       Category = "abbreviations-english"
	CategoryAddress                   Category = "addresses"
	CategorySymbol                    Category = "symbols"
	CategoryNumber                    Category = "numbers"
)

// Boundary requires a match to start and/or end at a Unicode word boundary.
// Go's \b only understands ASCII, so boundaries are checked around each match.
type Boundary uint8

// Boundary flags.
const (
	BoundaryNone  Boundary = 0
	BoundaryLeft  Boundary = 1 << 0
	BoundaryRight Boundary = 1 << 1
	BoundaryBoth           = BoundaryLeft | BoundaryRight
)

// ExpandFunc renders the submatches of a rule match (index 0 is the whole
// match). Returning false leaves the matched text untouched.
type ExpandFunc func(groups []string) (string, bool)

// Rule is one (category, pattern, handler) entry of the rule table.
//
// KeepPeriod marks patterns that swallow an abbreviation period. When such a
// period also ends the sentence it is written back after the replacement.
//
// Replacements are normally padded with a space where they would touch a word
// of the surrounding text. Join rules merge text and are never padded.
type Rule struct {
	Category   Category
	Name       string
	Pattern    *regexp.Regexp
	Expand     ExpandFunc
	Boundary   Boundary
	KeepPeriod bool
	Join       bool
}

// Apply rewrites every match of the rule in text.
func (r Rule) Apply(text string) string {
	matches := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder

	b.Grow(len(text) + len(text)/4)

	last := 0

	for _, loc := range matches {
		start, end := loc[0], loc[1]
		if start == end || !r.boundaryOK(text, start, end) {
			continue
		}

		replacement, ok := r.Expand(submatches(text, loc))
		if !ok {
			continue
		}

		if r.KeepPeriod && strings.HasSuffix(text[start:end], ".") &&
			!strings.HasSuffix(replacement, ".") && endsSentence(text[end:]) {
			replacement += "."
		}

		b.WriteString(text[last:start])

		if !r.Join && needsSpace(lastRune(text[:start]), firstRune(replacement)) {
			b.WriteByte(' ')
		}

		b.WriteString(replacement)

		if !r.Join && needsSpace(lastRune(replacement), firstRune(text[end:])) {
			b.WriteByte(' ')
		}

		last = end
	}

	b.WriteString(text[last:])

	return b.String()
}

func (r Rule) boundaryOK(text string, start, end int) bool {
	if r.Boundary&BoundaryLeft != 0 && isWordRune(lastRune(text[:start])) {
		return false
	}

	if r.Boundary&BoundaryRight != 0 && isWordRune(firstRune(text[end:])) {
		return false
	}

	return true
}

// RuleTable is the ordered, immutable list of normalization rules.
// A table is safe for concurrent use once built.
type RuleTable struct {
	rules []Rule
}

// NewRuleTable returns a table that applies rules in the given order.
func NewRuleTable(rules []Rule) *RuleTable {
	copied := make([]Rule, len(rules))
	copy(copied, rules)

	return &RuleTable{rules: copied}
}

// Rules returns a copy of the rules in application order.
func (t *RuleTable) Rules() []Rule {
	copied := make([]Rule, len(t.rules))
	copy(copied, t.rules)

	return copied
}

// Category returns the rules of one category in application order.
func (t *RuleTable) Category(category Category) []Rule {
	var selected []Rule

	for _, rule := range t.rules {
		if rule.Category == category {
			selected = append(selected, rule)
		}
	}

	return selected
}

// Apply runs every rule of the table over text.
func (t *RuleTable) Apply(text string) string {
	for _, rule := range t.rules {
		text = rule.Apply(text)
	}

	return text
}

// endsSentence reports whether rest starts a new sentence: end of text, a line
// break or an uppercase letter after optional spaces.
func endsSentence(rest string) bool {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return true
	}

	r := firstRune(rest)

	return r == '\n' || unicode.IsUpper(r)
}

func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)

	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}

	return groups
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// needsSpace reports whether a replacement would glue two words together.
func needsSpace(left, right rune) bool {
	return isWordRune(left) && isWordRune(right)
}

func lastRune(s string) rune {
	if s == "" {
		return 0
	}

	r, _ := utf8.DecodeLastRuneInString(s)

	return r
}

func firstRune(s string) rune {
	if s == "" {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r
}
