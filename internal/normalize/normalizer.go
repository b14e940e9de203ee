// Package normalize rewrites numbers, dates, abbreviations and symbols in
// Kyrgyz text into spoken words.
//
// Normalization is a single pass over an ordered RuleTable. Earlier rules
// claim their matches first: dates are expanded before bare numbers, units
// before integers, and so on. The output contains no ASCII digits and running
// it again changes nothing.
package normalize

import (
	"regexp"
	"strings"
)

var (
	invisiblePattern     = regexp.MustCompile(`[\x{00AD}\x{200B}-\x{200D}\x{2060}\x{FEFF}]`)
	horizontalSpace      = regexp.MustCompile(`[^\S\n]+`)
	spaceAroundNewline   = regexp.MustCompile(` *\n *`)
	excessNewlines       = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunct     = regexp.MustCompile(` +([.,!?;:])`)
	missingSpaceAfter    = regexp.MustCompile(`([,;:!?])(\p{L})`)
	missingSpaceSentence = regexp.MustCompile(`(\p{Ll}{2}[.!?])(\p{Lu})`)
	repeatedComma        = regexp.MustCompile(`,(?: ?,)+`)
)

// Normalizer applies a rule table to text. It holds no mutable state and is
// safe for concurrent use.
type Normalizer struct {
	table *RuleTable
}

// New returns a Normalizer over table. A nil table selects DefaultRuleTable.
func New(table *RuleTable) *Normalizer {
	if table == nil {
		table = DefaultRuleTable()
	}

	return &Normalizer{table: table}
}

// Normalize returns text with every matched pattern replaced by its spoken
// form. Paragraph breaks ("\n\n") survive; other whitespace is collapsed.
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = invisiblePattern.ReplaceAllString(text, "")
	text = n.table.Apply(text)

	return tidy(text)
}

// tidy collapses whitespace and repairs spacing around punctuation left
// behind by replacements.
func tidy(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = spaceAroundNewline.ReplaceAllString(text, "\n")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = repeatedComma.ReplaceAllString(text, ",")
	text = missingSpaceAfter.ReplaceAllString(text, "$1 $2")
	text = missingSpaceSentence.ReplaceAllString(text, "$1 $2")

	return strings.TrimSpace(text)
}
