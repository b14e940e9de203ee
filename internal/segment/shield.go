package segment

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// shieldedDot stands in for a period that must not end a sentence. It lives
// in the Private Use Area, which is stripped from input before shielding, so
// restoring it can never touch original text.
const shieldedDot = '\uE000'

// Private Use Area bounds (Basic Multilingual Plane).
const (
	privateUseFirst = '\uE000'
	privateUseLast  = '\uF8FF'
)

// abbreviations never end a sentence. Matching is case-insensitive.
var abbreviations = []string{
	"и т.д.", "и т.п.", "т.д.", "т.п.", "т.е.", "т.к.", "т.н.", "др.", "пр.",
	"см.", "ср.", "им.", "ул.", "пер.", "д.", "кв.", "стр.", "рис.", "табл.",
	"гг.", "г.", "вв.", "в.", "тыс.", "млн.", "млрд.", "руб.", "коп.",
	"проф.", "акад.", "доц.", "зав.", "мин.", "сек.",
	"ж.б.у.с.", "ж.б.", "т.б.", "б.а.", "ө.к.", "мис.", "кк.", "жж.", "көч.", "обл.",
}

var (
	abbreviationPattern = compileAbbreviations(abbreviations)
	ellipsisPattern     = regexp.MustCompile(`\.{2,}`)
)

func compileAbbreviations(list []string) *regexp.Regexp {
	sorted := make([]string, len(list))
	copy(sorted, list)

	// Longest first so "т.д." is not cut short by "д.".
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, abbr := range sorted {
		quoted[i] = regexp.QuoteMeta(abbr)
	}

	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}

// stripPrivateUse removes Private Use Area runes so shield tokens cannot
// collide with input.
func stripPrivateUse(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= privateUseFirst && r <= privateUseLast {
			return -1
		}

		return r
	}, text)
}

// shield replaces periods inside ellipses, initials and known abbreviations
// with shieldedDot.
func shield(text string) string {
	text = ellipsisPattern.ReplaceAllStringFunc(text, shieldDots)
	text = shieldAbbreviations(text)

	return shieldInitials(text)
}

// unshield restores every shielded period.
func unshield(text string) string {
	return strings.ReplaceAll(text, string(shieldedDot), ".")
}

func shieldDots(span string) string {
	return strings.ReplaceAll(span, ".", string(shieldedDot))
}

func shieldAbbreviations(text string) string {
	matches := abbreviationPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder

	b.Grow(len(text))

	last := 0

	for _, loc := range matches {
		before, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		if loc[0] > 0 && unicode.IsLetter(before) {
			continue
		}

		b.WriteString(text[last:loc[0]])
		b.WriteString(shieldDots(text[loc[0]:loc[1]]))
		last = loc[1]
	}

	b.WriteString(text[last:])

	return b.String()
}

// shieldInitials protects the period of a single capital letter that follows
// a non-letter and precedes another capital, as in "Л. Толстой" or "А.С.".
func shieldInitials(text string) string {
	runes := []rune(text)

	for i, r := range runes {
		if r != '.' || i == 0 || !unicode.IsUpper(runes[i-1]) {
			continue
		}

		if i >= 2 && unicode.IsLetter(runes[i-2]) {
			continue
		}

		next := i + 1
		if next < len(runes) && runes[next] == ' ' {
			next++
		}

		if next < len(runes) && unicode.IsUpper(runes[next]) {
			runes[i] = shieldedDot
		}
	}

	return string(runes)
}
