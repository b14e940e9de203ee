package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/book-expert/tts-chunker/internal/harmony"
	"github.com/book-expert/tts-chunker/internal/numspell"
)

const (
	decimalPattern = `\d+(?:[.,]\d+)?`
	monthPattern   = `(?:январ|феврал|март|апрел|май|мая|июн|июл|август|сентябр|октябр|ноябр|декабр)\p{L}*`
	spacedPattern  = `\d{1,3}(?:[ \x{00A0}]\d{3})+`
)

// DefaultRuleTable returns the shared Kyrgyz rule table. It is built on first
// use and never modified afterwards.
var DefaultRuleTable = sync.OnceValue(func() *RuleTable {
	return NewRuleTable(defaultRules())
})

func defaultRules() []Rule {
	var rules []Rule

	for _, group := range [][]Rule{
		shortAbbreviationRules(),
		phoneRules(),
		emailRules(),
		dateRules(),
		yearRules(),
		timeRules(),
		currencyRules(),
		ordinalRules(),
		unitRules(),
		referenceRules(),
		percentRules(),
		arithmeticRules(),
		institutionalRules(),
		englishRules(),
		addressRules(),
		symbolRules(),
		numberRules(),
	} {
		rules = append(rules, group...)
	}

	return rules
}

// prefixAbbreviations precede the word they qualify, so their period never
// ends a sentence.
var prefixAbbreviations = map[string]bool{"проф.": true, "акад.": true, "мис.": true}

func shortAbbreviationRules() []Rule {
	sorted := longestFirst(shortAbbreviations)
	rules := make([]Rule, 0, len(sorted))

	for _, abbr := range sorted {
		boundary := BoundaryLeft

		last, _ := utf8.DecodeLastRuneInString(abbr.key)
		if isWordRune(last) {
			boundary = BoundaryBoth
		}

		rules = append(rules, Rule{
			Category:   CategoryShortAbbreviation,
			Name:       abbr.key,
			Pattern:    regexp.MustCompile(regexp.QuoteMeta(abbr.key)),
			Expand:     constant(abbr.value),
			Boundary:   boundary,
			KeepPeriod: !prefixAbbreviations[abbr.key],
		})
	}

	return rules
}

// referenceRules drop footnote markers so they are not read as numbers. They
// run after units, which own "м²" and "км²".
func referenceRules() []Rule {
	return []Rule{
		{
			Category: CategoryReference,
			Name:     "bracketed",
			Pattern:  regexp.MustCompile(`\[\d{1,3}(?:\s*[,–-]\s*\d{1,3})*\]`),
			Expand:   constant(""),
		},
		{
			Category: CategoryReference,
			Name:     "superscript",
			Pattern:  regexp.MustCompile(`[¹²³⁴⁵⁶⁷⁸⁹⁰]+`),
			Expand:   constant(""),
		},
	}
}

func phoneRules() []Rule {
	return []Rule{
		{
			Category: CategoryPhone,
			Name:     "international",
			Pattern:  regexp.MustCompile(`\+(\d{1,3})((?:[ -]?\(?\d{2,3}\)?){3,4})`),
			Expand: func(g []string) (string, bool) {
				return "плюс " + spell(g[1]) + " " + spellGroups(digitGroup.FindAllString(g[2], -1)), true
			},
			Boundary: BoundaryRight,
		},
		{
			Category: CategoryPhone,
			Name:     "local",
			Pattern:  regexp.MustCompile(`0(\d{3})[ -](\d{2})[ -](\d{2})[ -](\d{2})`),
			Expand: func(g []string) (string, bool) {
				return numspell.WordZero + " " + spellGroups(g[1:]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryPhone,
			Name:     "short",
			Pattern:  regexp.MustCompile(`(\d{2,3})-(\d{2})-(\d{2})`),
			Expand: func(g []string) (string, bool) {
				return spellGroups(g[1:]), true
			},
			Boundary: BoundaryBoth,
		},
	}
}

func emailRules() []Rule {
	return []Rule{
		{
			Category: CategoryEmail,
			Name:     "url",
			Pattern:  regexp.MustCompile(`(?:https?://|www\.)\S*[^\s.,;:!?)\]»"']`),
			Expand:   constant(""),
			Boundary: BoundaryLeft,
		},
		{
			Category: CategoryEmail,
			Name:     "email",
			Pattern:  regexp.MustCompile(`([a-zA-Z0-9._%+-]+)@([a-zA-Z0-9.-]+)\.([a-zA-Z]{2,})`),
			Expand: func(g []string) (string, bool) {
				return dotted(g[1]) + " " + symbolWords["@"] + " " + dotted(g[2]) + " чекит " + g[3], true
			},
			Boundary: BoundaryBoth,
		},
	}
}

func dateRules() []Rule {
	return []Rule{
		{
			Category: CategoryDate,
			Name:     "year-day-month",
			Pattern:  regexp.MustCompile(`(\d{4})\s*-?\s*жылдын\s+(\d{1,2})\s*-?\s*(` + monthPattern + `)`),
			Expand: func(g []string) (string, bool) {
				return ordinal(g[1]) + " жылдын " + ordinal(g[2]) + " " + g[3], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryDate,
			Name:     "day-month-year",
			Pattern: regexp.MustCompile(
				`(\d{1,2})\s*-?\s*(` + monthPattern + `),?\s+(\d{4})\s*[-.]?\s*(жыл\p{L}*)`),
			Expand: func(g []string) (string, bool) {
				return ordinal(g[1]) + " " + g[2] + " " + ordinal(g[3]) + " " + g[4], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryDate,
			Name:     "iso-datetime",
			Pattern:  regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})[T ](\d{1,2}):(\d{2})(?::\d{2})?`),
			Expand: func(g []string) (string, bool) {
				date, ok := spokenDate(g[1], g[2], g[3])
				if !ok {
					return "", false
				}

				clock, ok := spokenTime(g[4], g[5])
				if !ok {
					return "", false
				}

				return date + " саат " + clock, true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryDate,
			Name:     "iso-date",
			Pattern:  regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
			Expand: func(g []string) (string, bool) {
				return spokenDate(g[1], g[2], g[3])
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryDate,
			Name:     "numeric-date",
			Pattern:  regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`),
			Expand: func(g []string) (string, bool) {
				return spokenDate(g[3], g[2], g[1])
			},
			Boundary: BoundaryBoth,
		},
	}
}

func yearRules() []Rule {
	return []Rule{
		{
			Category: CategoryYear,
			Name:     "range",
			Pattern:  regexp.MustCompile(`(\d{4})\s*[-–—]\s*(\d{4})\s*[-.]?\s*(жылдары|жылдар|жж|гг)\.?`),
			Expand: func(g []string) (string, bool) {
				marker := "жылдар"
				if g[3] == "жылдары" {
					marker = "жылдары"
				}

				return ordinal(g[1]) + " " + ordinal(g[2]) + " " + marker, true
			},
			Boundary:   BoundaryBoth,
			KeepPeriod: true,
		},
		{
			Category: CategoryYear,
			Name:     "single",
			Pattern:  regexp.MustCompile(`(\d{4})\s*[-.]?\s*(жыл\p{Ll}*|жж|гг|ж|г)\.?`),
			Expand: func(g []string) (string, bool) {
				marker := "жыл"
				if strings.HasPrefix(g[2], "жыл") {
					marker = g[2]
				}

				return ordinal(g[1]) + " " + marker, true
			},
			Boundary:   BoundaryBoth,
			KeepPeriod: true,
		},
	}
}

func timeRules() []Rule {
	return []Rule{
		{
			Category: CategoryTime,
			Name:     "with-suffix",
			Pattern:  regexp.MustCompile(`(\d{1,2}):(\d{2})\s*-?\s*(да|де|та|те|до|дө|то|тө|га|ге|ка|ке|го|гө|ко|кө)`),
			Expand: func(g []string) (string, bool) {
				hours, hErr := strconv.Atoi(g[1])
				minutes, mErr := strconv.Atoi(g[2])

				if hErr != nil || mErr != nil || hours > 24 || minutes > 59 {
					return "", false
				}

				return numspell.Words(int64(hours)) + " " + harmony.Number(int64(minutes), g[3]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryTime,
			Name:     "clock",
			Pattern:  regexp.MustCompile(`(\d{1,2}):(\d{2})`),
			Expand: func(g []string) (string, bool) {
				return spokenTime(g[1], g[2])
			},
			Boundary: BoundaryBoth,
		},
	}
}

func currencyRules() []Rule {
	magnitudes := quoted(keys(largeNumbers))
	symbols := quoted(keys(currencySymbols))

	return []Rule{
		{
			Category: CategoryCurrency,
			Name:     "large-amount",
			Pattern: regexp.MustCompile(`(` + decimalPattern + `)\s*(` + magnitudes +
				`)\.?\s*(сом|доллар|евро|рубль|рубл|тенге|юань)(\p{L}*)`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + largeNumbers[g[2]] + " " + g[3] + g[4], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryCurrency,
			Name:     "large-number",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s*(` + magnitudes + `)\.?`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + largeNumbers[g[2]], true
			},
			Boundary:   BoundaryBoth,
			KeepPeriod: true,
		},
		{
			Category: CategoryCurrency,
			Name:     "som-tyiyn",
			Pattern:  regexp.MustCompile(`(` + spacedPattern + `|\d+)[.,](\d{2})\s*сом`),
			Expand: func(g []string) (string, bool) {
				return spell(ungroup(g[1])) + " сом " + spell(g[2]) + " тыйын", true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryCurrency,
			Name:     "som",
			Pattern:  regexp.MustCompile(`(` + spacedPattern + `|\d+)\s*сом(\p{L}*)`),
			Expand: func(g []string) (string, bool) {
				return spell(ungroup(g[1])) + " сом" + g[2], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryCurrency,
			Name:     "symbol-prefix",
			Pattern:  regexp.MustCompile(`(` + symbols + `)\s?(` + decimalPattern + `)`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[2]) + " " + currencySymbols[g[1]], true
			},
			Boundary: BoundaryRight,
		},
		{
			Category: CategoryCurrency,
			Name:     "symbol-suffix",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s?(` + symbols + `)`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + currencySymbols[g[2]], true
			},
			Boundary: BoundaryLeft,
		},
	}
}

func ordinalRules() []Rule {
	return []Rule{
		{
			Category: CategoryOrdinal,
			Name:     "suffix",
			Pattern:  regexp.MustCompile(`(\d+)\s*-?\s*(?:ынчы|инчи|унчу|үнчү|нчы|нчи|нчу|нчү|чы|чи|чу|чү)`),
			Expand: func(g []string) (string, bool) {
				return ordinal(g[1]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryOrdinal,
			Name:     "age",
			Pattern:  regexp.MustCompile(`(\d+)\s*(жаш\p{L}*)`),
			Expand: func(g []string) (string, bool) {
				return spell(g[1]) + " " + g[2], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryOrdinal,
			Name:     "case-suffix",
			Pattern:  regexp.MustCompile(`(\d+)\s*-\s*(` + quoted(caseSuffixes) + `)`),
			Expand: func(g []string) (string, bool) {
				return harmony.AttachSuffix(spell(g[1]), g[2]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryOrdinal,
			Name:     "hyphenated",
			Pattern:  regexp.MustCompile(`(\d+)\s*-\s*(\p{Ll}+)`),
			Expand: func(g []string) (string, bool) {
				return ordinal(g[1]) + " " + g[2], true
			},
			Boundary: BoundaryBoth,
		},
	}
}

func unitRules() []Rule {
	sorted := longestFirst(units)
	names := make(map[string]string, len(sorted))
	symbols := make([]string, 0, len(sorted))

	for _, unit := range sorted {
		names[unit.key] = unit.value
		symbols = append(symbols, unit.key)
	}

	return []Rule{
		{
			Category: CategoryUnit,
			Name:     "measurement",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s*(` + quoted(symbols) + `)\.?`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + names[g[2]], true
			},
			Boundary:   BoundaryBoth,
			KeepPeriod: true,
		},
	}
}

func percentRules() []Rule {
	return []Rule{
		{
			Category: CategoryPercent,
			Name:     "range",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s*%?\s*[-–—]\s*(` + decimalPattern + `)\s*%`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + numspell.Decimal(g[2]) + " " + symbolWords["%"], true
			},
			Boundary: BoundaryLeft,
		},
		{
			Category: CategoryPercent,
			Name:     "single",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s*%`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + symbolWords["%"], true
			},
			Boundary: BoundaryLeft,
		},
	}
}

func arithmeticRules() []Rule {
	return []Rule{
		{
			Category: CategoryArithmetic,
			Name:     "equation",
			Pattern:  regexp.MustCompile(`(\d+)\s*([+\-−×*xXхХ/÷])\s*(\d+)\s*=\s*(\d+)`),
			Expand: func(g []string) (string, bool) {
				return spell(g[1]) + " " + operatorWords[g[2]] + " " + spell(g[3]) +
					" " + symbolWords["="] + " " + spell(g[4]), true
			},
			Boundary: BoundaryBoth,
		},
		binaryRule("addition", `(\d+)\s*(\+)\s*(\d+)`),
		binaryRule("multiplication", `(\d+)\s*([×*])\s*(\d+)`),
		binaryRule("multiplication-letter", `(\d+) ?([xXхХ]) ?(\d+)`),
		binaryRule("subtraction", `(\d+)(?:\s*(−)\s*| (-) )(\d+)`),
		binaryRule("division", `(\d+)(?:\s*(÷)\s*| (/) )(\d+)`),
		{
			Category: CategoryArithmetic,
			Name:     "range",
			Pattern:  regexp.MustCompile(`(\d+)\s*[-–—]\s*(\d+)`),
			Expand: func(g []string) (string, bool) {
				return spell(g[1]) + " " + spell(g[2]), true
			},
			Boundary: BoundaryBoth,
		},
	}
}

// binaryRule reads "a op b". Patterns may put the operator in one of several
// alternative groups; the first non-empty one is used.
func binaryRule(name, pattern string) Rule {
	return Rule{
		Category: CategoryArithmetic,
		Name:     name,
		Pattern:  regexp.MustCompile(pattern),
		Expand: func(g []string) (string, bool) {
			operator := ""

			for _, group := range g[2 : len(g)-1] {
				if group != "" {
					operator = group

					break
				}
			}

			return spell(g[1]) + " " + operatorWords[operator] + " " + spell(g[len(g)-1]), true
		},
		Boundary: BoundaryBoth,
	}
}

func institutionalRules() []Rule {
	suffixes := make([]string, len(caseSuffixes))
	copy(suffixes, caseSuffixes)
	sortLongestFirst(suffixes)

	return []Rule{
		{
			Category: CategoryInstitutionalAbbreviation,
			Name:     "institutional",
			Pattern: regexp.MustCompile(`(` + quoted(keys(institutionalAbbreviations)) +
				`)(?:-?(` + strings.Join(suffixes, "|") + `))?`),
			Expand: func(g []string) (string, bool) {
				abbr := institutionalAbbreviations[g[1]]
				if abbr.possessive {
					return harmony.AttachPossessed(abbr.text, g[2]), true
				}

				return harmony.AttachSuffix(abbr.text, g[2]), true
			},
			Boundary: BoundaryBoth,
		},
	}
}

var (
	romanNumeral = regexp.MustCompile(`^[IVXLCDM]+$`)
	digitGroup   = regexp.MustCompile(`\d+`)
)

func englishRules() []Rule {
	return []Rule{
		{
			Category: CategoryEnglishAbbreviation,
			Name:     "known",
			Pattern:  regexp.MustCompile(`(` + quoted(keys(englishAbbreviations)) + `)`),
			Expand: func(g []string) (string, bool) {
				return englishAbbreviations[g[1]], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryEnglishAbbreviation,
			Name:     "spelled",
			Pattern:  regexp.MustCompile(`[A-Z]{2,5}`),
			Expand: func(g []string) (string, bool) {
				if romanNumeral.MatchString(g[0]) {
					return "", false
				}

				names := make([]string, 0, len(g[0]))
				for _, letter := range g[0] {
					names = append(names, latinLetters[letter])
				}

				return strings.Join(names, " "), true
			},
			Boundary: BoundaryBoth,
		},
	}
}

func addressRules() []Rule {
	return []Rule{
		{
			Category: CategoryAddress,
			Name:     "city-prefix",
			Pattern:  regexp.MustCompile(`г\.\s*(\p{Lu})`),
			Expand: func(g []string) (string, bool) {
				return g[1], true
			},
			Boundary: BoundaryLeft,
			Join:     true,
		},
		{
			Category: CategoryAddress,
			Name:     "city-suffix",
			Pattern:  regexp.MustCompile(`(\p{Lu}\p{Ll}+)\s+ш\.`),
			Expand: func(g []string) (string, bool) {
				return g[1] + " шаары", true
			},
			Boundary: BoundaryLeft,
		},
		{
			Category: CategoryAddress,
			Name:     "micro-district",
			Pattern:  regexp.MustCompile(`(\d+)\s*-?\s*(кичи\s+район\p{L}*)`),
			Expand: func(g []string) (string, bool) {
				return ordinal(g[1]) + " " + g[2], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryAddress,
			Name:     "number-sign",
			Pattern:  regexp.MustCompile(`№\s*(\d+)`),
			Expand: func(g []string) (string, bool) {
				return symbolWords["№"] + " " + spell(g[1]), true
			},
			Boundary: BoundaryRight,
		},
		{
			Category: CategoryAddress,
			Name:     "degrees",
			Pattern:  regexp.MustCompile(`(` + decimalPattern + `)\s*°\s*[CС]?`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[1]) + " " + symbolWords["°"], true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryAddress,
			Name:     "fraction",
			Pattern:  regexp.MustCompile(`(\d+)/(\d+)`),
			Expand: func(g []string) (string, bool) {
				return harmony.Ablative(spell(g[2])) + " " + spell(g[1]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryAddress,
			Name:     "apostrophe",
			Pattern:  regexp.MustCompile(`(\p{L})['’ʼ](\p{L})`),
			Expand: func(g []string) (string, bool) {
				return g[1] + g[2], true
			},
			Join:     true,
		},
	}
}

func symbolRules() []Rule {
	standalone := make([]string, 0, len(symbolWords))
	for symbol := range symbolWords {
		standalone = append(standalone, symbol)
	}

	return []Rule{
		{
			Category: CategorySymbol,
			Name:     "quotes",
			Pattern:  regexp.MustCompile(`[«»„“”‟"‚‘’‹›']`),
			Expand:   constant(""),
		},
		{
			Category: CategorySymbol,
			Name:     "dashes",
			Pattern:  regexp.MustCompile(`[‐‑‒–—―−]`),
			Expand:   constant("-"),
		},
		{
			Category: CategorySymbol,
			Name:     "ellipsis",
			Pattern:  regexp.MustCompile(`…`),
			Expand:   constant("..."),
		},
		{
			Category: CategorySymbol,
			Name:     "standalone",
			Pattern:  regexp.MustCompile(`(` + quoted(standalone) + `)`),
			Expand: func(g []string) (string, bool) {
				return " " + symbolWords[g[1]] + " ", true
			},
		},
	}
}

func numberRules() []Rule {
	return []Rule{
		{
			Category: CategoryNumber,
			Name:     "signed",
			Pattern:  regexp.MustCompile(`(^|[\s(\[])[-−](` + spacedPattern + `(?:[.,]\d+)?|\d+(?:[.,]\d+)?)`),
			Expand: func(g []string) (string, bool) {
				return g[1] + numspell.Decimal("-"+ungroup(g[2])), true
			},
			Boundary: BoundaryRight,
		},
		{
			Category: CategoryNumber,
			Name:     "spaced",
			Pattern:  regexp.MustCompile(spacedPattern + `(?:[.,]\d+)?`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(ungroup(g[0])), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryNumber,
			Name:     "decimal",
			Pattern:  regexp.MustCompile(`\d+[.,]\d+`),
			Expand: func(g []string) (string, bool) {
				return numspell.Decimal(g[0]), true
			},
			Boundary: BoundaryBoth,
		},
		{
			Category: CategoryNumber,
			Name:     "integer",
			Pattern:  regexp.MustCompile(`\d+`),
			Expand: func(g []string) (string, bool) {
				return spell(g[0]), true
			},
		},
	}
}

func constant(value string) ExpandFunc {
	return func([]string) (string, bool) {
		return value, true
	}
}

// spell reads digits as a cardinal, falling back to digit-by-digit reading
// for values beyond int64.
func spell(digits string) string {
	if n, ok := numspell.Parse(digits); ok {
		return numspell.Words(n)
	}

	return numspell.Digits(digits)
}

func ordinal(digits string) string {
	if n, ok := numspell.Parse(digits); ok {
		return numspell.Ordinal(n)
	}

	return numspell.Digits(digits)
}

func spellGroups(groups []string) string {
	words := make([]string, 0, len(groups))
	for _, group := range groups {
		words = append(words, spell(group))
	}

	return strings.Join(words, " ")
}

// spokenDate reads a date as "<year> жылдын <day> <month>ы". Out-of-range
// months and days are rejected.
func spokenDate(year, month, day string) (string, bool) {
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}

	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}

	name := strings.TrimSuffix(months[m], "ь")

	return ordinal(year) + " жылдын " + numspell.Ordinal(int64(d)) + " " + harmony.AttachSuffix(name, "ы"), true
}

func spokenTime(hours, minutes string) (string, bool) {
	h, err := strconv.Atoi(hours)
	if err != nil || h > 24 {
		return "", false
	}

	m, err := strconv.Atoi(minutes)
	if err != nil || m > 59 {
		return "", false
	}

	return numspell.Words(int64(h)) + " " + numspell.Words(int64(m)), true
}

func dotted(s string) string {
	return strings.ReplaceAll(s, ".", " чекит ")
}

func ungroup(s string) string {
	return strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for key := range m {
		out = append(out, key)
	}

	return out
}

// quoted escapes literals and joins them longest first, so that
// leftmost-first matching prefers "км/ч" over "км".
func quoted(literals []string) string {
	sorted := make([]string, len(literals))
	copy(sorted, literals)
	sortLongestFirst(sorted)

	for i, literal := range sorted {
		sorted[i] = regexp.QuoteMeta(literal)
	}

	return strings.Join(sorted, "|")
}

func sortLongestFirst(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(values[i]), utf8.RuneCountInString(values[j])
		if li != lj {
			return li > lj
		}

		return values[i] < values[j]
	})
}

func longestFirst(entries []entry) []entry {
	sorted := make([]entry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].key) > utf8.RuneCountInString(sorted[j].key)
	})

	return sorted
}
