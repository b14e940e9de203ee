// Package numspell spells numbers as Kyrgyz words.
//
// Cardinals are built by decomposing the value at the trillion, billion,
// million, thousand, hundred, ten and unit scales. Ordinals reuse the
// cardinal decomposition and rewrite only the final word through fixed
// lookup tables. Decimals are read as "<whole> бүтүн <place> <fraction>".
//
// All functions are safe for concurrent use.
package numspell

import (
	"strconv"
	"strings"
)

// Words for the special cases and decimal readings.
const (
	WordZero    = "нөл"
	WordMinus   = "минус"
	WordWhole   = "бүтүн"
	ordinalZero = "нөлүнчү"
)

// Number base constants.
const (
	baseTen      = 10
	baseHundred  = 100
	maxDenomFrac = 3
)

var ones = [...]string{"", "бир", "эки", "үч", "төрт", "беш", "алты", "жети", "сегиз", "тогуз"}

var tens = [...]string{
	"", "он", "жыйырма", "отуз", "кырк", "элүү", "алтымыш", "жетимиш", "сексен", "токсон",
}

var ordinalOnes = [...]string{
	"", "биринчи", "экинчи", "үчүнчү", "төртүнчү", "бешинчи", "алтынчы", "жетинчи", "сегизинчи", "тогузунчу",
}

var ordinalTens = [...]string{
	"", "онунчу", "жыйырманчы", "отузунчу", "кыркынчы", "элүүнчү", "алтымышынчы", "жетимишинчи", "сексенинчи", "токсонунчу",
}

// magnitude pairs a scale value with its Kyrgyz word.
type magnitude struct {
	value int64
	word  string
}

// magnitudes lists the scales from largest to smallest.
var magnitudes = [...]magnitude{
	{1_000_000_000_000, "триллион"},
	{1_000_000_000, "миллиард"},
	{1_000_000, "миллион"},
	{1_000, "миң"},
}

const wordHundred = "жүз"

// scaleOrdinals maps a scale word to its ordinal form.
var scaleOrdinals = map[string]string{
	wordHundred: "жүзүнчү",
	"миң":       "миңинчи",
	"миллион":   "миллионунчу",
	"миллиард":  "миллиардынчы",
	"триллион":  "триллионунчу",
}

// placeWords names the fractional place for 1, 2 and 3 fractional digits.
var placeWords = [...]string{"", "ондон", "жүздөн", "миңден"}

// Words returns the Kyrgyz cardinal reading of n.
// Zero is "нөл"; negative values are prefixed with "минус".
func Words(n int64) string {
	if n == 0 {
		return WordZero
	}

	return strings.Join(cardinalParts(n), " ")
}

// Ordinal returns the Kyrgyz ordinal reading of n ("биринчи", "эки миң жыйырма төртүнчү").
func Ordinal(n int64) string {
	if n == 0 {
		return ordinalZero
	}

	parts := cardinalParts(n)
	last := len(parts) - 1
	parts[last] = ordinalWord(parts[last])

	return strings.Join(parts, " ")
}

// Decimal reads a numeric string with an optional "." or "," separator.
// "3.14" becomes "үч бүтүн жүздөн он төрт". Strings without a separator are
// read as integers. Digit runs that overflow int64 are read digit by digit.
func Decimal(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return ""
	}

	negative := false

	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	wholePart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder

	if negative {
		b.WriteString(WordMinus)
		b.WriteByte(' ')
	}

	b.WriteString(integerString(wholePart))

	if !hasFrac || fracPart == "" {
		return b.String()
	}

	b.WriteByte(' ')
	b.WriteString(WordWhole)

	if len(fracPart) <= maxDenomFrac {
		b.WriteByte(' ')
		b.WriteString(placeWords[len(fracPart)])
	}

	b.WriteByte(' ')
	b.WriteString(integerString(fracPart))

	return b.String()
}

// Digits reads every digit of s separately ("007" -> "нөл нөл жети").
// Non-digit runes are skipped.
func Digits(s string) string {
	words := make([]string, 0, len(s))

	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}

		words = append(words, Words(int64(r-'0')))
	}

	return strings.Join(words, " ")
}

// Parse converts an ASCII digit string to int64 and reports whether it fit.
func Parse(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, baseTen, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

// integerString reads a digit string as a cardinal, falling back to
// digit-by-digit reading when it does not fit into int64.
func integerString(s string) string {
	if s == "" {
		return WordZero
	}

	n, ok := Parse(s)
	if !ok {
		return Digits(s)
	}

	return Words(n)
}

// cardinalParts decomposes n into its space-separated words.
func cardinalParts(n int64) []string {
	parts := make([]string, 0, 8)

	if n < 0 {
		parts = append(parts, WordMinus)
		if n == -n {
			// math.MinInt64 has no positive counterpart.
			return append(parts, Digits(strconv.FormatInt(n, baseTen)))
		}

		n = -n
	}

	for _, mag := range magnitudes {
		count := n / mag.value
		if count > 0 {
			parts = append(parts, cardinalParts(count)...)
			parts = append(parts, mag.word)
			n %= mag.value
		}
	}

	if h := n / baseHundred; h > 0 {
		if h > 1 {
			parts = append(parts, ones[h])
		}

		parts = append(parts, wordHundred)
		n %= baseHundred
	}

	if t := n / baseTen; t > 0 {
		parts = append(parts, tens[t])
		n %= baseTen
	}

	if n > 0 {
		parts = append(parts, ones[n])
	}

	return parts
}

// ordinalWord rewrites the last word of a cardinal into its ordinal form.
func ordinalWord(word string) string {
	for i := 1; i < len(ones); i++ {
		if ones[i] == word {
			return ordinalOnes[i]
		}
	}

	for i := 1; i < len(tens); i++ {
		if tens[i] == word {
			return ordinalTens[i]
		}
	}

	if ord, ok := scaleOrdinals[word]; ok {
		return ord
	}

	return word
}
