// Package harmony attaches Kyrgyz grammatical suffixes to a stem following
// vowel and consonant harmony.
//
// The suffix is given in any of its surface forms ("нын", "дан", "га", "ы").
// Its leading consonant is re-chosen from the stem's final sound and every
// vowel is re-chosen from the stem's last vowel. Every decision is a fixed
// table lookup.
package harmony

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/book-expert/tts-chunker/internal/numspell"
)

// vowelTargets holds the low and high suffix vowels selected by a stem vowel.
type vowelTargets struct {
	low  rune
	high rune
}

// harmonyTable maps the last stem vowel (lowercase) to its suffix vowels.
// Russian loan vowels are folded onto their Kyrgyz counterparts.
var harmonyTable = map[rune]vowelTargets{
	'а': {low: 'а', high: 'ы'},
	'ы': {low: 'а', high: 'ы'},
	'я': {low: 'а', high: 'ы'},
	'о': {low: 'о', high: 'у'},
	'ё': {low: 'о', high: 'у'},
	'у': {low: 'а', high: 'у'},
	'ю': {low: 'а', high: 'у'},
	'е': {low: 'е', high: 'и'},
	'э': {low: 'е', high: 'и'},
	'и': {low: 'е', high: 'и'},
	'ө': {low: 'ө', high: 'ү'},
	'ү': {low: 'ө', high: 'ү'},
}

// defaultTargets applies to stems without any vowel.
var defaultTargets = vowelTargets{low: 'а', high: 'ы'}

// loanVowels folds Russian iotated and open vowels onto Kyrgyz ones.
var loanVowels = map[rune]rune{'я': 'а', 'ё': 'о', 'ю': 'у', 'э': 'е'}

var lowVowels = map[rune]bool{'а': true, 'е': true, 'о': true, 'ө': true, 'э': true}

var highVowels = map[rune]bool{'ы': true, 'и': true, 'у': true, 'ү': true}

var voiceless = map[rune]bool{
	'к': true, 'п': true, 'с': true, 'т': true, 'ф': true,
	'х': true, 'ц': true, 'ч': true, 'ш': true, 'щ': true,
}

// suffixKind classifies a suffix by the alternation of its first consonant.
type suffixKind int

const (
	kindVowel     suffixKind = iota // possessive -ы/-сы
	kindNasal                       // genitive/accusative -нын/-дын/-тын, -ны/-ды/-ты
	kindDental                      // locative/ablative -да/-та, -дан/-тан
	kindVelar                       // dative -га/-ка
	kindBareNasal                   // short accusative -н
	kindOther                       // anything else keeps its consonants
)

// stemSound describes the phonological features of a stem's ending.
type stemSound struct {
	targets       vowelTargets
	endsVowel     bool
	endsVoiceless bool
}

// AttachSuffix returns stem followed by suffix rewritten to agree with stem.
//
//	AttachSuffix("коом", "га")             // "коомго"
//	AttachSuffix("бириккен улуттар уюму", "нын") // "... уюмунун"
func AttachSuffix(stem, suffix string) string {
	if suffix == "" {
		return stem
	}

	sound := analyze(stem)
	runes := []rune(strings.ToLower(suffix))

	return stem + string(rewrite(runes, classify(runes), sound))
}

// AttachPossessed is AttachSuffix for stems that already carry a third-person
// possessive ending ("республикасы", "уюму"). Case suffixes on such stems take
// the pronominal "н": -на, -нда, -нан, -н.
func AttachPossessed(stem, suffix string) string {
	if suffix == "" {
		return stem
	}

	sound := analyze(stem)
	runes := []rune(strings.ToLower(suffix))
	kind := classify(runes)

	switch {
	case kind == kindVelar:
		runes[0] = 'н'
	case kind == kindDental && len(runes) == 2:
		runes = append([]rune{'н'}, runes...)
	case kind == kindDental && len(runes) == 3:
		runes[0] = 'н'
	case kind == kindNasal && len(runes) == 2:
		return stem + "н"
	default:
		return AttachSuffix(stem, suffix)
	}

	return stem + string(rewriteVowels(runes, sound.targets))
}

// Ablative attaches the ablative case (-дан/-тан/-дон/-дөн/...) to word.
// Fractions are read with it: "сегизден беш" for 5/8.
func Ablative(word string) string {
	return AttachSuffix(word, "дан")
}

// Number spells n and attaches suffix to the spoken form: (30, "да") -> "отузда".
func Number(n int64, suffix string) string {
	return AttachSuffix(numspell.Words(n), suffix)
}

// LastVowel returns the last vowel of s, lowercased and with Russian loan
// vowels folded ("уюм" -> 'у'), or 0 when s has none.
func LastVowel(s string) rune {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		r = unicode.ToLower(r)

		if _, ok := harmonyTable[r]; ok {
			if folded, loan := loanVowels[r]; loan {
				return folded
			}

			return r
		}

		i -= size
	}

	return 0
}

func analyze(stem string) stemSound {
	sound := stemSound{targets: defaultTargets}

	if targets, ok := harmonyTable[LastVowel(stem)]; ok {
		sound.targets = targets
	}

	last := lastLetter(stem)
	_, sound.endsVowel = harmonyTable[last]
	sound.endsVoiceless = voiceless[last]

	return sound
}

// lastLetter returns the final letter of stem, lowercased, skipping the
// soft and hard signs which carry no sound of their own.
func lastLetter(stem string) rune {
	for i := len(stem); i > 0; {
		r, size := utf8.DecodeLastRuneInString(stem[:i])
		r = unicode.ToLower(r)
		i -= size

		if r == 'ь' || r == 'ъ' || !unicode.IsLetter(r) {
			continue
		}

		return r
	}

	return 0
}

func classify(suffix []rune) suffixKind {
	first := suffix[0]

	switch {
	case lowVowels[first] || highVowels[first]:
		return kindVowel
	case first == 'н' && len(suffix) == 1:
		return kindBareNasal
	case first == 'н' || first == 'д' || first == 'т':
		if len(suffix) > 1 && highVowels[suffix[1]] {
			return kindNasal
		}

		return kindDental
	case first == 'г' || first == 'к':
		return kindVelar
	default:
		return kindOther
	}
}

func rewrite(suffix []rune, kind suffixKind, sound stemSound) []rune {
	switch kind {
	case kindVowel:
		if sound.endsVowel && len(suffix) == 1 && highVowels[suffix[0]] {
			suffix = append([]rune{'с'}, suffix...)
		}
	case kindNasal:
		suffix[0] = pickConsonant(sound, 'н', 'д', 'т')
	case kindDental:
		suffix[0] = pickConsonant(sound, 'д', 'д', 'т')
	case kindVelar:
		suffix[0] = pickConsonant(sound, 'г', 'г', 'к')
	case kindBareNasal:
		if !sound.endsVowel {
			suffix = []rune{pickConsonant(sound, 'н', 'д', 'т'), 'ы'}
		}
	case kindOther:
	}

	return rewriteVowels(suffix, sound.targets)
}

// pickConsonant chooses the allomorph for a stem ending in a vowel, a voiced
// consonant or a voiceless consonant.
func pickConsonant(sound stemSound, afterVowel, afterVoiced, afterVoiceless rune) rune {
	switch {
	case sound.endsVowel:
		return afterVowel
	case sound.endsVoiceless:
		return afterVoiceless
	default:
		return afterVoiced
	}
}

func rewriteVowels(suffix []rune, targets vowelTargets) []rune {
	for i, r := range suffix {
		switch {
		case lowVowels[r]:
			suffix[i] = targets.low
		case highVowels[r]:
			suffix[i] = targets.high
		}
	}

	return suffix
}
