package chunking

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/book-expert/tts-chunker/internal/segment"
)

var (
	clauseBreak = regexp.MustCompile(`[;:]\s+`)
	commaBreak  = regexp.MustCompile(`,\s+`)
)

// Builder groups sentences into chunks inside the configured size band.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder for cfg. The config must already be valid.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build sizes sentences into chunks. Sentences inside the optimal band or
// longer stand alone; shorter ones are merged with their neighbours; those
// over MaxChars are split at clause, comma, word and finally rune boundaries.
// No text is dropped.
func (b *Builder) Build(sentences []segment.Sentence) []string {
	state := &buildState{cfg: b.cfg}

	for _, sentence := range sentences {
		text := strings.TrimSpace(sentence.Text)
		if text == "" {
			continue
		}

		state.feed(text, sentence.ParagraphStart)
	}

	state.flush()

	return state.chunks
}

// buildState is the accumulator of one Build call.
type buildState struct {
	cfg          Config
	chunks       []string
	acc          []string
	accLen       int
	accParagraph bool
}

func (s *buildState) feed(text string, paragraphStart bool) {
	n := runeLen(text)

	switch {
	case n > s.cfg.MaxChars:
		s.feedLong(text, paragraphStart)
	case n >= s.cfg.OptimalMinChars:
		s.feedSized(text, n)
	default:
		s.feedShort(text, n, paragraphStart)
	}
}

// feedLong splits an over-long sentence and feeds its fragments back in. An
// undersized accumulator that cannot join the previous chunk is carried into
// the sentence instead of being emitted alone.
func (s *buildState) feedLong(text string, paragraphStart bool) {
	if s.accLen > 0 {
		if s.accLen < s.cfg.MinChars && !s.canMergeBack() {
			paragraphStart = s.accParagraph
			text = s.take() + " " + text
		} else {
			s.flush()
		}
	}

	for i, fragment := range splitLong(text, s.cfg.MaxChars) {
		s.feed(fragment, paragraphStart && i == 0)
	}
}

func (s *buildState) feedSized(text string, n int) {
	if s.accLen > 0 {
		if s.accLen < s.cfg.MinChars && !s.canMergeBack() && s.accLen+1+n <= s.cfg.MaxChars {
			s.emit(s.take() + " " + text)

			return
		}

		s.flush()
	}

	s.emit(text)
}

func (s *buildState) feedShort(text string, n int, paragraphStart bool) {
	if s.accLen == 0 {
		s.start(text, n, paragraphStart)

		return
	}

	combined := s.accLen + 1 + n

	switch {
	case paragraphStart && s.accLen >= s.cfg.MinChars:
		s.flush()
		s.start(text, n, paragraphStart)
	case combined <= s.cfg.OptimalMaxChars:
		s.add(text, n)

		if s.accLen >= s.cfg.OptimalMinChars {
			s.flush()
		}
	case combined <= s.cfg.MaxChars && s.preferMerge(combined):
		s.add(text, n)
		s.flush()
	default:
		s.flush()
		s.start(text, n, paragraphStart)
	}
}

// flush emits the accumulator. An undersized accumulator is appended to the
// previous chunk when that stays within MaxChars.
func (s *buildState) flush() {
	if s.accLen == 0 {
		return
	}

	n := s.accLen
	text := s.take()

	if n < s.cfg.MinChars && len(s.chunks) > 0 {
		last := len(s.chunks) - 1
		if runeLen(s.chunks[last])+1+n <= s.cfg.MaxChars {
			s.chunks[last] += " " + text

			return
		}
	}

	s.emit(text)
}

// canMergeBack reports whether the accumulator continues the paragraph of the
// previous chunk and fits after it.
func (s *buildState) canMergeBack() bool {
	if s.accParagraph || len(s.chunks) == 0 {
		return false
	}

	return runeLen(s.chunks[len(s.chunks)-1])+1+s.accLen <= s.cfg.MaxChars
}

func (s *buildState) start(text string, n int, paragraphStart bool) {
	s.acc = append(s.acc[:0], text)
	s.accLen = n
	s.accParagraph = paragraphStart
}

func (s *buildState) add(text string, n int) {
	s.acc = append(s.acc, text)
	s.accLen += 1 + n
}

// take empties the accumulator and returns its text.
func (s *buildState) take() string {
	text := strings.Join(s.acc, " ")
	s.acc = s.acc[:0]
	s.accLen = 0
	s.accParagraph = false

	return text
}

func (s *buildState) emit(text string) {
	s.chunks = append(s.chunks, text)
}

// preferMerge reports whether merging into a chunk of combined runes beats
// leaving the accumulator on its own.
func (s *buildState) preferMerge(combined int) bool {
	return s.accLen < s.cfg.MinChars || s.bandDistance(combined) < s.bandDistance(s.accLen)
}

// bandDistance is how far n lies from the optimal band.
func (s *buildState) bandDistance(n int) int {
	switch {
	case n < s.cfg.OptimalMinChars:
		return s.cfg.OptimalMinChars - n
	case n > s.cfg.OptimalMaxChars:
		return n - s.cfg.OptimalMaxChars
	default:
		return 0
	}
}

// splitLong cuts text into fragments of at most maxChars runes, trying
// semicolons and colons first, then commas, then word boundaries and finally
// raw runes.
func splitLong(text string, maxChars int) []string {
	fragments := []string{text}

	for _, split := range []func(string, int) []string{
		func(s string, _ int) []string { return splitAfter(s, clauseBreak) },
		func(s string, _ int) []string { return splitAfter(s, commaBreak) },
		packWords,
		splitRunes,
	} {
		fragments = refine(fragments, maxChars, split)
	}

	return fragments
}

// refine applies split to every fragment longer than maxChars.
func refine(fragments []string, maxChars int, split func(string, int) []string) []string {
	out := make([]string, 0, len(fragments))

	for _, fragment := range fragments {
		if runeLen(fragment) <= maxChars {
			out = append(out, fragment)

			continue
		}

		out = append(out, split(fragment, maxChars)...)
	}

	return out
}

// splitAfter cuts s after every delimiter match, keeping the delimiter with
// the left part.
func splitAfter(s string, delimiter *regexp.Regexp) []string {
	var parts []string

	last := 0

	for _, loc := range delimiter.FindAllStringIndex(s, -1) {
		parts = appendTrimmed(parts, s[last:loc[1]])
		last = loc[1]
	}

	return appendTrimmed(parts, s[last:])
}

// packWords splits s at spaces into the fewest parts of at most maxChars,
// balancing their lengths so no tiny tail is left over.
func packWords(s string, maxChars int) []string {
	words := strings.Fields(s)
	total := runeLen(s)
	parts := (total + maxChars - 1) / maxChars
	target := (total + parts - 1) / parts

	var (
		out     []string
		current []string
		length  int
	)

	for _, word := range words {
		n := runeLen(word)

		if length > 0 && (length >= target || length+1+n > maxChars) {
			out = append(out, strings.Join(current, " "))
			current, length = current[:0], 0
		}

		if length > 0 {
			length++
		}

		current = append(current, word)
		length += n
	}

	if length > 0 {
		out = append(out, strings.Join(current, " "))
	}

	return out
}

// splitRunes cuts s into pieces of maxChars runes. It is reached only for a
// single word longer than maxChars.
func splitRunes(s string, maxChars int) []string {
	runes := []rune(s)
	out := make([]string, 0, len(runes)/maxChars+1)

	for len(runes) > maxChars {
		out = append(out, string(runes[:maxChars]))
		runes = runes[maxChars:]
	}

	if len(runes) > 0 {
		out = append(out, string(runes))
	}

	return out
}

func appendTrimmed(parts []string, part string) []string {
	part = strings.TrimSpace(part)
	if part == "" {
		return parts
	}

	return append(parts, part)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
