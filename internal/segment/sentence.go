package segment

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParagraphBreak separates paragraphs in normalized text.
const ParagraphBreak = "\n\n"

var (
	paragraphPattern  = regexp.MustCompile(`\n\s*\n`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	terminatorPattern = regexp.MustCompile(`[.!?]+[»"”’)\]]*\s+`)
)

// Sentence is one sentence-like unit of normalized text.
type Sentence struct {
	Text string
	// ParagraphStart is set on the first sentence after a paragraph break.
	ParagraphStart bool
}

// Len returns the sentence length in runes.
func (s Sentence) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// Split cuts text into sentences at '.', '!' and '?' followed by whitespace.
// '!' and '?' followed by a lowercase word continue the sentence. Ellipses, initials ("Л. Толстой") and known abbreviations ("т.д.") are not
// treated as terminators. Paragraph breaks mark the sentence that follows.
func Split(text string) []Sentence {
	text = stripPrivateUse(text)

	var sentences []Sentence

	for i, paragraph := range paragraphPattern.Split(text, -1) {
		paragraph = strings.TrimSpace(whitespacePattern.ReplaceAllString(paragraph, " "))
		if paragraph == "" {
			continue
		}

		for j, sentence := range splitParagraph(paragraph) {
			sentences = append(sentences, Sentence{
				Text:           sentence,
				ParagraphStart: j == 0 && i > 0 && len(sentences) > 0,
			})
		}
	}

	return sentences
}

func splitParagraph(paragraph string) []string {
	shielded := shield(paragraph)

	var parts []string

	last := 0

	for _, loc := range terminatorPattern.FindAllStringIndex(shielded, -1) {
		rest := shielded[loc[1]:]
		if capitalWithPeriod(rest) || lowercaseAfterExclamation(shielded[loc[0]:loc[1]], rest) {
			continue
		}

		parts = appendPart(parts, shielded[last:loc[1]])
		last = loc[1]
	}

	return appendPart(parts, shielded[last:])
}

func appendPart(parts []string, part string) []string {
	part = strings.TrimSpace(unshield(part))
	if part == "" {
		return parts
	}

	return append(parts, part)
}

// capitalWithPeriod reports whether rest starts with a capital letter and a
// period, an initial that shielding did not catch.
func capitalWithPeriod(rest string) bool {
	r, size := utf8.DecodeRuneInString(rest)

	return unicode.IsUpper(r) && strings.HasPrefix(rest[size:], ".")
}

// lowercaseAfterExclamation reports whether an '!' or '?' terminator is
// followed by a lowercase word, as in dialogue: "Кет! деди."
func lowercaseAfterExclamation(terminator, rest string) bool {
	if !strings.ContainsAny(terminator, "!?") {
		return false
	}

	r, _ := utf8.DecodeRuneInString(rest)

	return unicode.IsLower(r)
}
