package chunking

import "strings"

// pair is one kind of paired punctuation. Symmetric pairs use the same rune
// for both sides and are balanced when their count is even.
type pair struct {
	opening rune
	closing rune
}

var pairs = []pair{
	{opening: '«', closing: '»'},
	{opening: '“', closing: '”'},
	{opening: '"', closing: '"'},
	{opening: '(', closing: ')'},
	{opening: '[', closing: ']'},
	{opening: '{', closing: '}'},
}

// Repair merges a chunk that leaves paired punctuation open with up to
// maxLookahead following chunks. The merge that balances the most pair kinds
// wins, ties going to the shortest merge; merges longer than relaxedMax runes
// are not considered and a merge must strictly improve the balance.
func Repair(chunks []string, maxLookahead, relaxedMax int) []string {
	out := make([]string, 0, len(chunks))

	for i := 0; i < len(chunks); {
		current := chunks[i]
		bestScore := balanceScore(current)

		if bestScore == len(pairs) {
			out = append(out, current)
			i++

			continue
		}

		best, bestSpan := current, 0
		merged := current

		for k := 1; k <= maxLookahead && i+k < len(chunks); k++ {
			merged += " " + chunks[i+k]
			if runeLen(merged) > relaxedMax {
				break
			}

			if score := balanceScore(merged); score > bestScore {
				best, bestSpan, bestScore = merged, k, score
			}
		}

		out = append(out, best)
		i += bestSpan + 1
	}

	return out
}

// IsBalanced reports whether every pair kind in text is closed.
func IsBalanced(text string) bool {
	return balanceScore(text) == len(pairs)
}

// balanceScore counts the pair kinds that are balanced in text.
func balanceScore(text string) int {
	score := 0

	for _, p := range pairs {
		if p.opening == p.closing {
			if strings.Count(text, string(p.opening))%2 == 0 {
				score++
			}

			continue
		}

		if strings.Count(text, string(p.opening)) == strings.Count(text, string(p.closing)) {
			score++
		}
	}

	return score
}
