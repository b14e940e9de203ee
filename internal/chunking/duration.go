package chunking

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Reading speed adjustments by average word length in runes.
const (
	shortWordMaxRunes  = 4
	mediumWordMaxRunes = 6
	shortWordFactor    = 1.1
	mediumWordFactor   = 1.0
	longWordFactor     = 0.85
)

// Duration formatting.
const (
	secondsInMinute = 60
	secondsInHour   = 3600
	formatSeconds   = "%ds"
	formatMinutes   = "%dm %ds"
	formatHours     = "%dh %dm"
)

// EstimateDuration returns the reading time of text at wordsPerMinute,
// adjusted for word length: short words are read faster and long words
// slower. The result is truncated to whole seconds.
func EstimateDuration(text string, wordsPerMinute float64) time.Duration {
	words := strings.Fields(text)
	if len(words) == 0 || wordsPerMinute <= 0 {
		return 0
	}

	letters := 0

	for _, word := range words {
		letters += utf8.RuneCountInString(word)
	}

	average := float64(letters) / float64(len(words))

	factor := longWordFactor

	switch {
	case average <= shortWordMaxRunes:
		factor = shortWordFactor
	case average <= mediumWordMaxRunes:
		factor = mediumWordFactor
	}

	seconds := math.Floor(float64(len(words)) / (wordsPerMinute * factor) * secondsInMinute)

	return time.Duration(seconds) * time.Second
}

// FormatDuration renders d as "42s", "3m 5s" or "1h 20m".
func FormatDuration(d time.Duration) string {
	seconds := int(d / time.Second)

	if seconds < secondsInMinute {
		return fmt.Sprintf(formatSeconds, seconds)
	}

	if seconds < secondsInHour {
		return fmt.Sprintf(formatMinutes, seconds/secondsInMinute, seconds%secondsInMinute)
	}

	return fmt.Sprintf(formatHours, seconds/secondsInHour, seconds%secondsInHour/secondsInMinute)
}
