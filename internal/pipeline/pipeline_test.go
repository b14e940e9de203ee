package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const story = `БИРИНЧИ БӨЛҮМ

Тоо этегиндеги чакан айылда Асан аттуу бала жашачу. Ал күн сайын эртең менен туруп, атасына малга жардам берчү. Кышында кар калың түшүп, жолдор жабылып калчу.

12

Жайында болсо айылдын балдары дарыяга барып сууга түшүшчү. Асан алардын ичинен эң тайманбас бала эле; ал суунун эң терең жерине чейин сүзүп барчу. Апасы ар дайым: «Абайла, балам!» деп айтчу.
`

func newPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()

	p, err := pipeline.New(chunking.Config{}, nil)
	require.NoError(t, err)

	return p
}

func cyrillicLetters(text string) int {
	count := 0

	for _, r := range text {
		if unicode.Is(unicode.Cyrillic, r) && unicode.IsLetter(r) {
			count++
		}
	}

	return count
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := pipeline.New(chunking.Config{MinChars: 300}, nil)
	require.ErrorIs(t, err, chunking.ErrInvalidBand)

	_, err = pipeline.New(chunking.Config{OptimalMinChars: 150, OptimalMaxChars: 100}, nil)
	require.ErrorIs(t, err, chunking.ErrInvalidBand)
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chunking.DefaultConfig(), newPipeline(t).Config())
}

func TestPrepare_Story(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	cfg := p.Config()

	result := p.Prepare(story)

	require.NotEmpty(t, result.Chunks)
	assert.Empty(t, result.Rejected)

	joined := strings.Join(result.Texts(), " ")
	assert.NotContains(t, joined, "БИРИНЧИ")
	assert.NotContains(t, joined, "12")
	assert.Equal(t, cyrillicLetters(p.Normalize(story)), cyrillicLetters(joined))

	var total int64

	for i, chunk := range result.Chunks {
		assert.Equal(t, i+1, chunk.Index)
		assert.Positive(t, cyrillicLetters(chunk.Text))
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk.Text), cfg.RelaxedMaxChars)

		if i < len(result.Chunks)-1 {
			assert.GreaterOrEqual(t, utf8.RuneCountInString(chunk.Text), cfg.MinChars)
		}

		total += int64(chunk.EstimatedDuration)
	}

	assert.Equal(t, total, int64(result.TotalDuration))
	assert.Positive(t, result.TotalDuration)
}

func TestPrepare_LongSentenceIsSplit(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	clause := strings.TrimSpace(strings.Repeat("тоолор ", 14))
	text := clause + "; " + clause + "; " + clause + "."

	result := p.Prepare(text)

	require.GreaterOrEqual(t, len(result.Chunks), 2)

	for _, chunk := range result.Chunks {
		n := utf8.RuneCountInString(chunk.Text)
		assert.GreaterOrEqual(t, n, chunking.DefaultMinChars)
		assert.LessOrEqual(t, n, chunking.DefaultMaxChars)
	}
}

func TestPrepare_EmptyAndLetterlessInput(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	for _, text := range []string{"", "   \n\n  ", "12\n\n34", "*** --- ***"} {
		result := p.Prepare(text)
		assert.Empty(t, result.Chunks, "input %q", text)
		assert.Zero(t, result.TotalDuration)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	normalized := p.Normalize("БИРИНЧИ БӨЛҮМ\r\n\r\nАлар 2024-жыл келишти.")
	assert.NotContains(t, normalized, "БӨЛҮМ")
	assert.NotContains(t, normalized, "\r")
	assert.Contains(t, normalized, "эки миң жыйырма төртүнчү жыл")

	composed := p.Normalize("Ал кайра келди деп жазды: мен бул жерде калам деп и\u0306ыйлады.")
	assert.Contains(t, composed, "йыйлады")
	assert.NotContains(t, composed, "\u0306")
}

func TestPrepareBatch(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	texts := []string{story, "", story}

	results, err := p.PrepareBatch(context.Background(), texts, 2)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	assert.NotEmpty(t, results[0].Chunks)
	assert.Empty(t, results[1].Chunks)
	assert.Equal(t, results[0], results[2])
	assert.Equal(t, p.Prepare(story), results[0])
}

func TestPrepareBatch_Cancelled(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.PrepareBatch(ctx, []string{story, story}, 0)
	require.ErrorIs(t, err, context.Canceled)
}
