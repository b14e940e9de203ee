package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = `Тоо этегиндеги чакан айылда Асан аттуу бала жашачу. Ал күн сайын эртең менен туруп, атасына малга жардам берчү.

Кышында кар калың түшүп, жолдор жабылып калчу. Асан 2024-жыл мектепти бүтүрдү.
`

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--" + flagLogDir, t.TempDir()}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "cardinal", args: []string{"words", "42"}, expected: "кырк эки\n"},
		{name: "ordinal", args: []string{"words", "--ordinal", "2024"}, expected: "эки миң жыйырма төртүнчү\n"},
		{name: "decimal", args: []string{"words", "3.14"}, expected: "үч бүтүн жүздөн он төрт\n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", testCase.args...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, out)
		})
	}
}

func TestWords_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "words", "беш")
	require.ErrorIs(t, err, ErrNotNumber)

	_, err = execute(t, "", "words", "--ordinal", "1.5")
	require.ErrorIs(t, err, ErrNotNumber)

	_, err = execute(t, "", "words")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "normalize", "2024-жыл 15%")
	require.NoError(t, err)
	assert.Equal(t, "эки миң жыйырма төртүнчү жыл он беш пайыз\n", out)

	out, err = execute(t, "15%", "normalize")
	require.NoError(t, err)
	assert.Equal(t, "он беш пайыз\n", out)
}

func TestChunk_Text(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "book.txt", sampleText)

	out, err := execute(t, "", "chunk", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], path+": "))
	assert.Contains(t, lines[1], "   1 [")
	assert.Contains(t, out, "эки миң жыйырма төртүнчү жыл")
	assert.NotContains(t, out, "2024")
}

func TestChunk_JSONWithOverrides(t *testing.T) {
	t.Parallel()

	first := writeFile(t, "first.txt", sampleText)
	second := writeFile(t, "second.txt", "")

	out, err := execute(t, "", "chunk", "--json", "--workers", "2", "--max", "240", "--wpm", "120", first, second)
	require.NoError(t, err)

	var manifests []core.Manifest

	require.NoError(t, json.Unmarshal([]byte(out), &manifests))
	require.Len(t, manifests, 2)

	assert.Equal(t, first, manifests[0].DocumentKey)
	require.NotEmpty(t, manifests[0].Chunks)

	var total int64

	for i, chunk := range manifests[0].Chunks {
		assert.Equal(t, i+1, chunk.Index)
		assert.Equal(t, chunking.EstimateDuration(chunk.Text, 120), chunk.EstimatedDuration)
		total += int64(chunk.EstimatedDuration)
	}

	assert.Equal(t, total, int64(manifests[0].TotalDuration))
	assert.Equal(t, second, manifests[1].DocumentKey)
	assert.Empty(t, manifests[1].Chunks)
}

func TestChunk_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "book.txt", sampleText)
	badConfig := writeFile(t, "bad.toml", "[chunking]\nmin_chars = 300\n")

	_, err := execute(t, "", "--config", badConfig, "chunk", path)
	require.ErrorIs(t, err, chunking.ErrInvalidBand)

	goodConfig := writeFile(t, "good.toml", "[chunking]\nwords_per_minute = 100\n")

	_, err = execute(t, "", "--config", goodConfig, "chunk", path)
	require.NoError(t, err)

	_, err = execute(t, "", "chunk", "--min", "500", path)
	require.ErrorIs(t, err, chunking.ErrInvalidBand)
}

func TestChunk_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "chunk", filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
