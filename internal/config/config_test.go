package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
[nats]
url = "nats://127.0.0.1:4222"
text_processed_subject = "text.processed"
chunks_prepared_subject = "chunks.prepared"
text_object_store_bucket = "TEXT_FILES"
chunk_object_store_bucket = "CHUNK_MANIFESTS"

[chunking]
min_chars = 50
optimal_min_chars = 90
optimal_max_chars = 170
max_chars = 230
words_per_minute = 150.5

[metrics]
listen_address = ":9102"

[paths]
base_logs_dir = "/var/log/tts-chunker"
`

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "text.processed", cfg.NATS.TextProcessedSubject)
	assert.Equal(t, "chunks.prepared", cfg.NATS.ChunksPreparedSubject)
	assert.Equal(t, "TEXT_FILES", cfg.NATS.TextObjectStoreBucket)
	assert.Equal(t, "CHUNK_MANIFESTS", cfg.NATS.ChunkObjectStoreBucket)
	assert.Equal(t, ":9102", cfg.Metrics.ListenAddress)
	assert.Equal(t, "/var/log/tts-chunker", cfg.Paths.BaseLogsDir)

	assert.Equal(t, 50, cfg.Chunking.MinChars)
	assert.Equal(t, 90, cfg.Chunking.OptimalMinChars)
	assert.Equal(t, 170, cfg.Chunking.OptimalMaxChars)
	assert.Equal(t, 230, cfg.Chunking.MaxChars)
	assert.InEpsilon(t, 150.5, cfg.Chunking.WordsPerMinute, 0.001)
	assert.Equal(t, chunking.DefaultRelaxedMaxChars, cfg.Chunking.RelaxedMaxChars)
	assert.Equal(t, chunking.DefaultPairLookahead, cfg.Chunking.PairLookahead)
	assert.Equal(t, chunking.DefaultMinLetters, cfg.Chunking.MinLetters)

	require.NoError(t, cfg.ValidateService())
}

func TestParse_DefaultsChunking(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("[paths]\nbase_logs_dir = \"/tmp\"\n"))
	require.NoError(t, err)

	assert.Equal(t, chunking.DefaultConfig(), cfg.Chunking)
	require.ErrorIs(t, cfg.ValidateService(), config.ErrNATSURLEmpty)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Parse([]byte("[chunking]\nmin_chars = 300\n"))
	require.ErrorIs(t, err, chunking.ErrInvalidBand)

	_, err = config.Parse([]byte("[chunking\n"))
	require.Error(t, err)
}

func TestValidateService(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(fullConfig))
	require.NoError(t, err)

	cfg.NATS.TextProcessedSubject = ""
	require.ErrorIs(t, cfg.ValidateService(), config.ErrSubjectEmpty)

	cfg.NATS.TextProcessedSubject = "text.processed"
	cfg.NATS.ChunkObjectStoreBucket = ""
	require.ErrorIs(t, cfg.ValidateService(), config.ErrBucketEmpty)
}

func TestEnsureDirectories(t *testing.T) {
	t.Parallel()

	logDir := filepath.Join(t.TempDir(), "logs", "chunker")
	cfg := &config.Config{Paths: config.PathsConfig{BaseLogsDir: logDir}}

	require.NoError(t, cfg.EnsureDirectories())

	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
