package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/book-expert/tts-chunker/internal/metrics"
	"github.com/book-expert/tts-chunker/internal/pipeline"
	"github.com/book-expert/tts-chunker/internal/worker"
	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	requestSubject  = "text.processed"
	preparedSubject = "chunks.prepared"
	document        = "Тоо этегиндеги чакан айылда Асан аттуу бала жашачу. " +
		"Ал күн сайын эртең менен туруп, атасына малга жардам берчү. " +
		"Кышында кар калың түшүп, жолдор жабылып калчу."
)

var (
	errMockDownload = errors.New("mock download error")
	errMockUpload   = errors.New("mock upload error")
)

// mockObjectStore is an in-memory core.ObjectStore.
type mockObjectStore struct {
	mu                 sync.Mutex
	objects            map[string][]byte
	downloadShouldFail bool
	uploadShouldFail   bool
}

func newMockObjectStore() *mockObjectStore {
	return &mockObjectStore{objects: make(map[string][]byte)}
}

func (m *mockObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.downloadShouldFail {
		return nil, errMockDownload
	}

	return m.objects[key], nil
}

func (m *mockObjectStore) Upload(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uploadShouldFail {
		return errMockUpload
	}

	m.objects[key] = data

	return nil
}

func (m *mockObjectStore) snapshot() map[string][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]byte, len(m.objects))
	for key, data := range m.objects {
		out[key] = data
	}

	return out
}

type testHarness struct {
	conn      *nats.Conn
	texts     *mockObjectStore
	manifests *mockObjectStore
	registry  *prometheus.Registry
	worker    *worker.NatsWorker
}

func createTestNatsClient(t *testing.T) *nats.Conn {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1
	server := test.RunServer(&opts)
	t.Cleanup(server.Shutdown)

	natsConnection, err := nats.Connect(server.ClientURL())
	require.NoError(t, err)
	t.Cleanup(natsConnection.Close)

	return natsConnection
}

func setupTest(t *testing.T) *testHarness {
	t.Helper()

	natsConnection := createTestNatsClient(t)

	preparer, err := pipeline.New(chunking.Config{}, nil)
	require.NoError(t, err)

	testLogger, err := logger.New(t.TempDir(), "worker-test.log")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testLogger.Close() })

	registry := prometheus.NewRegistry()
	harness := &testHarness{
		conn:      natsConnection,
		texts:     newMockObjectStore(),
		manifests: newMockObjectStore(),
		registry:  registry,
	}

	harness.worker, err = worker.NewNatsWorker(
		natsConnection, requestSubject, preparedSubject,
		harness.texts, harness.manifests, preparer, metrics.New(registry), testLogger,
	)
	require.NoError(t, err)

	return harness
}

// start runs the worker until the test ends and waits for its subscription.
func (h *testHarness) start(t *testing.T) {
	t.Helper()

	before := h.conn.NumSubscriptions()
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- h.worker.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return h.conn.NumSubscriptions() > before
	}, 5*time.Second, 10*time.Millisecond)

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-errChan, "worker.Run should not error on graceful shutdown")
	})
}

func newEvent(t *testing.T, textKey string) (*events.TextProcessedEvent, []byte) {
	t.Helper()

	event := &events.TextProcessedEvent{
		Header: events.EventHeader{
			Timestamp:  time.Now(),
			WorkflowID: uuid.NewString(),
			EventID:    uuid.NewString(),
			UserID:     "user-1",
			TenantID:   "tenant-1",
		},
		TextKey: textKey,
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	return event, data
}

func failures(t *testing.T, registry *prometheus.Registry) int {
	t.Helper()

	count, err := testutil.GatherAndCount(registry, "tts_chunker_documents_failed_total")
	require.NoError(t, err)

	return count
}

func TestMessageHandler_Success(t *testing.T) {
	t.Parallel()

	harness := setupTest(t)
	require.NoError(t, harness.texts.Upload(context.Background(), "book.txt", []byte(document)))

	published, err := harness.conn.SubscribeSync(preparedSubject)
	require.NoError(t, err)

	harness.start(t)

	testEvent, eventData := newEvent(t, "book.txt")

	replyMsg, err := harness.conn.Request(requestSubject, eventData, 5*time.Second)
	require.NoError(t, err, "Request should succeed and receive a reply")

	var replyEvent core.ChunksPreparedEvent

	require.NoError(t, json.Unmarshal(replyMsg.Data, &replyEvent))

	assert.Equal(t, testEvent.Header.WorkflowID, replyEvent.Header.WorkflowID)
	assert.Equal(t, testEvent.Header.TenantID, replyEvent.Header.TenantID)
	assert.NotEqual(t, testEvent.Header.EventID, replyEvent.Header.EventID)
	assert.Equal(t, "book.txt", replyEvent.DocumentKey)
	assert.True(t, strings.HasSuffix(replyEvent.ManifestKey, worker.ManifestSuffix))
	assert.Positive(t, replyEvent.ChunkCount)
	assert.Positive(t, replyEvent.TotalDuration)

	stored := harness.manifests.snapshot()
	require.Contains(t, stored, replyEvent.ManifestKey)

	var manifest core.Manifest

	require.NoError(t, json.Unmarshal(stored[replyEvent.ManifestKey], &manifest))
	assert.Equal(t, "book.txt", manifest.DocumentKey)
	assert.Equal(t, testEvent.Header.WorkflowID, manifest.WorkflowID)
	assert.Len(t, manifest.Chunks, replyEvent.ChunkCount)
	assert.Equal(t, replyEvent.TotalDuration, manifest.TotalDuration)
	assert.Equal(t, 1, manifest.Chunks[0].Index)

	publishedMsg, err := published.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, string(replyMsg.Data), string(publishedMsg.Data))

	processed, err := testutil.GatherAndCount(harness.registry, "tts_chunker_documents_processed_total")
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Zero(t, failures(t, harness.registry))
}

func TestMessageHandler_NoReplyOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		prepare func(*testing.T, *testHarness) []byte
	}{
		{
			name: "download fails",
			prepare: func(t *testing.T, h *testHarness) []byte {
				h.texts.downloadShouldFail = true
				_, data := newEvent(t, "book.txt")

				return data
			},
		},
		{
			name: "upload fails",
			prepare: func(t *testing.T, h *testHarness) []byte {
				h.texts.objects["book.txt"] = []byte(document)
				h.manifests.uploadShouldFail = true
				_, data := newEvent(t, "book.txt")

				return data
			},
		},
		{
			name: "document without chunks",
			prepare: func(t *testing.T, h *testHarness) []byte {
				h.texts.objects["blank.txt"] = []byte("12\n\n***")
				_, data := newEvent(t, "blank.txt")

				return data
			},
		},
		{
			name: "missing text key",
			prepare: func(t *testing.T, _ *testHarness) []byte {
				_, data := newEvent(t, "")

				return data
			},
		},
		{
			name: "malformed event",
			prepare: func(_ *testing.T, _ *testHarness) []byte {
				return []byte("{not json")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			harness := setupTest(t)
			eventData := testCase.prepare(t, harness)
			harness.start(t)

			_, err := harness.conn.Request(requestSubject, eventData, 500*time.Millisecond)
			require.ErrorIs(t, err, nats.ErrTimeout)

			assert.Empty(t, harness.manifests.snapshot())
			assert.Equal(t, 1, failures(t, harness.registry))
		})
	}
}

func TestNewNatsWorker_Validation(t *testing.T) {
	t.Parallel()

	natsConnection := createTestNatsClient(t)
	preparer, err := pipeline.New(chunking.Config{}, nil)
	require.NoError(t, err)

	testLogger, err := logger.New(t.TempDir(), "worker-test.log")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testLogger.Close() })

	recorder := metrics.New(prometheus.NewRegistry())
	store := newMockObjectStore()

	_, err = worker.NewNatsWorker(natsConnection, "", "", store, store, preparer, recorder, testLogger)
	require.ErrorIs(t, err, worker.ErrSubjectEmpty)

	_, err = worker.NewNatsWorker(natsConnection, requestSubject, "", store, store, nil, recorder, testLogger)
	require.ErrorIs(t, err, worker.ErrMissingDependency)

	_, err = worker.NewNatsWorker(natsConnection, requestSubject, "", store, store, preparer, recorder, testLogger)
	require.NoError(t, err)
}
