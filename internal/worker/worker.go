// Package worker provides a NATS worker that prepares TTS chunk manifests.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/events"
	"github.com/book-expert/logger"
	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/book-expert/tts-chunker/internal/metrics"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	handleMessageTimeout = 30 * time.Second
	// QueueGroup lets several worker instances share one subject.
	QueueGroup = "tts-chunker"
	// ManifestSuffix is appended to the generated manifest key.
	ManifestSuffix = ".chunks.json"
)

var (
	// ErrSubjectEmpty indicates that no subject to listen on was given.
	ErrSubjectEmpty = errors.New("subject cannot be empty")
	// ErrMissingDependency indicates that a required collaborator is nil.
	ErrMissingDependency = errors.New("missing worker dependency")
	// ErrTextKeyEmpty indicates an event without a text key.
	ErrTextKeyEmpty = errors.New("event has no text key")
	// ErrNoChunks indicates that a document produced no recordable chunk.
	ErrNoChunks = errors.New("document produced no chunks")
)

// NatsWorker listens for extracted document text on a NATS subject and turns
// it into a stored chunk manifest.
type NatsWorker struct {
	natsConnection *nats.Conn
	subject        string
	publishSubject string
	texts          core.ObjectStore
	manifests      core.ObjectStore
	preparer       core.ChunkPreparer
	metrics        *metrics.Metrics
	log            *logger.Logger
}

// NewNatsWorker creates a worker. Text is read from texts and manifests are
// written to manifests. When publishSubject is set, every ChunksPreparedEvent
// is also published there.
func NewNatsWorker(
	natsConnection *nats.Conn,
	subject string,
	publishSubject string,
	texts core.ObjectStore,
	manifests core.ObjectStore,
	preparer core.ChunkPreparer,
	recorder *metrics.Metrics,
	log *logger.Logger,
) (*NatsWorker, error) {
	if subject == "" {
		return nil, ErrSubjectEmpty
	}

	if natsConnection == nil || texts == nil || manifests == nil || preparer == nil || recorder == nil || log == nil {
		return nil, ErrMissingDependency
	}

	return &NatsWorker{
		natsConnection: natsConnection,
		subject:        subject,
		publishSubject: publishSubject,
		texts:          texts,
		manifests:      manifests,
		preparer:       preparer,
		metrics:        recorder,
		log:            log,
	}, nil
}

// Run starts the worker and blocks until ctx is cancelled.
func (w *NatsWorker) Run(ctx context.Context) error {
	sub, err := w.natsConnection.QueueSubscribe(w.subject, QueueGroup, w.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to subject %s: %w", w.subject, err)
	}

	<-ctx.Done()

	drainErr := sub.Drain()
	if drainErr != nil {
		return fmt.Errorf("failed to drain subscription: %w", drainErr)
	}

	return nil
}

func (w *NatsWorker) handleMessage(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleMessageTimeout)
	defer cancel()

	event, err := parseEvent(msg)
	if err != nil {
		w.metrics.ObserveFailure(metrics.StageDecode)
		w.log.Error("Failed to parse event: %v", err)

		return
	}

	prepared, err := w.prepareDocument(ctx, event)
	if err != nil {
		w.log.Error("Failed to prepare chunks for workflow %s: %v", event.Header.WorkflowID, err)

		return
	}

	err = w.publishReplyEvent(msg, prepared)
	if err != nil {
		w.metrics.ObserveFailure(metrics.StageReply)
		w.log.Error("Failed to publish reply event for workflow %s: %v", event.Header.WorkflowID, err)

		return
	}

	w.log.Info("Prepared %d chunks (%d rejected, %s) for workflow %s as %s",
		prepared.ChunkCount, prepared.RejectedCount, chunking.FormatDuration(prepared.TotalDuration),
		event.Header.WorkflowID, prepared.ManifestKey)
}

// prepareDocument downloads the text, chunks it and uploads the manifest.
func (w *NatsWorker) prepareDocument(
	ctx context.Context,
	event *events.TextProcessedEvent,
) (*core.ChunksPreparedEvent, error) {
	textData, err := w.texts.Download(ctx, event.TextKey)
	if err != nil {
		w.metrics.ObserveFailure(metrics.StageDownload)

		return nil, fmt.Errorf("failed to download text data for key '%s': %w", event.TextKey, err)
	}

	started := time.Now()
	result := w.preparer.Prepare(string(textData))

	if len(result.Chunks) == 0 {
		w.metrics.ObserveFailure(metrics.StageEmpty)

		return nil, fmt.Errorf("%w: key '%s', %d rejected", ErrNoChunks, event.TextKey, len(result.Rejected))
	}

	w.metrics.ObservePreparation(result, time.Since(started))

	manifest := core.Manifest{
		WorkflowID:    event.Header.WorkflowID,
		DocumentKey:   event.TextKey,
		CreatedAt:     time.Now().UTC(),
		Chunks:        result.Chunks,
		RejectedCount: len(result.Rejected),
		TotalDuration: result.TotalDuration,
	}

	manifestData, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	manifestKey := uuid.NewString() + ManifestSuffix

	err = w.manifests.Upload(ctx, manifestKey, manifestData)
	if err != nil {
		w.metrics.ObserveFailure(metrics.StageUpload)

		return nil, fmt.Errorf("failed to upload manifest for key '%s': %w", manifestKey, err)
	}

	return &core.ChunksPreparedEvent{
		Header: events.EventHeader{
			Timestamp:  time.Now(),
			WorkflowID: event.Header.WorkflowID,
			EventID:    uuid.NewString(),
			UserID:     event.Header.UserID,
			TenantID:   event.Header.TenantID,
		},
		DocumentKey:   event.TextKey,
		ManifestKey:   manifestKey,
		ChunkCount:    len(result.Chunks),
		RejectedCount: len(result.Rejected),
		TotalDuration: result.TotalDuration,
	}, nil
}

// publishReplyEvent answers the request and publishes the event to the
// configured subject.
func (w *NatsWorker) publishReplyEvent(msg *nats.Msg, replyEvent *core.ChunksPreparedEvent) error {
	replyData, err := json.Marshal(replyEvent)
	if err != nil {
		return fmt.Errorf("failed to marshal reply event: %w", err)
	}

	if msg.Reply != "" {
		err = msg.Respond(replyData)
		if err != nil {
			return fmt.Errorf("failed to respond with reply event: %w", err)
		}
	}

	if w.publishSubject != "" {
		err = w.natsConnection.Publish(w.publishSubject, replyData)
		if err != nil {
			return fmt.Errorf("failed to publish event to %s: %w", w.publishSubject, err)
		}
	}

	return nil
}

func parseEvent(msg *nats.Msg) (*events.TextProcessedEvent, error) {
	var event events.TextProcessedEvent

	err := json.Unmarshal(msg.Data, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.TextKey == "" {
		return nil, ErrTextKeyEmpty
	}

	return &event, nil
}
