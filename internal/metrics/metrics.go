// Package metrics records Prometheus metrics for chunk preparation.
package metrics

import (
	"errors"
	"time"

	"github.com/book-expert/tts-chunker/internal/chunking"
	"github.com/book-expert/tts-chunker/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tts_chunker"

// Failure stages reported by ObserveFailure.
const (
	StageDecode   = "decode"
	StageDownload = "download"
	StageEmpty    = "empty"
	StageUpload   = "upload"
	StageReply    = "reply"
)

// Metrics holds the collectors of one service instance.
type Metrics struct {
	documentsProcessed prometheus.Counter
	documentsFailed    *prometheus.CounterVec
	chunksEmitted      prometheus.Counter
	chunksRejected     *prometheus.CounterVec
	prepareDuration    prometheus.Histogram
	audioDuration      prometheus.Histogram
}

// New registers the collectors with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		documentsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents prepared into chunk manifests.",
		}),
		documentsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_failed_total",
			Help:      "Documents that could not be prepared, by stage.",
		}, []string{"stage"}),
		chunksEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_emitted_total",
			Help:      "Chunks accepted by validation.",
		}),
		chunksRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_rejected_total",
			Help:      "Chunks dropped by validation, by reason.",
		}, []string{"reason"}),
		prepareDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prepare_duration_seconds",
			Help:      "Time spent preparing one document.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		audioDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimated_audio_seconds",
			Help:      "Estimated reading time of one prepared document.",
			Buckets:   prometheus.ExponentialBuckets(30, 2, 10),
		}),
	}
}

// ObservePreparation records a prepared document.
func (m *Metrics) ObservePreparation(result core.Preparation, elapsed time.Duration) {
	m.documentsProcessed.Inc()
	m.chunksEmitted.Add(float64(len(result.Chunks)))
	m.prepareDuration.Observe(elapsed.Seconds())
	m.audioDuration.Observe(result.TotalDuration.Seconds())

	for _, err := range result.Rejected {
		m.chunksRejected.WithLabelValues(RejectionReason(err)).Inc()
	}
}

// ObserveFailure records a document that failed at stage.
func (m *Metrics) ObserveFailure(stage string) {
	m.documentsFailed.WithLabelValues(stage).Inc()
}

// RejectionReason maps a validation error to a metric label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, chunking.ErrEmpty):
		return "empty"
	case errors.Is(err, chunking.ErrNoCyrillic):
		return "no_cyrillic"
	case errors.Is(err, chunking.ErrTooShort):
		return "too_short"
	case errors.Is(err, chunking.ErrTooManySymbols):
		return "symbols"
	case errors.Is(err, chunking.ErrMostlyUppercase):
		return "uppercase"
	case errors.Is(err, chunking.ErrMetadata):
		return "metadata"
	default:
		return "other"
	}
}
