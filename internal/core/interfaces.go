// Package core defines the domain types and interfaces shared by the chunking
// pipeline, the worker and the command line tools.
package core

import (
	"context"
	"time"

	"github.com/book-expert/events"
)

// ObjectStore defines the interface for interacting with a key-value blob store.
type ObjectStore interface {
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, key string, data []byte) error
}

// ChunkPreparer turns one document's text into recordable chunks.
type ChunkPreparer interface {
	Prepare(text string) Preparation
}

// Chunk is one span of text to be read aloud in a single take.
type Chunk struct {
	// Index is the 1-based position of the chunk within its document.
	Index             int           `json:"index"`
	Text              string        `json:"text"`
	EstimatedDuration time.Duration `json:"estimated_duration"`
}

// Preparation is the outcome of preparing one document.
type Preparation struct {
	Chunks []Chunk
	// Rejected holds the reason for every chunk dropped by validation.
	Rejected      []error
	TotalDuration time.Duration
}

// Texts returns the chunk texts in order.
func (p Preparation) Texts() []string {
	texts := make([]string, len(p.Chunks))
	for i, chunk := range p.Chunks {
		texts[i] = chunk.Text
	}

	return texts
}

// Manifest is the stored form of a prepared document.
type Manifest struct {
	WorkflowID    string        `json:"workflow_id"`
	DocumentKey   string        `json:"document_key"`
	CreatedAt     time.Time     `json:"created_at"`
	Chunks        []Chunk       `json:"chunks"`
	RejectedCount int           `json:"rejected_count"`
	TotalDuration time.Duration `json:"total_duration"`
}

// ChunksPreparedEvent announces that a document's chunk manifest is stored.
type ChunksPreparedEvent struct {
	Header        events.EventHeader `json:"header"`
	DocumentKey   string             `json:"document_key"`
	ManifestKey   string             `json:"manifest_key"`
	ChunkCount    int                `json:"chunk_count"`
	RejectedCount int                `json:"rejected_count"`
	TotalDuration time.Duration      `json:"total_duration"`
}
