// Package memory implements the semantic memory index over itinerary
// facts: canonical text chunks, their embeddings, persistence, and
// cosine-similarity retrieval.
package memory

import (
	"context"
	"time"
)

// SourceKind identifies what a chunk was derived from.
type SourceKind string

// Source kinds.
const (
	SourceItem       SourceKind = "item"
	SourceDaySummary SourceKind = "day_summary"
	SourceKnowledge  SourceKind = "knowledge"
)

// Chunk is one unit of indexed, embedded text tied to a source entity.
// There is exactly one live chunk per source id; re-indexing replaces the
// chunk's content and embedding but keeps its identity.
type Chunk struct {
	ID        string     `json:"id"`
	TripID    string     `json:"tripId"`
	SourceID  string     `json:"sourceId"`
	Kind      SourceKind `json:"kind"`
	Text      string     `json:"text"`
	Embedding []float32  `json:"embedding,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ChunkStore is the persistent chunk collaborator. Implementations must
// provide read-after-write consistency within a single process.
type ChunkStore interface {
	// GetChunks returns all chunks belonging to a trip.
	GetChunks(ctx context.Context, tripID string) ([]Chunk, error)

	// UpsertBySource inserts the chunk, or replaces the text and embedding
	// of the existing chunk with the same source id while preserving that
	// chunk's stored identity.
	UpsertBySource(ctx context.Context, chunk Chunk) error

	// DeleteBySource removes the chunk derived from the given source.
	DeleteBySource(ctx context.Context, sourceID string) error

	// DeleteTrip removes every chunk belonging to a trip.
	DeleteTrip(ctx context.Context, tripID string) error
}
