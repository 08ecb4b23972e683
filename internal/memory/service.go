package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripwing/tripwing/internal/itinerary"
	"github.com/tripwing/tripwing/internal/llm"
)

// Service orchestrates canonicalization, embedding and chunk persistence.
// It is the write and query surface of the memory index.
type Service struct {
	store    ChunkStore
	embedder llm.Embedder
}

// NewService creates a memory service over the given store and embedder.
func NewService(store ChunkStore, embedder llm.Embedder) *Service {
	return &Service{store: store, embedder: embedder}
}

// IndexItem canonicalizes and embeds one trip item and upserts its chunk.
// Indexing an already-indexed item replaces the chunk in place; it never
// creates a duplicate for the same source.
func (s *Service) IndexItem(ctx context.Context, item itinerary.TripItem, place *itinerary.Place) error {
	text := itinerary.Canonicalize(item, place)

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed item %s: %w", item.ID, err)
	}

	chunk := Chunk{
		ID:        uuid.NewString(),
		TripID:    item.TripID,
		SourceID:  item.ID,
		Kind:      SourceItem,
		Text:      text,
		Embedding: vec,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.UpsertBySource(ctx, chunk); err != nil {
		return fmt.Errorf("persist chunk for item %s: %w", item.ID, err)
	}
	return nil
}

// ReindexItem refreshes the chunk for an item after a mutation. It is an
// alias of IndexItem and relies on the upsert-by-source contract.
func (s *Service) ReindexItem(ctx context.Context, item itinerary.TripItem, place *itinerary.Place) error {
	return s.IndexItem(ctx, item, place)
}

// IndexItems indexes a batch sequentially. One item's failure is logged
// and skipped; it never aborts the rest of the batch. Returns the number
// of items indexed.
func (s *Service) IndexItems(ctx context.Context, items []itinerary.TripItem, places map[string]itinerary.Place) int {
	indexed := 0
	for _, item := range items {
		var place *itinerary.Place
		if p, ok := places[item.PlaceID]; ok {
			place = &p
		}
		if err := s.IndexItem(ctx, item, place); err != nil {
			slog.Warn("index item failed", "item_id", item.ID, "error", err)
			continue
		}
		indexed++
	}
	return indexed
}

// IndexDaySummary indexes one day's schedule summary as a single chunk.
// The source id is derived from the day, so re-summarizing a day replaces
// its chunk.
func (s *Service) IndexDaySummary(ctx context.Context, tripID, dayID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty summary for day %s", dayID)
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed day summary %s: %w", dayID, err)
	}

	chunk := Chunk{
		ID:        uuid.NewString(),
		TripID:    tripID,
		SourceID:  "day-" + dayID,
		Kind:      SourceDaySummary,
		Text:      text,
		Embedding: vec,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.UpsertBySource(ctx, chunk); err != nil {
		return fmt.Errorf("persist day summary %s: %w", dayID, err)
	}
	return nil
}

// IndexKnowledge indexes free-text chunks not tied to a trip item, e.g.
// destination context returned by the cloud planner. Empty or whitespace
// entries are skipped; embedding failures are logged and skipped. Returns
// the number of entries indexed.
func (s *Service) IndexKnowledge(ctx context.Context, tripID string, entries []string) int {
	indexed := 0
	for _, entry := range entries {
		text := strings.TrimSpace(entry)
		if text == "" {
			continue
		}

		vec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			slog.Warn("index knowledge failed", "trip_id", tripID, "error", err)
			continue
		}

		id := uuid.NewString()
		chunk := Chunk{
			ID:        id,
			TripID:    tripID,
			SourceID:  "knowledge-" + id,
			Kind:      SourceKnowledge,
			Text:      text,
			Embedding: vec,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.UpsertBySource(ctx, chunk); err != nil {
			slog.Warn("persist knowledge failed", "trip_id", tripID, "error", err)
			continue
		}
		indexed++
	}
	return indexed
}

// Search embeds the query, pulls the trip's chunks and returns the top k
// by cosine similarity.
func (s *Service) Search(ctx context.Context, tripID, query string, k int) ([]ScoredChunk, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := s.store.GetChunks(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load chunks for trip %s: %w", tripID, err)
	}

	return Search(queryVec, chunks, k)
}

// RemoveBySource invalidates the chunk derived from the given source.
func (s *Service) RemoveBySource(ctx context.Context, sourceID string) error {
	return s.store.DeleteBySource(ctx, sourceID)
}

// RemoveTrip invalidates all chunks for a trip.
func (s *Service) RemoveTrip(ctx context.Context, tripID string) error {
	return s.store.DeleteTrip(ctx, tripID)
}
