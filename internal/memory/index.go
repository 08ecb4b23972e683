package memory

import (
	"fmt"
	"math"
	"sort"

	"github.com/tripwing/tripwing/types"
)

// ScoredChunk is a search hit with its cosine similarity score.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float32 `json:"score"`
}

// Similarity computes the cosine similarity between two vectors, in
// [-1, 1]. Vectors of different length fail with ErrDimensionMismatch;
// a zero-magnitude vector yields 0 rather than an error so that search
// stays total.
func Similarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", types.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// Search scores every candidate against the query vector and returns the
// top k by descending similarity. Ties keep the original candidate order.
// The index holds no state of its own: candidates are supplied per call,
// which keeps a query at O(n·d) and is fine at single-trip scale.
func Search(query []float32, candidates []Chunk, k int) ([]ScoredChunk, error) {
	scored := make([]ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		score, err := Similarity(query, c.Embedding)
		if err != nil {
			return nil, fmt.Errorf("score chunk %s: %w", c.ID, err)
		}
		scored = append(scored, ScoredChunk{Chunk: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k >= 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}
