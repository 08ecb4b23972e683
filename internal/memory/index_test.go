package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwing/tripwing/types"
)

func TestSimilarity(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{-2, 0.5, 4}
		ab, err := Similarity(a, b)
		require.NoError(t, err)
		ba, err := Similarity(b, a)
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("self similarity is one", func(t *testing.T) {
		a := []float32{0.3, -1.2, 7}
		got, err := Similarity(a, a)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, float64(got), 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		got, err := Similarity([]float32{1, 0}, []float32{-1, 0})
		require.NoError(t, err)
		assert.InDelta(t, -1.0, float64(got), 1e-6)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Similarity([]float32{1, 2}, []float32{1, 2, 3})
		assert.ErrorIs(t, err, types.ErrDimensionMismatch)
	})

	t.Run("zero magnitude is zero not error", func(t *testing.T) {
		got, err := Similarity([]float32{0, 0, 0}, []float32{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, float32(0), got)
	})
}

func TestSearch(t *testing.T) {
	candidates := []Chunk{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{0, 1}},
		{ID: "c", Embedding: []float32{0.9, 0.1}},
	}
	query := []float32{1, 0}

	t.Run("descending order truncated to k", func(t *testing.T) {
		got, err := Search(query, candidates, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Chunk.ID)
		assert.Equal(t, "c", got[1].Chunk.ID)
		assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
	})

	t.Run("k larger than candidate count returns all", func(t *testing.T) {
		got, err := Search(query, candidates, 10)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("ties keep original candidate order", func(t *testing.T) {
		tied := []Chunk{
			{ID: "first", Embedding: []float32{0, 1}},
			{ID: "second", Embedding: []float32{0, 1}},
		}
		got, err := Search([]float32{0, 1}, tied, 2)
		require.NoError(t, err)
		assert.Equal(t, "first", got[0].Chunk.ID)
		assert.Equal(t, "second", got[1].Chunk.ID)
	})

	t.Run("mismatched candidate surfaces error", func(t *testing.T) {
		bad := []Chunk{{ID: "bad", Embedding: []float32{1}}}
		_, err := Search(query, bad, 1)
		assert.ErrorIs(t, err, types.ErrDimensionMismatch)
	})

	t.Run("empty candidates", func(t *testing.T) {
		got, err := Search(query, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
