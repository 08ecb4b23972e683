package memory

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements ChunkStore using SQLite for persistence.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed chunk store. basePath ":memory:"
// opens an in-memory database.
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
	} else {
		dbPath = filepath.Join(basePath, "chunks.db")
		if err := os.MkdirAll(basePath, 0755); err != nil {
			return nil, fmt.Errorf("create chunk directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// initSchema creates the chunk table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		trip_id TEXT NOT NULL,
		source_id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		text TEXT NOT NULL,
		embedding BLOB,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_chunks_trip ON chunks(trip_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// GetChunks returns all chunks for a trip in insertion order.
func (s *SQLiteStore) GetChunks(ctx context.Context, tripID string) ([]Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, source_id, kind, text, embedding, created_at
		 FROM chunks WHERE trip_id = ? ORDER BY rowid`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		var kind, createdAt string
		var blob []byte
		if err := rows.Scan(&c.ID, &c.TripID, &c.SourceID, &kind, &c.Text, &blob, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		c.Kind = SourceKind(kind)
		c.Embedding = decodeEmbedding(blob)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			c.CreatedAt = ts
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks: %w", err)
	}
	return chunks, nil
}

// UpsertBySource inserts or replaces the chunk for its source id.
// The stored id and created_at survive replacement.
func (s *SQLiteStore) UpsertBySource(ctx context.Context, chunk Chunk) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chunks (id, trip_id, source_id, kind, text, embedding, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_id) DO UPDATE SET
			trip_id = excluded.trip_id,
			kind = excluded.kind,
			text = excluded.text,
			embedding = excluded.embedding`,
		chunk.ID, chunk.TripID, chunk.SourceID, string(chunk.Kind), chunk.Text,
		encodeEmbedding(chunk.Embedding), chunk.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert chunk for source %s: %w", chunk.SourceID, err)
	}
	return nil
}

// DeleteBySource removes the chunk derived from the given source.
func (s *SQLiteStore) DeleteBySource(ctx context.Context, sourceID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE source_id = ?`, sourceID); err != nil {
		return fmt.Errorf("delete chunk for source %s: %w", sourceID, err)
	}
	return nil
}

// DeleteTrip removes every chunk belonging to a trip.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE trip_id = ?`, tripID); err != nil {
		return fmt.Errorf("delete chunks for trip %s: %w", tripID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeEmbedding packs a vector as little-endian float32 bytes.
func encodeEmbedding(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeEmbedding unpacks little-endian float32 bytes into a vector.
func decodeEmbedding(buf []byte) []float32 {
	if len(buf) < 4 {
		return nil
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}
