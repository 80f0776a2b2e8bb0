package rag

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Chunk is a text fragment staged for insertion into a collection.
type Chunk struct {
	Content   string
	Metadata  map[string]any
	Embedding []float32
}

// ScoredChunk is a retrieved fragment with its cosine similarity score.
type ScoredChunk struct {
	Content  string
	Metadata map[string]any
	Score    float64
}

// Store persists and searches embedded chunks in Postgres via pgvector.
type Store struct {
	db *sql.DB
}

// NewStore creates a chunk store over the given database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add inserts chunks into a collection, linked to the source document.
func (s *Store) Add(ctx context.Context, collection string, documentID *uuid.UUID, chunks []Chunk) error {
	for _, c := range chunks {
		metadata, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshal chunk metadata: %w", err)
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO document_chunks (id, collection, document_id, content, metadata, embedding)
			VALUES ($1, $2, $3, $4, $5, $6::vector)`,
			uuid.New(), collection, documentID, c.Content, metadata, vectorToString(c.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert chunk: %w", err)
		}
	}
	return nil
}

// Search returns the k chunks in a collection nearest to the embedding
// by cosine distance, most similar first.
func (s *Store) Search(ctx context.Context, collection string, embedding []float32, k int) ([]ScoredChunk, error) {
	if k <= 0 {
		k = 4
	}

	vec := vectorToString(embedding)
	rows, err := s.db.QueryContext(ctx,
		`SELECT content, metadata, 1 - (embedding <=> $1::vector) AS score
		FROM document_chunks
		WHERE collection = $2 AND embedding IS NOT NULL
		ORDER BY embedding <=> $1::vector
		LIMIT $3`,
		vec, collection, k,
	)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var results []ScoredChunk
	for rows.Next() {
		var (
			chunk ScoredChunk
			raw   []byte
		)
		if err := rows.Scan(&chunk.Content, &raw, &chunk.Score); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("parse chunk metadata: %w", err)
			}
		}
		results = append(results, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// vectorToString renders an embedding as a pgvector literal.
func vectorToString(v []float32) string {
	if len(v) == 0 {
		return "[]"
	}
	buf := make([]byte, 0, len(v)*10)
	buf = append(buf, '[')
	for i, f := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, []byte(fmt.Sprintf("%g", f))...)
	}
	buf = append(buf, ']')
	return string(buf)
}
