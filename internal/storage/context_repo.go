package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insig8-ai/internal/models"
)

// AIContextStore defines the interface for AIContext storage operations.
type AIContextStore interface {
	// Upsert inserts a context record or replaces the stored row with the same ID.
	Upsert(ctx context.Context, c *models.AIContext) error
	// List returns every context record, newest first.
	List(ctx context.Context) ([]*models.AIContext, error)
	// ListByTypeSince returns records of one type observed after since, oldest first.
	ListByTypeSince(ctx context.Context, typ models.ContextType, since time.Time) ([]*models.AIContext, error)
}

// AIContextRepo implements AIContextStore on SQLite.
type AIContextRepo struct {
	db *sql.DB
}

// NewAIContextRepo creates a new AIContextRepo.
func NewAIContextRepo(db *sql.DB) *AIContextRepo {
	return &AIContextRepo{db: db}
}

const contextColumns = "id, user_id, type, content, relevance, metadata, timestamp, embedding"

func (r *AIContextRepo) Upsert(ctx context.Context, c *models.AIContext) error {
	meta := c.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metadata, err := encodeJSON(meta)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ai_contexts (`+contextColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 content = excluded.content, relevance = excluded.relevance,
		 metadata = excluded.metadata, embedding = excluded.embedding`,
		c.ID, c.UserID, string(c.Type), c.Content, c.Relevance, metadata, toMillis(c.Timestamp), encodeVector(c.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert ai context: %w", err)
	}
	return nil
}

func (r *AIContextRepo) List(ctx context.Context) ([]*models.AIContext, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+contextColumns+" FROM ai_contexts ORDER BY timestamp DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query ai contexts: %w", err)
	}
	return collect(rows, scanAIContext)
}

func (r *AIContextRepo) ListByTypeSince(ctx context.Context, typ models.ContextType, since time.Time) ([]*models.AIContext, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contextColumns+" FROM ai_contexts WHERE type = ? AND timestamp > ? ORDER BY timestamp, id",
		string(typ), toMillis(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ai contexts by type: %w", err)
	}
	return collect(rows, scanAIContext)
}

func scanAIContext(s rowScanner) (*models.AIContext, error) {
	var (
		c                   models.AIContext
		typ                 string
		metadata, embedding string
		ts                  int64
	)
	err := s.Scan(&c.ID, &c.UserID, &typ, &c.Content, &c.Relevance, &metadata, &ts, &embedding)
	if err != nil {
		return nil, err
	}

	c.Type = models.ContextType(typ)
	c.Timestamp = fromMillis(ts)
	c.Metadata = map[string]string{}
	if err := decodeJSON(metadata, &c.Metadata); err != nil {
		return nil, err
	}
	if c.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &c, nil
}
