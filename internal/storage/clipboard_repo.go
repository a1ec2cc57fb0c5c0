package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insig8-ai/internal/models"
)

// ClipboardStore defines the interface for clipboard history storage operations.
type ClipboardStore interface {
	// Upsert inserts a clipboard item or replaces the stored row with the same ID.
	Upsert(ctx context.Context, c *models.ClipboardItem) error
	// List returns clipboard items, newest first. A limit <= 0 returns every item.
	List(ctx context.Context, limit int) ([]*models.ClipboardItem, error)
	// ListSince returns items observed at or after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]*models.ClipboardItem, error)
}

// ClipboardRepo implements ClipboardStore on SQLite.
type ClipboardRepo struct {
	db *sql.DB
}

// NewClipboardRepo creates a new ClipboardRepo.
func NewClipboardRepo(db *sql.DB) *ClipboardRepo {
	return &ClipboardRepo{db: db}
}

const clipboardColumns = "id, content, content_type, timestamp, source_application, embedding"

func (r *ClipboardRepo) Upsert(ctx context.Context, c *models.ClipboardItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clipboard_items (`+clipboardColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET embedding = excluded.embedding`,
		c.ID, c.Content, string(c.ContentType), toMillis(c.Timestamp), c.SourceApplication, encodeVector(c.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert clipboard item: %w", err)
	}
	return nil
}

func (r *ClipboardRepo) List(ctx context.Context, limit int) ([]*models.ClipboardItem, error) {
	query := "SELECT " + clipboardColumns + " FROM clipboard_items ORDER BY timestamp DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clipboard items: %w", err)
	}
	return collect(rows, scanClipboardItem)
}

func (r *ClipboardRepo) ListSince(ctx context.Context, since time.Time) ([]*models.ClipboardItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clipboardColumns+" FROM clipboard_items WHERE timestamp >= ? ORDER BY timestamp DESC, id",
		toMillis(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query clipboard items since: %w", err)
	}
	return collect(rows, scanClipboardItem)
}

func scanClipboardItem(s rowScanner) (*models.ClipboardItem, error) {
	var (
		c           models.ClipboardItem
		contentType string
		ts          int64
		embedding   string
	)
	err := s.Scan(&c.ID, &c.Content, &contentType, &ts, &c.SourceApplication, &embedding)
	if err != nil {
		return nil, err
	}

	c.ContentType = models.ContentType(contentType)
	c.Timestamp = fromMillis(ts)
	if c.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &c, nil
}
