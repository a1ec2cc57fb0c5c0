package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insig8-ai/internal/models"
)

// ScreenCaptureStore defines the interface for screen capture storage operations.
type ScreenCaptureStore interface {
	// Upsert inserts a capture or replaces the stored row with the same ID.
	Upsert(ctx context.Context, c *models.ScreenCapture) error
	// Get returns the capture with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*models.ScreenCapture, error)
	// List returns captures newest first without image data. A limit <= 0 returns every capture.
	List(ctx context.Context, limit int) ([]*models.ScreenCapture, error)
	// ListSince returns captures taken at or after since, oldest first, without image data.
	ListSince(ctx context.Context, since time.Time) ([]*models.ScreenCapture, error)
}

// ScreenCaptureRepo implements ScreenCaptureStore on SQLite.
type ScreenCaptureRepo struct {
	db *sql.DB
}

// NewScreenCaptureRepo creates a new ScreenCaptureRepo.
func NewScreenCaptureRepo(db *sql.DB) *ScreenCaptureRepo {
	return &ScreenCaptureRepo{db: db}
}

// Image bytes are only loaded by Get.
const screenColumns = "id, timestamp, content_hash, ocr_text, application, context, embedding"

func (r *ScreenCaptureRepo) Upsert(ctx context.Context, c *models.ScreenCapture) error {
	screenCtx, err := encodeJSON(c.Context)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO screen_captures (id, timestamp, image_data, content_hash, ocr_text, application, context, embedding)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 ocr_text = excluded.ocr_text, application = excluded.application,
		 context = excluded.context, embedding = excluded.embedding`,
		c.ID, toMillis(c.Timestamp), c.ImageData, c.ContentHash, c.OCRText, c.Application, screenCtx, encodeVector(c.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert screen capture: %w", err)
	}
	return nil
}

func (r *ScreenCaptureRepo) Get(ctx context.Context, id string) (*models.ScreenCapture, error) {
	var image []byte
	row := r.db.QueryRowContext(ctx, "SELECT "+screenColumns+", image_data FROM screen_captures WHERE id = ?", id)
	c, err := scanScreenCapture(row, &image)
	if err != nil {
		return nil, notFound(err)
	}
	c.ImageData = image
	return c, nil
}

func (r *ScreenCaptureRepo) List(ctx context.Context, limit int) ([]*models.ScreenCapture, error) {
	query := "SELECT " + screenColumns + " FROM screen_captures ORDER BY timestamp DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query screen captures: %w", err)
	}
	return collect(rows, func(s rowScanner) (*models.ScreenCapture, error) {
		return scanScreenCapture(s)
	})
}

func (r *ScreenCaptureRepo) ListSince(ctx context.Context, since time.Time) ([]*models.ScreenCapture, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+screenColumns+" FROM screen_captures WHERE timestamp >= ? ORDER BY timestamp, id",
		toMillis(since),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query screen captures since: %w", err)
	}
	return collect(rows, func(s rowScanner) (*models.ScreenCapture, error) {
		return scanScreenCapture(s)
	})
}

func scanScreenCapture(s rowScanner, extra ...any) (*models.ScreenCapture, error) {
	var (
		c                    models.ScreenCapture
		ts                   int64
		screenCtx, embedding string
	)
	dest := append([]any{&c.ID, &ts, &c.ContentHash, &c.OCRText, &c.Application, &screenCtx, &embedding}, extra...)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	c.Timestamp = fromMillis(ts)
	if err := decodeJSON(screenCtx, &c.Context); err != nil {
		return nil, err
	}
	var err error
	if c.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &c, nil
}
