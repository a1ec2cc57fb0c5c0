package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"insig8-ai/internal/models"
)

// CommitmentStore defines the interface for commitment storage operations.
type CommitmentStore interface {
	// Upsert inserts a commitment or replaces the stored row with the same ID.
	Upsert(ctx context.Context, c *models.Commitment) error
	// Get returns the commitment with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Commitment, error)
	// List returns every commitment, newest first.
	List(ctx context.Context) ([]*models.Commitment, error)
	// ListByStatus returns commitments in any of the given statuses, newest first.
	ListByStatus(ctx context.Context, statuses ...models.CommitmentStatus) ([]*models.Commitment, error)
}

// CommitmentRepo implements CommitmentStore on SQLite.
type CommitmentRepo struct {
	db *sql.DB
}

// NewCommitmentRepo creates a new CommitmentRepo.
func NewCommitmentRepo(db *sql.DB) *CommitmentRepo {
	return &CommitmentRepo{db: db}
}

const commitmentColumns = "id, description, source, recipient, due_date, status, priority, urgency_score, context, related_messages, created_at, updated_at, embedding"

func (r *CommitmentRepo) Upsert(ctx context.Context, c *models.Commitment) error {
	related, err := encodeJSON(nonNilStrings(c.RelatedMessages))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO commitments (`+commitmentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 description = excluded.description, source = excluded.source, recipient = excluded.recipient,
		 due_date = excluded.due_date, status = excluded.status, priority = excluded.priority,
		 urgency_score = excluded.urgency_score, context = excluded.context,
		 related_messages = excluded.related_messages, updated_at = excluded.updated_at,
		 embedding = excluded.embedding`,
		c.ID, c.Description, c.Source.String(), c.Recipient, nullMillis(c.DueDate), string(c.Status),
		string(c.Priority), c.UrgencyScore, c.Context, related,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt), encodeVector(c.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert commitment: %w", err)
	}
	return nil
}

func (r *CommitmentRepo) Get(ctx context.Context, id string) (*models.Commitment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+commitmentColumns+" FROM commitments WHERE id = ?", id)
	c, err := scanCommitment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *CommitmentRepo) List(ctx context.Context) ([]*models.Commitment, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+commitmentColumns+" FROM commitments ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments: %w", err)
	}
	return collect(rows, scanCommitment)
}

func (r *CommitmentRepo) ListByStatus(ctx context.Context, statuses ...models.CommitmentStatus) ([]*models.Commitment, error) {
	if len(statuses) == 0 {
		return []*models.Commitment{}, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, s := range statuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commitmentColumns+" FROM commitments WHERE status IN ("+strings.Join(placeholders, ", ")+") ORDER BY created_at DESC, id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments by status: %w", err)
	}
	return collect(rows, scanCommitment)
}

func scanCommitment(s rowScanner) (*models.Commitment, error) {
	var (
		c                    models.Commitment
		source, status       string
		priority, related    string
		embedding            string
		due                  sql.NullInt64
		createdAt, updatedAt int64
	)
	err := s.Scan(&c.ID, &c.Description, &source, &c.Recipient, &due, &status, &priority,
		&c.UrgencyScore, &c.Context, &related, &createdAt, &updatedAt, &embedding)
	if err != nil {
		return nil, err
	}

	if c.Source, err = models.ParseCommitmentSource(source); err != nil {
		return nil, err
	}
	c.Status = models.CommitmentStatus(status)
	c.Priority = models.Priority(priority)
	c.DueDate = fromNullMillis(due)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	c.RelatedMessages = []string{}
	if err := decodeJSON(related, &c.RelatedMessages); err != nil {
		return nil, err
	}
	if c.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &c, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
