package storage

import (
	"context"
	"database/sql"
	"fmt"

	"insig8-ai/internal/models"
)

// ActionItemStore defines the interface for action item storage operations.
type ActionItemStore interface {
	// Upsert inserts an action item or replaces the stored row with the same ID.
	// The owning meeting must already exist.
	Upsert(ctx context.Context, a *models.ActionItem) error
	// Get returns the action item with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*models.ActionItem, error)
	// List returns every action item, newest first.
	List(ctx context.Context) ([]*models.ActionItem, error)
	// ListByMeeting returns the action items owned by a meeting in creation order.
	ListByMeeting(ctx context.Context, meetingID string) ([]*models.ActionItem, error)
	// ReplaceForMeeting atomically swaps a meeting's action items for items.
	ReplaceForMeeting(ctx context.Context, meetingID string, items []*models.ActionItem) error
}

// ActionItemRepo implements ActionItemStore on SQLite.
type ActionItemRepo struct {
	db *sql.DB
}

// NewActionItemRepo creates a new ActionItemRepo.
func NewActionItemRepo(db *sql.DB) *ActionItemRepo {
	return &ActionItemRepo{db: db}
}

const actionItemColumns = "id, meeting_id, description, assignee, due_date, status, priority, created_at, updated_at, embedding"

const upsertActionItem = `INSERT INTO action_items (` + actionItemColumns + `)
	 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	 ON CONFLICT (id) DO UPDATE SET
	 meeting_id = excluded.meeting_id, description = excluded.description, assignee = excluded.assignee,
	 due_date = excluded.due_date, status = excluded.status, priority = excluded.priority,
	 updated_at = excluded.updated_at, embedding = excluded.embedding`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ActionItemRepo) Upsert(ctx context.Context, a *models.ActionItem) error {
	return upsertActionItemWith(ctx, r.db, a)
}

func upsertActionItemWith(ctx context.Context, e execer, a *models.ActionItem) error {
	_, err := e.ExecContext(ctx, upsertActionItem,
		a.ID, a.MeetingID, a.Description, a.Assignee, nullMillis(a.DueDate), string(a.Status),
		string(a.Priority), toMillis(a.CreatedAt), toMillis(a.UpdatedAt), encodeVector(a.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert action item: %w", err)
	}
	return nil
}

func (r *ActionItemRepo) Get(ctx context.Context, id string) (*models.ActionItem, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+actionItemColumns+" FROM action_items WHERE id = ?", id)
	a, err := scanActionItem(row)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

func (r *ActionItemRepo) List(ctx context.Context) ([]*models.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+actionItemColumns+" FROM action_items ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query action items: %w", err)
	}
	return collect(rows, scanActionItem)
}

func (r *ActionItemRepo) ListByMeeting(ctx context.Context, meetingID string) ([]*models.ActionItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+actionItemColumns+" FROM action_items WHERE meeting_id = ? ORDER BY created_at, rowid",
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query action items by meeting: %w", err)
	}
	return collect(rows, scanActionItem)
}

func (r *ActionItemRepo) ReplaceForMeeting(ctx context.Context, meetingID string, items []*models.ActionItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM action_items WHERE meeting_id = ?", meetingID); err != nil {
		return fmt.Errorf("failed to delete action items: %w", err)
	}
	for _, a := range items {
		a.MeetingID = meetingID
		if err := upsertActionItemWith(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit action items: %w", err)
	}
	return nil
}

func scanActionItem(s rowScanner) (*models.ActionItem, error) {
	var (
		a                    models.ActionItem
		status, priority     string
		due                  sql.NullInt64
		createdAt, updatedAt int64
		embedding            string
	)
	err := s.Scan(&a.ID, &a.MeetingID, &a.Description, &a.Assignee, &due, &status, &priority,
		&createdAt, &updatedAt, &embedding)
	if err != nil {
		return nil, err
	}

	a.Status = models.ActionItemStatus(status)
	a.Priority = models.Priority(priority)
	a.DueDate = fromNullMillis(due)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	if a.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &a, nil
}
