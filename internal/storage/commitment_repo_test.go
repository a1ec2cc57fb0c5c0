package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"insig8-ai/internal/models"
	"insig8-ai/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestCommitmentRepo_UpsertAndGet(t *testing.T) {
	repo := NewCommitmentRepo(newTestDB(t))
	ctx := context.Background()

	created := time.UnixMilli(1_700_000_000_000).UTC()
	due := created.Add(24 * time.Hour)
	c := &models.Commitment{
		ID:              "c-1",
		Description:     "Send the quarterly report",
		Source:          models.SlackSource("C123"),
		Recipient:       "alice",
		DueDate:         &due,
		Status:          models.StatusPending,
		Priority:        models.PriorityHigh,
		UrgencyScore:    0.7,
		Context:         "thread about reports",
		RelatedMessages: []string{"can you send the report?"},
		CreatedAt:       created,
		UpdatedAt:       created,
		Embedding:       []float32{0.1, 0.2, 0.3},
	}

	if err := repo.Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := repo.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Description != c.Description {
		t.Errorf("Get() Description = %v, want %v", got.Description, c.Description)
	}
	if got.Source != c.Source {
		t.Errorf("Get() Source = %v, want %v", got.Source, c.Source)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("Get() DueDate = %v, want %v", got.DueDate, due)
	}
	if got.Priority != models.PriorityHigh {
		t.Errorf("Get() Priority = %v, want %v", got.Priority, models.PriorityHigh)
	}
	if len(got.RelatedMessages) != 1 {
		t.Errorf("Get() RelatedMessages = %v, want 1 entry", got.RelatedMessages)
	}
	if len(got.Embedding) != 3 || got.Embedding[2] != 0.3 {
		t.Errorf("Get() Embedding = %v, want %v", got.Embedding, c.Embedding)
	}

	c.Status = models.StatusDismissed
	c.UpdatedAt = created.Add(time.Hour)
	if err := repo.Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert() second call error = %v", err)
	}
	got, err = repo.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != models.StatusDismissed {
		t.Errorf("Get() Status = %v, want %v", got.Status, models.StatusDismissed)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("Get() CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestCommitmentRepo_GetNotFound(t *testing.T) {
	repo := NewCommitmentRepo(newTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Get() error = %v, want service.ErrNotFound", err)
	}
}

func TestCommitmentRepo_ListByStatus(t *testing.T) {
	repo := NewCommitmentRepo(newTestDB(t))
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000).UTC()

	statuses := []models.CommitmentStatus{
		models.StatusPending,
		models.StatusCompleted,
		models.StatusSnoozed,
		models.StatusDismissed,
	}
	for i, s := range statuses {
		c := &models.Commitment{
			ID:          string(s),
			Description: "commitment " + string(s),
			Source:      models.ManualSource(),
			Status:      s,
			Priority:    models.PriorityMedium,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:   base,
		}
		if err := repo.Upsert(ctx, c); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	tests := []struct {
		name     string
		statuses []models.CommitmentStatus
		wantIDs  []string
	}{
		{
			name:     "active statuses newest first",
			statuses: []models.CommitmentStatus{models.StatusPending, models.StatusSnoozed},
			wantIDs:  []string{"snoozed", "pending"},
		},
		{
			name:     "single status",
			statuses: []models.CommitmentStatus{models.StatusCompleted},
			wantIDs:  []string{"completed"},
		},
		{
			name:     "no statuses",
			statuses: nil,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListByStatus(ctx, tt.statuses...)
			if err != nil {
				t.Fatalf("ListByStatus() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ListByStatus() returned %d items, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("ListByStatus()[%d].ID = %v, want %v", i, got[i].ID, id)
				}
			}
		})
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != len(statuses) {
		t.Errorf("List() returned %d items, want %d", len(all), len(statuses))
	}
}
