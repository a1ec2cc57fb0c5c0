package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"insig8-ai/internal/models"
)

// UserStore defines the interface for local user storage operations.
type UserStore interface {
	// GetOrCreate returns the single local user, creating it with displayName on first use.
	GetOrCreate(ctx context.Context, displayName string) (*models.User, error)
}

// UserRepo implements UserStore on SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetOrCreate(ctx context.Context, displayName string) (*models.User, error) {
	var (
		u         models.User
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, display_name, created_at FROM users ORDER BY created_at LIMIT 1",
	).Scan(&u.ID, &u.DisplayName, &createdAt)
	if err == nil {
		u.CreatedAt = fromMillis(createdAt)
		return &u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	u = models.User{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, display_name, created_at) VALUES (?, ?, ?)",
		u.ID, u.DisplayName, toMillis(u.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}
