package itemstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insig8-ai/internal/models"
	"insig8-ai/internal/storage"
)

// Repos holds the durable collection behind each actor.
type Repos struct {
	Commitments storage.CommitmentStore
	Meetings    storage.MeetingStore
	ActionItems storage.ActionItemStore
	Clipboard   storage.ClipboardStore
	Screens     storage.ScreenCaptureStore
	Contexts    storage.AIContextStore
	Users       storage.UserStore
}

// SQLiteRepos builds Repos over a migrated SQLite database.
func SQLiteRepos(db *sql.DB) Repos {
	return Repos{
		Commitments: storage.NewCommitmentRepo(db),
		Meetings:    storage.NewMeetingRepo(db),
		ActionItems: storage.NewActionItemRepo(db),
		Clipboard:   storage.NewClipboardRepo(db),
		Screens:     storage.NewScreenCaptureRepo(db),
		Contexts:    storage.NewAIContextRepo(db),
		Users:       storage.NewUserRepo(db),
	}
}

// Store is the single writer for every entity collection.
// Operations on one type are totally ordered; operations on different
// types run concurrently.
type Store struct {
	repos Repos

	commitments *actor
	meetings    *actor
	actionItems *actor
	clipboard   *actor
	screens     *actor
	contexts    *actor
	users       *actor
}

// New starts one actor per entity type.
func New(repos Repos) *Store {
	return &Store{
		repos:       repos,
		commitments: newActor(string(models.TypeCommitment)),
		meetings:    newActor(string(models.TypeMeeting)),
		actionItems: newActor(string(models.TypeActionItem)),
		clipboard:   newActor(string(models.TypeClipboard)),
		screens:     newActor(string(models.TypeScreenCapture)),
		contexts:    newActor(string(models.TypeAIContext)),
		users:       newActor("user"),
	}
}

// Close stops every actor. Queued operations that have not started fail with ErrClosed.
func (s *Store) Close() {
	for _, a := range []*actor{s.commitments, s.meetings, s.actionItems, s.clipboard, s.screens, s.contexts, s.users} {
		a.close()
	}
}

// Save routes a vector-bearing item to the actor that owns its type.
func (s *Store) Save(ctx context.Context, item models.StorableItem) error {
	switch it := item.(type) {
	case *models.Commitment:
		return s.SaveCommitment(ctx, it)
	case *models.MeetingSession:
		return s.SaveMeeting(ctx, it)
	case *models.ActionItem:
		return s.SaveActionItem(ctx, it)
	case *models.ClipboardItem:
		return s.SaveClipboardItem(ctx, it)
	case *models.ScreenCapture:
		return s.SaveScreenCapture(ctx, it)
	case *models.AIContext:
		return s.SaveAIContext(ctx, it)
	default:
		return fmt.Errorf("unsupported item type %T", item)
	}
}

// Items returns every stored item of one type.
func (s *Store) Items(ctx context.Context, typ models.EntityType) ([]models.StorableItem, error) {
	switch typ {
	case models.TypeCommitment:
		list, err := s.ListCommitments(ctx)
		return asItems(list, err)
	case models.TypeMeeting:
		list, err := s.ListMeetings(ctx, 0)
		return asItems(list, err)
	case models.TypeActionItem:
		list, err := s.ListActionItems(ctx)
		return asItems(list, err)
	case models.TypeClipboard:
		list, err := s.ListClipboardItems(ctx, 0)
		return asItems(list, err)
	case models.TypeScreenCapture:
		list, err := s.ListScreenCaptures(ctx, 0)
		return asItems(list, err)
	case models.TypeAIContext:
		list, err := s.ListAIContexts(ctx)
		return asItems(list, err)
	default:
		return nil, fmt.Errorf("unsupported entity type %q", typ)
	}
}

func asItems[T models.StorableItem](list []T, err error) ([]models.StorableItem, error) {
	if err != nil {
		return nil, err
	}
	out := make([]models.StorableItem, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out, nil
}

// Commitments

func (s *Store) SaveCommitment(ctx context.Context, c *models.Commitment) error {
	return exec(ctx, s.commitments, func(ctx context.Context) error {
		return s.repos.Commitments.Upsert(ctx, c)
	})
}

func (s *Store) GetCommitment(ctx context.Context, id string) (*models.Commitment, error) {
	return call(ctx, s.commitments, func(ctx context.Context) (*models.Commitment, error) {
		return s.repos.Commitments.Get(ctx, id)
	})
}

func (s *Store) ListCommitments(ctx context.Context) ([]*models.Commitment, error) {
	return call(ctx, s.commitments, func(ctx context.Context) ([]*models.Commitment, error) {
		return s.repos.Commitments.List(ctx)
	})
}

func (s *Store) ListCommitmentsByStatus(ctx context.Context, statuses ...models.CommitmentStatus) ([]*models.Commitment, error) {
	return call(ctx, s.commitments, func(ctx context.Context) ([]*models.Commitment, error) {
		return s.repos.Commitments.ListByStatus(ctx, statuses...)
	})
}

// UpdateCommitment loads, mutates and stores a commitment as one operation.
// If fn returns an error nothing is written. UpdatedAt is set on success.
func (s *Store) UpdateCommitment(ctx context.Context, id string, fn func(*models.Commitment) error) (*models.Commitment, error) {
	return call(ctx, s.commitments, func(ctx context.Context) (*models.Commitment, error) {
		c, err := s.repos.Commitments.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		c.UpdatedAt = time.Now().UTC()
		if err := s.repos.Commitments.Upsert(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Meetings

func (s *Store) SaveMeeting(ctx context.Context, m *models.MeetingSession) error {
	return exec(ctx, s.meetings, func(ctx context.Context) error {
		return s.repos.Meetings.Upsert(ctx, m)
	})
}

func (s *Store) GetMeeting(ctx context.Context, id string) (*models.MeetingSession, error) {
	return call(ctx, s.meetings, func(ctx context.Context) (*models.MeetingSession, error) {
		return s.repos.Meetings.Get(ctx, id)
	})
}

func (s *Store) ListMeetings(ctx context.Context, limit int) ([]*models.MeetingSession, error) {
	return call(ctx, s.meetings, func(ctx context.Context) ([]*models.MeetingSession, error) {
		return s.repos.Meetings.List(ctx, limit)
	})
}

// Action items

func (s *Store) SaveActionItem(ctx context.Context, a *models.ActionItem) error {
	return exec(ctx, s.actionItems, func(ctx context.Context) error {
		return s.repos.ActionItems.Upsert(ctx, a)
	})
}

func (s *Store) ListActionItems(ctx context.Context) ([]*models.ActionItem, error) {
	return call(ctx, s.actionItems, func(ctx context.Context) ([]*models.ActionItem, error) {
		return s.repos.ActionItems.List(ctx)
	})
}

func (s *Store) ListActionItemsByMeeting(ctx context.Context, meetingID string) ([]*models.ActionItem, error) {
	return call(ctx, s.actionItems, func(ctx context.Context) ([]*models.ActionItem, error) {
		return s.repos.ActionItems.ListByMeeting(ctx, meetingID)
	})
}

// ReplaceActionItems swaps the action items owned by a meeting.
func (s *Store) ReplaceActionItems(ctx context.Context, meetingID string, items []*models.ActionItem) error {
	return exec(ctx, s.actionItems, func(ctx context.Context) error {
		return s.repos.ActionItems.ReplaceForMeeting(ctx, meetingID, items)
	})
}

// Clipboard

func (s *Store) SaveClipboardItem(ctx context.Context, c *models.ClipboardItem) error {
	return exec(ctx, s.clipboard, func(ctx context.Context) error {
		return s.repos.Clipboard.Upsert(ctx, c)
	})
}

func (s *Store) ListClipboardItems(ctx context.Context, limit int) ([]*models.ClipboardItem, error) {
	return call(ctx, s.clipboard, func(ctx context.Context) ([]*models.ClipboardItem, error) {
		return s.repos.Clipboard.List(ctx, limit)
	})
}

func (s *Store) ListClipboardSince(ctx context.Context, since time.Time) ([]*models.ClipboardItem, error) {
	return call(ctx, s.clipboard, func(ctx context.Context) ([]*models.ClipboardItem, error) {
		return s.repos.Clipboard.ListSince(ctx, since)
	})
}

// Screen captures

func (s *Store) SaveScreenCapture(ctx context.Context, c *models.ScreenCapture) error {
	return exec(ctx, s.screens, func(ctx context.Context) error {
		return s.repos.Screens.Upsert(ctx, c)
	})
}

func (s *Store) ListScreenCaptures(ctx context.Context, limit int) ([]*models.ScreenCapture, error) {
	return call(ctx, s.screens, func(ctx context.Context) ([]*models.ScreenCapture, error) {
		return s.repos.Screens.List(ctx, limit)
	})
}

func (s *Store) ListScreenCapturesSince(ctx context.Context, since time.Time) ([]*models.ScreenCapture, error) {
	return call(ctx, s.screens, func(ctx context.Context) ([]*models.ScreenCapture, error) {
		return s.repos.Screens.ListSince(ctx, since)
	})
}

// AI contexts

func (s *Store) SaveAIContext(ctx context.Context, c *models.AIContext) error {
	return exec(ctx, s.contexts, func(ctx context.Context) error {
		return s.repos.Contexts.Upsert(ctx, c)
	})
}

func (s *Store) ListAIContexts(ctx context.Context) ([]*models.AIContext, error) {
	return call(ctx, s.contexts, func(ctx context.Context) ([]*models.AIContext, error) {
		return s.repos.Contexts.List(ctx)
	})
}

// ListMessagesSince returns observed messages recorded after since, oldest first.
func (s *Store) ListMessagesSince(ctx context.Context, since time.Time) ([]*models.AIContext, error) {
	return call(ctx, s.contexts, func(ctx context.Context) ([]*models.AIContext, error) {
		return s.repos.Contexts.ListByTypeSince(ctx, models.ContextMessage, since)
	})
}

// Users

// LocalUser returns the local user, creating it on first use.
func (s *Store) LocalUser(ctx context.Context, displayName string) (*models.User, error) {
	return call(ctx, s.users, func(ctx context.Context) (*models.User, error) {
		return s.repos.Users.GetOrCreate(ctx, displayName)
	})
}
