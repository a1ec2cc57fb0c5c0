package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"insig8-ai/internal/models"
)

// MeetingStore defines the interface for meeting session storage operations.
type MeetingStore interface {
	// Upsert inserts a meeting session or replaces the stored row with the same ID.
	Upsert(ctx context.Context, m *models.MeetingSession) error
	// Get returns the meeting with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*models.MeetingSession, error)
	// List returns meetings ordered by start time, newest first.
	// A limit <= 0 returns every meeting.
	List(ctx context.Context, limit int) ([]*models.MeetingSession, error)
}

// MeetingRepo implements MeetingStore on SQLite.
type MeetingRepo struct {
	db *sql.DB
}

// NewMeetingRepo creates a new MeetingRepo.
func NewMeetingRepo(db *sql.DB) *MeetingRepo {
	return &MeetingRepo{db: db}
}

const meetingColumns = "id, title, start_time, end_time, participants, transcript, summary, action_item_ids, audio_path, audio_format, audio_duration_ms, embedding"

func (r *MeetingRepo) Upsert(ctx context.Context, m *models.MeetingSession) error {
	participants, err := encodeJSON(nonNilStrings(m.Participants))
	if err != nil {
		return err
	}
	actionItems, err := encodeJSON(nonNilStrings(m.ActionItemIDs))
	if err != nil {
		return err
	}

	var audioPath, audioFormat sql.NullString
	var audioDuration sql.NullInt64
	if m.AudioRecording != nil {
		audioPath = sql.NullString{String: m.AudioRecording.Path, Valid: true}
		audioFormat = sql.NullString{String: m.AudioRecording.Format, Valid: true}
		audioDuration = sql.NullInt64{Int64: m.AudioRecording.Duration.Milliseconds(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meetings (`+meetingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 title = excluded.title, end_time = excluded.end_time, participants = excluded.participants,
		 transcript = excluded.transcript, summary = excluded.summary,
		 action_item_ids = excluded.action_item_ids, audio_path = excluded.audio_path,
		 audio_format = excluded.audio_format, audio_duration_ms = excluded.audio_duration_ms,
		 embedding = excluded.embedding`,
		m.ID, m.Title, toMillis(m.StartTime), nullMillis(m.EndTime), participants, m.Transcript,
		m.Summary, actionItems, audioPath, audioFormat, audioDuration, encodeVector(m.Embedding),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepo) Get(ctx context.Context, id string) (*models.MeetingSession, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+meetingColumns+" FROM meetings WHERE id = ?", id)
	m, err := scanMeeting(row)
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

func (r *MeetingRepo) List(ctx context.Context, limit int) ([]*models.MeetingSession, error) {
	query := "SELECT " + meetingColumns + " FROM meetings ORDER BY start_time DESC, id"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	return collect(rows, scanMeeting)
}

func scanMeeting(s rowScanner) (*models.MeetingSession, error) {
	var (
		m                       models.MeetingSession
		start                   int64
		end                     sql.NullInt64
		participants, actionIDs string
		audioPath, audioFormat  sql.NullString
		audioDuration           sql.NullInt64
		embedding               string
	)
	err := s.Scan(&m.ID, &m.Title, &start, &end, &participants, &m.Transcript, &m.Summary,
		&actionIDs, &audioPath, &audioFormat, &audioDuration, &embedding)
	if err != nil {
		return nil, err
	}

	m.StartTime = fromMillis(start)
	m.EndTime = fromNullMillis(end)
	m.Participants = []string{}
	m.ActionItemIDs = []string{}
	if err := decodeJSON(participants, &m.Participants); err != nil {
		return nil, err
	}
	if err := decodeJSON(actionIDs, &m.ActionItemIDs); err != nil {
		return nil, err
	}
	if audioPath.Valid {
		m.AudioRecording = &models.AudioRecording{
			Path:     audioPath.String,
			Format:   audioFormat.String,
			Duration: time.Duration(audioDuration.Int64) * time.Millisecond,
		}
	}
	if m.Embedding, err = decodeVector(embedding); err != nil {
		return nil, err
	}
	return &m, nil
}
