// Package meeting records meetings, extracts action items while they run
// and finalizes them with a summary when recording stops.
package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"insig8-ai/internal/commitment"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
	"insig8-ai/internal/platform"
	"insig8-ai/internal/service"
)

const (
	// DefaultExtractInterval is how often the transcript delta is scanned.
	DefaultExtractInterval = 30 * time.Second
	// minDelta is the number of new transcript characters that must be
	// exceeded before an incremental extraction runs.
	minDelta = 100
)

// Store is the meeting storage the processor needs.
type Store interface {
	SaveMeeting(ctx context.Context, m *models.MeetingSession) error
	ListMeetings(ctx context.Context, limit int) ([]*models.MeetingSession, error)
	ReplaceActionItems(ctx context.Context, meetingID string, items []*models.ActionItem) error
}

// Indexer embeds and stores items.
type Indexer interface {
	Index(ctx context.Context, item models.StorableItem) error
	Unindex(ctx context.Context, typ models.EntityType, ids []string) error
}

// Options configures the optional collaborators of a Processor.
type Options struct {
	Recorder        platform.AudioRecorder
	Transcriber     platform.LiveTranscriber
	FileTranscriber FileTranscriber
	RecordingsDir   string
	ExtractInterval time.Duration
}

// Processor drives one meeting recording at a time.
type Processor struct {
	store      Store
	index      Indexer
	extractor  Extractor
	summarizer Summarizer
	opts       Options
	logger     *slog.Logger
	now        func() time.Time

	mu     sync.Mutex
	active *recording
}

type recording struct {
	meeting   *models.MeetingSession
	processed int
	audio     bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewProcessor creates a processor. Recorder and transcribers are optional.
func NewProcessor(store Store, index Indexer, extractor Extractor, summarizer Summarizer, opts Options, logger *slog.Logger) *Processor {
	if opts.ExtractInterval <= 0 {
		opts.ExtractInterval = DefaultExtractInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		store:      store,
		index:      index,
		extractor:  extractor,
		summarizer: summarizer,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Recording reports whether a meeting is being recorded.
func (p *Processor) Recording() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != nil
}

// Current returns a snapshot of the meeting being recorded, or nil.
func (p *Processor) Current() *models.MeetingSession {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return nil
	}
	return snapshot(p.active.meeting)
}

// Start begins recording a meeting. It fails with ErrAlreadyRecording when a
// recording is in progress. A missing microphone or transcriber degrades the
// recording; a denied microphone permission fails it.
func (p *Processor) Start(ctx context.Context, title string) (*models.MeetingSession, error) {
	logger := contextutil.LoggerOr(ctx, p.logger)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		return nil, service.ErrAlreadyRecording
	}

	start := p.now().UTC()
	if strings.TrimSpace(title) == "" {
		title = "Meeting " + start.Local().Format("Jan 2 15:04")
	}
	m := &models.MeetingSession{
		ID:            uuid.New().String(),
		Title:         strings.TrimSpace(title),
		StartTime:     start,
		Participants:  []string{},
		ActionItemIDs: []string{},
	}
	rec := &recording{meeting: m}

	if p.opts.Recorder != nil {
		path := filepath.Join(p.opts.RecordingsDir, m.ID+".wav")
		if err := p.opts.Recorder.Start(ctx, path); err != nil {
			if errors.Is(err, service.ErrPermissionDenied) {
				return nil, fmt.Errorf("failed to start audio capture: %w", err)
			}
			logger.Warn("audio capture unavailable", "error", err)
		} else {
			rec.audio = true
		}
	}

	if err := p.store.SaveMeeting(ctx, m); err != nil {
		p.stopAudio(ctx, rec)
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	rec.cancel = cancel
	if p.opts.Transcriber != nil {
		segments, err := p.opts.Transcriber.Transcribe(runCtx)
		if err != nil {
			logger.Warn("live transcription unavailable", "error", err)
		} else {
			rec.wg.Add(1)
			go p.consume(rec, segments)
		}
	}
	rec.wg.Add(1)
	go p.extractLoop(runCtx, rec)

	p.active = rec
	logger.Info("meeting recording started", "meeting_id", m.ID, "title", m.Title, "audio", rec.audio)
	return snapshot(m), nil
}

// AppendTranscript adds a line to the active meeting's transcript. A
// non-empty speaker is written as a "Speaker: text" prefix.
func (p *Processor) AppendTranscript(speaker, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == nil {
		return service.ErrNotRecording
	}
	appendLine(p.active.meeting, speaker, text)
	return nil
}

func appendLine(m *models.MeetingSession, speaker, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if speaker = strings.TrimSpace(speaker); speaker != "" {
		text = speaker + ": " + text
	}
	if m.Transcript != "" {
		m.Transcript += "\n"
	}
	m.Transcript += text
}

func (p *Processor) consume(rec *recording, segments <-chan platform.Segment) {
	defer rec.wg.Done()
	for seg := range segments {
		p.mu.Lock()
		appendLine(rec.meeting, seg.Speaker, seg.Text)
		p.mu.Unlock()
	}
}

func (p *Processor) extractLoop(ctx context.Context, rec *recording) {
	defer rec.wg.Done()
	ticker := time.NewTicker(p.opts.ExtractInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.extractDelta(context.WithoutCancel(ctx), rec)
		}
	}
}

// extractDelta runs action item extraction over the transcript written
// since the last run when more than minDelta characters were added. The
// items are appended to the meeting.
func (p *Processor) extractDelta(ctx context.Context, rec *recording) {
	p.mu.Lock()
	transcript := rec.meeting.Transcript
	if len(transcript)-rec.processed <= minDelta {
		p.mu.Unlock()
		return
	}
	delta := transcript[rec.processed:]
	rec.processed = len(transcript)
	meetingID := rec.meeting.ID
	p.mu.Unlock()

	extracted, err := p.extractor.ExtractActionItems(ctx, delta)
	if err != nil {
		p.logger.Warn("incremental action item extraction failed", "meeting_id", meetingID, "error", err)
		return
	}
	items := p.actionItems(ctx, meetingID, extracted)
	if len(items) == 0 {
		return
	}

	p.mu.Lock()
	for _, it := range items {
		rec.meeting.ActionItemIDs = append(rec.meeting.ActionItemIDs, it.ID)
	}
	snap := snapshot(rec.meeting)
	p.mu.Unlock()

	if err := p.store.SaveMeeting(ctx, snap); err != nil {
		p.logger.Warn("failed to save meeting", "meeting_id", meetingID, "error", err)
	}
	p.logger.Debug("incremental action items", "meeting_id", meetingID, "count", len(items))
}

// actionItems converts and indexes extracted items. Items that fail to
// store are dropped.
func (p *Processor) actionItems(ctx context.Context, meetingID string, extracted []ExtractedItem) []*models.ActionItem {
	now := p.now().UTC()
	out := make([]*models.ActionItem, 0, len(extracted))
	for _, e := range extracted {
		item := newActionItem(meetingID, e, now)
		if err := p.index.Index(ctx, item); err != nil {
			p.logger.Warn("failed to store action item", "meeting_id", meetingID, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// Stop ends the recording and finalizes the meeting: end time, summary, a
// full-transcript action item pass replacing the incremental items,
// participants and the session embedding. It fails with ErrNotRecording
// when idle.
func (p *Processor) Stop(ctx context.Context) (*models.MeetingSession, error) {
	logger := contextutil.LoggerOr(ctx, p.logger)

	p.mu.Lock()
	rec := p.active
	p.active = nil
	p.mu.Unlock()
	if rec == nil {
		return nil, service.ErrNotRecording
	}

	rec.cancel()
	rec.wg.Wait()

	m := rec.meeting
	end := p.now().UTC()
	m.EndTime = &end

	if audio, ok := p.stopAudio(ctx, rec); ok {
		m.AudioRecording = &audio
		if strings.TrimSpace(m.Transcript) == "" && p.opts.FileTranscriber != nil {
			text, err := p.opts.FileTranscriber.TranscribeFile(ctx, audio.Path)
			if err != nil {
				logger.Warn("recording transcription failed", "meeting_id", m.ID, "error", err)
			} else {
				m.Transcript = text
			}
		}
	}

	if strings.TrimSpace(m.Transcript) != "" {
		summary, err := p.summarizer.Summarize(ctx, m.Transcript)
		if err != nil {
			logger.Warn("summarization failed", "meeting_id", m.ID, "error", err)
		}
		m.Summary = summary

		extracted, err := p.extractor.ExtractActionItems(ctx, m.Transcript)
		if err != nil {
			logger.Warn("action item extraction failed", "meeting_id", m.ID, "error", err)
		} else if ids, ok := p.replaceActionItems(ctx, m.ID, m.ActionItemIDs, extracted); ok {
			m.ActionItemIDs = ids
		}
	}
	m.Participants = Participants(m.Transcript)

	m.Embedding = nil
	if err := p.index.Index(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}
	logger.Info("meeting recording stopped", "meeting_id", m.ID,
		"duration", end.Sub(m.StartTime).Round(time.Second), "action_items", len(m.ActionItemIDs))
	return snapshot(m), nil
}

// replaceActionItems swaps the meeting's items for the full-pass result and
// returns their ids. ok is false when the swap could not be stored.
func (p *Processor) replaceActionItems(ctx context.Context, meetingID string, previous []string, extracted []ExtractedItem) ([]string, bool) {
	now := p.now().UTC()
	items := make([]*models.ActionItem, len(extracted))
	for i, e := range extracted {
		items[i] = newActionItem(meetingID, e, now)
	}

	if err := p.store.ReplaceActionItems(ctx, meetingID, items); err != nil {
		p.logger.Warn("failed to replace action items", "meeting_id", meetingID, "error", err)
		return nil, false
	}
	if err := p.index.Unindex(ctx, models.TypeActionItem, previous); err != nil {
		p.logger.Warn("failed to unindex replaced action items", "meeting_id", meetingID, "error", err)
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
		if err := p.index.Index(ctx, it); err != nil {
			p.logger.Warn("failed to index action item", "action_item_id", it.ID, "error", err)
		}
	}
	return ids, true
}

func newActionItem(meetingID string, e ExtractedItem, now time.Time) *models.ActionItem {
	return &models.ActionItem{
		ID:          uuid.New().String(),
		Description: e.Description,
		Assignee:    e.Assignee,
		DueDate:     commitment.DueDate(e.Deadline, 0, now),
		Status:      models.ActionItemOpen,
		Priority:    models.ParsePriority(e.Priority),
		MeetingID:   meetingID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Processor) stopAudio(ctx context.Context, rec *recording) (models.AudioRecording, bool) {
	if !rec.audio {
		return models.AudioRecording{}, false
	}
	audio, err := p.opts.Recorder.Stop(ctx)
	if err != nil {
		p.logger.Warn("failed to stop audio capture", "error", err)
		return models.AudioRecording{}, false
	}
	return audio, true
}

// History returns recorded meetings, newest first.
func (p *Processor) History(ctx context.Context, limit int) ([]*models.MeetingSession, error) {
	list, err := p.store.ListMeetings(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	if list == nil {
		list = []*models.MeetingSession{}
	}
	return list, nil
}

// Shutdown stops an active recording, if any.
func (p *Processor) Shutdown(ctx context.Context) {
	if _, err := p.Stop(ctx); err != nil && !errors.Is(err, service.ErrNotRecording) {
		p.logger.Warn("failed to finalize meeting on shutdown", "error", err)
	}
}

func snapshot(m *models.MeetingSession) *models.MeetingSession {
	c := *m
	c.Participants = append([]string{}, m.Participants...)
	c.ActionItemIDs = append([]string{}, m.ActionItemIDs...)
	if m.EndTime != nil {
		end := *m.EndTime
		c.EndTime = &end
	}
	if m.AudioRecording != nil {
		audio := *m.AudioRecording
		c.AudioRecording = &audio
	}
	c.Embedding = append([]float32(nil), m.Embedding...)
	return &c
}
