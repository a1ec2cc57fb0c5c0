package meeting

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/itemstore"
	"insig8-ai/internal/models"
	"insig8-ai/internal/platform"
	"insig8-ai/internal/platform/mocks"
	"insig8-ai/internal/search"
	"insig8-ai/internal/service"
	"insig8-ai/internal/storage"
)

type constEmbedder struct{}

func (constEmbedder) Embed(context.Context, string) []float32 { return []float32{1, 0} }

type fakeExtractor struct {
	mu    sync.Mutex
	calls []string
	items []ExtractedItem
	err   error
}

func (f *fakeExtractor) ExtractActionItems(_ context.Context, transcript string) ([]ExtractedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, transcript)
	return f.items, f.err
}

type fakeFileTranscriber struct {
	path string
	text string
}

func (f *fakeFileTranscriber) TranscribeFile(_ context.Context, path string) (string, error) {
	f.path = path
	return f.text, nil
}

func newTestStore(t *testing.T) *itemstore.Store {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("storage.Migrate() error = %v", err)
	}
	store := itemstore.New(itemstore.SQLiteRepos(db))
	t.Cleanup(func() {
		store.Close()
		_ = db.Close()
	})
	return store
}

func newTestProcessor(t *testing.T, ex Extractor, opts Options) (*Processor, *itemstore.Store) {
	t.Helper()
	store := newTestStore(t)
	engine := search.NewEngine(store, constEmbedder{}, nil, 0, nil)
	if ex == nil {
		ex = NewPatternExtractor(analyzer.New(nil, nil))
	}
	if opts.ExtractInterval == 0 {
		opts.ExtractInterval = time.Hour
	}
	return NewProcessor(store, engine, ex, PatternSummarizer{}, opts, nil), store
}

func TestProcessor_Lifecycle(t *testing.T) {
	p, store := newTestProcessor(t, nil, Options{})
	ctx := context.Background()

	if _, err := p.Stop(ctx); !errors.Is(err, service.ErrNotRecording) {
		t.Errorf("Stop() idle error = %v, want ErrNotRecording", err)
	}
	if err := p.AppendTranscript("Bob", "hello"); !errors.Is(err, service.ErrNotRecording) {
		t.Errorf("AppendTranscript() idle error = %v, want ErrNotRecording", err)
	}

	started, err := p.Start(ctx, "  ")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !strings.HasPrefix(started.Title, "Meeting ") {
		t.Errorf("Start() title = %q, want default title", started.Title)
	}
	if !p.Recording() || p.Current() == nil {
		t.Error("Recording() = false after Start()")
	}
	if _, err := p.Start(ctx, "second"); !errors.Is(err, service.ErrAlreadyRecording) {
		t.Errorf("Start() twice error = %v, want ErrAlreadyRecording", err)
	}

	for _, line := range strings.Split(standup, "\n") {
		speaker, text := splitSpeaker(line)
		if err := p.AppendTranscript(speaker, text); err != nil {
			t.Fatalf("AppendTranscript() error = %v", err)
		}
	}

	stopped, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if p.Recording() {
		t.Error("Recording() = true after Stop()")
	}
	if stopped.EndTime == nil || stopped.EndTime.Before(stopped.StartTime) {
		t.Errorf("Stop() EndTime = %v, want after start", stopped.EndTime)
	}
	if stopped.Transcript != standup {
		t.Errorf("Stop() transcript = %q, want %q", stopped.Transcript, standup)
	}
	if len(stopped.ActionItemIDs) != 3 {
		t.Errorf("Stop() action items = %d, want 3", len(stopped.ActionItemIDs))
	}
	if got := strings.Join(stopped.Participants, ","); got != "Alice,Bob,Carol" {
		t.Errorf("Stop() participants = %q", got)
	}
	if stopped.Summary == "" {
		t.Error("Stop() summary is empty")
	}

	saved, err := store.GetMeeting(ctx, stopped.ID)
	if err != nil {
		t.Fatalf("GetMeeting() error = %v", err)
	}
	if len(saved.Embedding) == 0 || saved.EndTime == nil {
		t.Errorf("stored meeting = %+v, want embedded and ended", saved)
	}

	items, err := store.ListActionItemsByMeeting(ctx, stopped.ID)
	if err != nil {
		t.Fatalf("ListActionItemsByMeeting() error = %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("ListActionItemsByMeeting() = %d, want 3", len(items))
	}
	for _, it := range items {
		if it.Assignee == "Bob" && it.DueDate == nil {
			t.Errorf("item %q has no due date for deadline tomorrow", it.Description)
		}
		if it.Status != models.ActionItemOpen {
			t.Errorf("item status = %v, want open", it.Status)
		}
	}

	history, err := p.History(ctx, 10)
	if err != nil || len(history) != 1 {
		t.Errorf("History() = %d, %v; want 1 meeting", len(history), err)
	}
}

func TestProcessor_EmptyMeeting(t *testing.T) {
	ex := &fakeExtractor{}
	p, _ := newTestProcessor(t, ex, Options{})
	ctx := context.Background()

	if _, err := p.Start(ctx, "Quiet"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	got, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got.Summary != "" || len(got.ActionItemIDs) != 0 || len(got.Participants) != 0 {
		t.Errorf("Stop() = %+v, want an empty meeting", got)
	}
	if len(ex.calls) != 0 {
		t.Errorf("extractor called %d times for an empty transcript", len(ex.calls))
	}
}

func TestProcessor_ExtractDelta(t *testing.T) {
	ex := &fakeExtractor{items: []ExtractedItem{{Description: "send the notes", Priority: "high"}}}
	p, store := newTestProcessor(t, ex, Options{})
	ctx := context.Background()

	started, err := p.Start(ctx, "Planning")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	rec := p.active

	_ = p.AppendTranscript("Alice", "short line")
	p.extractDelta(ctx, rec)
	if len(ex.calls) != 0 {
		t.Fatalf("extractDelta() ran on %d characters", len(rec.meeting.Transcript))
	}

	long := strings.Repeat("we need to ship the release candidate ", 4)
	_ = p.AppendTranscript("Bob", long)
	p.extractDelta(ctx, rec)
	if len(ex.calls) != 1 {
		t.Fatalf("extractDelta() calls = %d, want 1", len(ex.calls))
	}
	if !strings.HasPrefix(ex.calls[0], "Alice: short line") {
		t.Errorf("first delta = %q, want the whole transcript so far", ex.calls[0])
	}

	p.extractDelta(ctx, rec)
	if len(ex.calls) != 1 {
		t.Errorf("extractDelta() reran without new text")
	}

	_ = p.AppendTranscript("Carol", long)
	p.extractDelta(ctx, rec)
	if len(ex.calls) != 2 || !strings.HasPrefix(strings.TrimSpace(ex.calls[1]), "Carol: ") {
		t.Errorf("second delta = %q, want only new text", ex.calls[len(ex.calls)-1])
	}

	current := p.Current()
	if len(current.ActionItemIDs) != 2 {
		t.Errorf("Current() action items = %d, want 2", len(current.ActionItemIDs))
	}
	saved, err := store.GetMeeting(ctx, started.ID)
	if err != nil {
		t.Fatalf("GetMeeting() error = %v", err)
	}
	if len(saved.ActionItemIDs) != 2 {
		t.Errorf("stored action items = %d, want 2", len(saved.ActionItemIDs))
	}

	stopped, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if len(stopped.ActionItemIDs) != 1 {
		t.Errorf("Stop() action items = %d, want the full pass to replace them with 1", len(stopped.ActionItemIDs))
	}
	items, _ := store.ListActionItemsByMeeting(ctx, started.ID)
	if len(items) != 1 || items[0].Priority != models.PriorityHigh {
		t.Errorf("stored items = %+v, want one high priority item", items)
	}
}

func TestProcessor_FullPassFailureKeepsIncrementalItems(t *testing.T) {
	ex := &fakeExtractor{items: []ExtractedItem{{Description: "book the room"}}}
	p, _ := newTestProcessor(t, ex, Options{})
	ctx := context.Background()

	if _, err := p.Start(ctx, "Retro"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	_ = p.AppendTranscript("Alice", strings.Repeat("we should book the room for next week ", 4))
	p.extractDelta(ctx, p.active)

	ex.mu.Lock()
	ex.err = errors.New("model offline")
	ex.mu.Unlock()

	got, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if len(got.ActionItemIDs) != 1 {
		t.Errorf("Stop() action items = %d, want the incremental item kept", len(got.ActionItemIDs))
	}
}

func TestProcessor_AudioCapture(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	recorder := mocks.NewMockAudioRecorder(ctrl)
	var path string
	recorder.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p string) error {
		path = p
		return nil
	})
	recorder.EXPECT().Stop(gomock.Any()).DoAndReturn(func(context.Context) (models.AudioRecording, error) {
		return models.AudioRecording{Path: path, Format: "wav", Duration: time.Minute}, nil
	})

	files := &fakeFileTranscriber{text: "Speaker A: I'll send the minutes tonight.\nSpeaker B: Thanks."}
	p, _ := newTestProcessor(t, nil, Options{Recorder: recorder, FileTranscriber: files, RecordingsDir: dir})
	ctx := context.Background()

	started, err := p.Start(ctx, "Sync")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if want := filepath.Join(dir, started.ID+".wav"); path != want {
		t.Errorf("recording path = %q, want %q", path, want)
	}

	got, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got.AudioRecording == nil || got.AudioRecording.Path != path {
		t.Errorf("Stop() audio = %+v, want %q", got.AudioRecording, path)
	}
	if files.path != path {
		t.Errorf("file transcriber path = %q, want %q", files.path, path)
	}
	if got.Transcript != files.text {
		t.Errorf("Stop() transcript = %q, want file transcript", got.Transcript)
	}
	if strings.Join(got.Participants, ",") != "Speaker A,Speaker B" {
		t.Errorf("Stop() participants = %v", got.Participants)
	}
	if len(got.ActionItemIDs) != 1 {
		t.Errorf("Stop() action items = %d, want 1", len(got.ActionItemIDs))
	}
}

func TestProcessor_AudioPermissionDenied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := mocks.NewMockAudioRecorder(ctrl)
	recorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(service.ErrPermissionDenied)

	p, _ := newTestProcessor(t, nil, Options{Recorder: recorder, RecordingsDir: t.TempDir()})
	if _, err := p.Start(context.Background(), "Denied"); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("Start() error = %v, want ErrPermissionDenied", err)
	}
	if p.Recording() {
		t.Error("Recording() = true after failed Start()")
	}
}

func TestProcessor_AudioUnavailableDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := mocks.NewMockAudioRecorder(ctrl)
	recorder.EXPECT().Start(gomock.Any(), gomock.Any()).Return(service.ErrCapabilityUnavailable)

	p, _ := newTestProcessor(t, nil, Options{Recorder: recorder, RecordingsDir: t.TempDir()})
	ctx := context.Background()
	if _, err := p.Start(ctx, "No mic"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	got, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got.AudioRecording != nil {
		t.Errorf("Stop() audio = %+v, want none", got.AudioRecording)
	}
}

func TestProcessor_LiveTranscriber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transcriber := mocks.NewMockLiveTranscriber(ctrl)
	transcriber.EXPECT().Transcribe(gomock.Any()).DoAndReturn(func(ctx context.Context) (<-chan platform.Segment, error) {
		ch := make(chan platform.Segment, 2)
		ch <- platform.Segment{Speaker: "Dana", Text: "I'll draft the proposal tomorrow."}
		ch <- platform.Segment{Text: "  "}
		go func() {
			<-ctx.Done()
			close(ch)
		}()
		return ch, nil
	})

	p, _ := newTestProcessor(t, nil, Options{Transcriber: transcriber})
	ctx := context.Background()
	if _, err := p.Start(ctx, "Live"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(p.Current().Transcript, "Dana:") {
		if time.Now().After(deadline) {
			t.Fatal("live segment never reached the transcript")
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, err := p.Stop(ctx)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if got.Transcript != "Dana: I'll draft the proposal tomorrow." {
		t.Errorf("Stop() transcript = %q", got.Transcript)
	}
	if len(got.ActionItemIDs) != 1 {
		t.Errorf("Stop() action items = %d, want 1", len(got.ActionItemIDs))
	}
}

func TestProcessor_Shutdown(t *testing.T) {
	p, _ := newTestProcessor(t, nil, Options{})
	ctx := context.Background()

	p.Shutdown(ctx)

	if _, err := p.Start(ctx, "Late"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	p.Shutdown(ctx)
	if p.Recording() {
		t.Error("Recording() = true after Shutdown()")
	}
}
