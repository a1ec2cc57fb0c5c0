// Package agent is the composition root of the assistant core. It builds
// every component from configuration and exposes the operations the host
// bridge calls.
package agent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/clipboard"
	"insig8-ai/internal/commitment"
	"insig8-ai/internal/config"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/embedding"
	"insig8-ai/internal/indexer"
	"insig8-ai/internal/ingest"
	"insig8-ai/internal/intelligence"
	"insig8-ai/internal/itemstore"
	"insig8-ai/internal/llm"
	"insig8-ai/internal/meeting"
	"insig8-ai/internal/models"
	"insig8-ai/internal/platform"
	"insig8-ai/internal/reminder"
	"insig8-ai/internal/screen"
	"insig8-ai/internal/search"
	"insig8-ai/internal/storage"
	"insig8-ai/internal/vectorstore"
)

const (
	probeTimeout = 3 * time.Second
	defaultLimit = 10
	maxLimit     = 100
)

// ErrShutdown is returned by Initialize after Shutdown.
var ErrShutdown = errors.New("agent is shut down")

// Capabilities reports which optional backends were found at startup.
type Capabilities struct {
	LLM               bool   `json:"llm"`
	Embeddings        bool   `json:"embeddings"`
	VectorBackend     string `json:"vectorBackend"`
	ReminderStore     string `json:"reminderStore"`
	ScreenCapture     bool   `json:"screenCapture"`
	OCR               bool   `json:"ocr"`
	Microphone        bool   `json:"microphone"`
	LiveTranscription bool   `json:"liveTranscription"`
	FileTranscription bool   `json:"fileTranscription"`
	Clipboard         bool   `json:"clipboard"`
	Slack             bool   `json:"slack"`
}

// Manager owns the lifecycle of every component.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger

	db        *sql.DB
	store     *itemstore.Store
	qdrant    *vectorstore.QdrantStore
	redis     *redis.Client
	search    *search.Engine
	indexer   *indexer.Pipeline
	intel     *intelligence.Engine
	reminders *reminder.Scheduler
	tracker   *commitment.Tracker
	progress  *commitment.ProgressMonitor
	meetings  *meeting.Processor
	screen    *screen.Monitor
	clipboard *clipboard.Monitor
	slack     *ingest.SlackPoller
	notifier  platform.Notifier

	user *models.User
	caps Capabilities

	mu          sync.Mutex
	initialized bool
	closed      bool
}

// New opens the store, probes the optional backends and wires the
// components. Nothing runs in the background until Initialize.
func New(ctx context.Context, cfg *config.Config, host platform.Host, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{cfg: cfg, logger: logger, notifier: host.Notifier}
	if m.notifier == nil {
		m.notifier = platform.LogNotifier{Logger: logger}
	}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	m.db = db
	if err := storage.Migrate(db); err != nil {
		m.release()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	m.store = itemstore.New(itemstore.SQLiteRepos(db))

	m.user, err = m.store.LocalUser(ctx, cfg.UserDisplayName)
	if err != nil {
		m.release()
		return nil, fmt.Errorf("failed to load local user: %w", err)
	}

	chat := m.probeChat(ctx)
	var classifiers *analyzer.ClassifierCache
	if chat != nil {
		classifiers, err = analyzer.NewClassifierCache(analyzer.LLMClassifierLoader(chat), cfg.ClassifierCacheSize)
		if err != nil {
			m.release()
			return nil, fmt.Errorf("failed to create classifier cache: %w", err)
		}
	}
	a := analyzer.New(classifiers, logger)

	gen, err := embedding.NewGenerator(m.probeEmbeddings(ctx), cfg.EmbeddingCacheSize, logger)
	if err != nil {
		m.release()
		return nil, fmt.Errorf("failed to create embedding generator: %w", err)
	}
	m.caps.Embeddings = gen.Available()

	m.search = search.NewEngine(m.store, gen, m.vectorBackend(ctx), cfg.SimilarityThreshold, logger)
	m.caps.VectorBackend = m.search.Backend()
	m.indexer = indexer.NewPipeline(m.store, m.search, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize, logger)
	m.intel = intelligence.NewEngine(m.search, logger)

	m.reminders = reminder.NewScheduler(m.reminderStore(ctx), m.deliver, logger)

	var detector commitment.Detector = commitment.NewRuleDetector(a)
	if chat != nil {
		detector = commitment.NewFallbackDetector(commitment.NewLLMDetector(chat), detector, logger)
	}
	m.tracker = commitment.NewTracker(m.store, m.search, detector, m.reminders, m.user.ID, logger)
	m.progress, err = commitment.NewProgressMonitor(m.tracker, cfg.ProgressCheckCron)
	if err != nil {
		m.release()
		return nil, err
	}

	var extractor meeting.Extractor = meeting.NewPatternExtractor(a)
	var summarizer meeting.Summarizer = meeting.PatternSummarizer{}
	if chat != nil {
		extractor = meeting.NewFallbackExtractor(meeting.NewLLMExtractor(chat), extractor, logger)
		summarizer = meeting.NewFallbackSummarizer(meeting.NewLLMSummarizer(chat), summarizer, logger)
	}
	opts := meeting.Options{
		Recorder:        host.Recorder,
		Transcriber:     host.Transcriber,
		RecordingsDir:   cfg.RecordingsDir,
		ExtractInterval: cfg.MeetingExtractInterval,
	}
	if cfg.AssemblyAIAPIKey != "" {
		opts.FileTranscriber = meeting.NewAssemblyAITranscriber(cfg.AssemblyAIAPIKey)
	}
	m.meetings = meeting.NewProcessor(m.store, m.search, extractor, summarizer, opts, logger)

	m.screen = screen.NewMonitor(m.store, m.search, m.tracker, a, screen.Options{
		Capturer:   host.Screen,
		Recognizer: host.OCR,
		Apps:       host.Apps,
		Interval:   cfg.ScreenCaptureInterval,
		SelfNames:  selfNames(cfg.UserDisplayName),
	}, logger)

	if host.Clipboard != nil {
		m.clipboard = clipboard.NewMonitor(host.Clipboard, m.search, cfg.ClipboardPollInterval, logger)
	}
	if cfg.SlackToken != "" {
		api := ingest.NewSlackClient(cfg.SlackToken, "")
		m.slack = ingest.NewSlackPoller(api, cfg.SlackChannels, m.tracker, cfg.SlackPollInterval, logger)
	}

	m.caps.ScreenCapture = host.Screen != nil
	m.caps.OCR = host.OCR != nil
	m.caps.Microphone = host.Recorder != nil
	m.caps.LiveTranscription = host.Transcriber != nil
	m.caps.FileTranscription = opts.FileTranscriber != nil
	m.caps.Clipboard = m.clipboard != nil
	m.caps.Slack = m.slack != nil

	logger.Info("agent created",
		"user", m.user.DisplayName,
		"llm", m.caps.LLM,
		"embeddings", m.caps.Embeddings,
		"vector_backend", m.caps.VectorBackend,
		"reminder_store", m.caps.ReminderStore,
	)
	return m, nil
}

// probeChat returns a chat client when the LLM endpoint serves the
// configured model.
func (m *Manager) probeChat(ctx context.Context) llm.ChatCompleter {
	if m.cfg.LLMBaseURL == "" {
		return nil
	}
	ok, err := llm.NewProber(m.cfg.LLMBaseURL, m.cfg.LLMAPIKey, probeTimeout).Available(ctx, m.cfg.LLMModelName)
	if err != nil || !ok {
		m.logger.Warn("LLM unavailable, using rule-based detection", "base_url", m.cfg.LLMBaseURL, "model", m.cfg.LLMModelName, "error", err)
		return nil
	}
	m.caps.LLM = true
	return llm.NewClient(m.cfg.LLMBaseURL, m.cfg.LLMAPIKey, m.cfg.LLMModelName)
}

// probeEmbeddings returns nil when no embedding model answers, which makes
// every embedding empty.
func (m *Manager) probeEmbeddings(ctx context.Context) embedding.Model {
	if m.cfg.EmbeddingBaseURL == "" {
		return nil
	}
	ok, err := llm.NewProber(m.cfg.EmbeddingBaseURL, m.cfg.LLMAPIKey, probeTimeout).Available(ctx, m.cfg.EmbeddingModelName)
	if err != nil || !ok {
		m.logger.Warn("embedding model unavailable, items will be stored unembedded", "base_url", m.cfg.EmbeddingBaseURL, "model", m.cfg.EmbeddingModelName, "error", err)
		return nil
	}
	return llm.NewEmbeddingsClient(m.cfg.EmbeddingBaseURL, m.cfg.LLMAPIKey, m.cfg.EmbeddingModelName, m.cfg.EmbeddingVectorSize)
}

// vectorBackend connects to Qdrant when configured. A nil result selects
// the in-process scan.
func (m *Manager) vectorBackend(ctx context.Context) search.Backend {
	if m.cfg.QdrantURL == "" {
		return nil
	}
	store, err := vectorstore.NewQdrantStore(m.cfg.QdrantURL, m.logger)
	if err != nil {
		m.logger.Warn("qdrant unavailable, using scan index", "url", m.cfg.QdrantURL, "error", err)
		return nil
	}
	backend := search.NewQdrantBackend(store, m.cfg.QdrantCollectionPrefix)
	if err := backend.EnsureCollections(ctx, m.cfg.EmbeddingVectorSize); err != nil {
		m.logger.Warn("qdrant collections unavailable, using scan index", "url", m.cfg.QdrantURL, "error", err)
		_ = store.Close()
		return nil
	}
	m.qdrant = store
	return backend
}

func (m *Manager) reminderStore(ctx context.Context) reminder.Store {
	if m.cfg.RedisURL != "" {
		client, err := reminder.DialRedis(ctx, m.cfg.RedisURL)
		if err == nil {
			m.redis = client
			m.caps.ReminderStore = "redis"
			return reminder.NewRedisStore(client, "")
		}
		m.logger.Warn("redis unavailable, reminders kept in memory", "error", err)
	}
	m.caps.ReminderStore = "memory"
	return reminder.NewMemoryStore()
}

// deliver shows a fired reminder to the user.
func (m *Manager) deliver(ctx context.Context, r reminder.Reminder) {
	logger := contextutil.LoggerOr(ctx, m.logger)
	body := r.Description
	if r.Recipient != "" {
		body = fmt.Sprintf("%s (for %s)", r.Description, r.Recipient)
	}
	logger.Info("reminder fired", "commitment_id", r.CommitmentID, "priority", r.Priority)
	if err := m.notifier.Notify(ctx, "Commitment reminder", body); err != nil {
		logger.Warn("failed to deliver reminder", "commitment_id", r.CommitmentID, "error", err)
	}
}

// Capabilities returns what was found at startup.
func (m *Manager) Capabilities() Capabilities {
	return m.caps
}

// Initialize restores pending reminders and starts the background loops.
// Calling it again is a no-op.
func (m *Manager) Initialize(ctx context.Context) error {
	logger := contextutil.LoggerOr(ctx, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrShutdown
	}
	if m.initialized {
		return nil
	}

	restored, err := m.reminders.Restore(ctx)
	if err != nil {
		logger.Warn("failed to restore reminders", "error", err)
	}
	m.progress.Start(ctx)
	if m.caps.Embeddings {
		// A fresh Qdrant collection needs every embedded item registered again.
		m.indexer.Start(ctx, m.qdrant != nil)
	}
	if m.clipboard != nil {
		m.clipboard.Start(ctx)
	}
	if m.slack != nil {
		m.slack.Start(ctx)
	}
	m.initialized = true
	logger.Info("agent initialized", "reminders_restored", restored)
	return nil
}

// Shutdown stops every loop, finalizes an active meeting and releases the
// store and backend connections. It is idempotent.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.screen.Stop()
	if m.clipboard != nil {
		m.clipboard.Stop()
	}
	if m.slack != nil {
		m.slack.Stop()
	}
	m.progress.Stop()
	m.indexer.Stop()
	m.meetings.Shutdown(ctx)
	m.reminders.Close()
	m.release()
	contextutil.LoggerOr(ctx, m.logger).Info("agent shut down")
}

func (m *Manager) release() {
	if m.store != nil {
		m.store.Close()
	}
	if m.qdrant != nil {
		_ = m.qdrant.Close()
	}
	if m.redis != nil {
		_ = m.redis.Close()
	}
	if m.db != nil {
		_ = m.db.Close()
	}
}

func selfNames(displayName string) []string {
	names := []string{"You", "Me"}
	if n := strings.TrimSpace(displayName); n != "" && !strings.EqualFold(n, "you") && !strings.EqualFold(n, "me") {
		names = append(names, n)
	}
	return names
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
