// Package screen watches the foreground screen, stores changed frames with
// their OCR text and feeds chat messages that ask for something into the
// commitment pipeline.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/commitment"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
	"insig8-ai/internal/platform"
	"insig8-ai/internal/service"
)

const (
	// DefaultInterval is the capture cadence.
	DefaultInterval = 5 * time.Second

	unrespondedWindow  = time.Hour
	forwardedCacheSize = 512
)

// Store lists stored captures.
type Store interface {
	ListScreenCapturesSince(ctx context.Context, since time.Time) ([]*models.ScreenCapture, error)
}

// Indexer embeds and stores items.
type Indexer interface {
	Index(ctx context.Context, item models.StorableItem) error
}

// MessageAnalyzer receives messages that may lead to a commitment.
type MessageAnalyzer interface {
	AnalyzeMessage(ctx context.Context, msg commitment.Message) (*models.Commitment, error)
}

// Options holds the host collaborators of a Monitor. Capturer is required;
// Recognizer and Apps degrade to empty text and an unknown application.
type Options struct {
	Capturer   platform.ScreenCapturer
	Recognizer platform.TextRecognizer
	Apps       platform.AppDetector
	Interval   time.Duration
	// SelfNames are the sender names of the local user's own messages.
	SelfNames []string
}

// UnrespondedMessage is a question or request seen on screen that has no
// visible reply yet.
type UnrespondedMessage struct {
	ID          string          `json:"id"`
	Sender      string          `json:"sender"`
	Content     string          `json:"content"`
	Platform    string          `json:"platform"`
	Application string          `json:"application"`
	CaptureID   string          `json:"captureId"`
	DetectedAt  time.Time       `json:"detectedAt"`
	Urgency     models.Priority `json:"urgency"`
	ExpiresAt   time.Time       `json:"expiresAt"`
}

// Monitor runs the capture loop.
type Monitor struct {
	store     Store
	index     Indexer
	messages  MessageAnalyzer
	analyzer  *analyzer.Analyzer
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
	forwarded *lru.Cache[string, struct{}]

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	frameMu  sync.Mutex
	lastHash string
	lastApp  string
	appSince time.Time
}

// NewMonitor creates a stopped monitor. messages may be nil.
func NewMonitor(store Store, index Indexer, messages MessageAnalyzer, a *analyzer.Analyzer, opts Options, logger *slog.Logger) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if len(opts.SelfNames) == 0 {
		opts.SelfNames = []string{"You", "Me"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	forwarded, _ := lru.New[string, struct{}](forwardedCacheSize)
	return &Monitor{
		store:     store,
		index:     index,
		messages:  messages,
		analyzer:  a,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		forwarded: forwarded,
	}
}

// Running reports whether the capture loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancel != nil
}

// Start takes a first capture and launches the loop. A denied screen
// recording permission fails Start; other capture failures are logged and
// retried on the next tick. Starting a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) error {
	logger := contextutil.LoggerOr(ctx, m.logger)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return nil
	}
	if m.opts.Capturer == nil {
		return fmt.Errorf("screen capture: %w", service.ErrCapabilityUnavailable)
	}

	if _, err := m.Tick(ctx); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return err
		}
		logger.Warn("first screen capture failed", "error", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(runCtx, m.done)
	logger.Info("screen monitoring started", "interval", m.opts.Interval)
	return nil
}

// Stop ends the loop and waits for an in-flight capture to persist. It is
// idempotent.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	m.logger.Info("screen monitoring stopped")
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Tick(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("screen capture failed", "error", err)
			}
		}
	}
}

// Tick captures one frame. A frame whose content hash equals the last
// accepted frame is skipped and nil is returned.
func (m *Monitor) Tick(ctx context.Context) (*models.ScreenCapture, error) {
	logger := contextutil.LoggerOr(ctx, m.logger)

	frame, err := m.opts.Capturer.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	if len(frame) == 0 {
		return nil, nil
	}
	hash := ContentHash(frame)

	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	if hash == m.lastHash {
		logger.Debug("screen unchanged, skipping capture")
		return nil, nil
	}

	now := m.now().UTC()
	text := m.recognize(ctx, frame)
	app := m.foreground(ctx)

	sctx := analyzeContext(app.WindowTitle, text)
	if app.Name != "" && app.Name == m.lastApp {
		sctx.DwellTime = now.Sub(m.appSince)
		sctx.HasInteraction = true
	} else {
		m.appSince = now
	}

	image, err := thumbnail(frame)
	if err != nil {
		logger.Debug("keeping raw frame", "error", err)
		image = frame
	}

	capture := &models.ScreenCapture{
		ID:          uuid.New().String(),
		Timestamp:   now,
		ImageData:   image,
		ContentHash: hash,
		OCRText:     text,
		Application: app.Name,
		Context:     sctx,
	}
	if err := m.index.Index(ctx, capture); err != nil {
		return nil, fmt.Errorf("failed to save screen capture: %w", err)
	}
	m.lastHash = hash
	m.lastApp = app.Name
	logger.Debug("screen capture stored", "capture_id", capture.ID, "application", app.Name, "words", len(sctx.VisibleText))

	m.forwardAsks(ctx, capture)
	return capture, nil
}

func (m *Monitor) recognize(ctx context.Context, frame []byte) string {
	if m.opts.Recognizer == nil {
		return ""
	}
	text, err := m.opts.Recognizer.RecognizeText(ctx, frame)
	if err != nil {
		contextutil.LoggerOr(ctx, m.logger).Warn("text recognition failed", "error", err)
		return ""
	}
	return text
}

func (m *Monitor) foreground(ctx context.Context) platform.App {
	if m.opts.Apps == nil {
		return platform.App{}
	}
	app, err := m.opts.Apps.Foreground(ctx)
	if err != nil {
		contextutil.LoggerOr(ctx, m.logger).Debug("foreground application unknown", "error", err)
		return platform.App{}
	}
	return app
}

// forwardAsks sends each new question or request from another person to the
// commitment pipeline as a reply task.
func (m *Monitor) forwardAsks(ctx context.Context, c *models.ScreenCapture) {
	if m.messages == nil {
		return
	}
	logger := contextutil.LoggerOr(ctx, m.logger)
	for _, msg := range DetectMessages(c.Application, c.OCRText) {
		if m.self(msg.Sender) || !msg.Ask() {
			continue
		}
		key := messageKey(c.Application, msg)
		if m.forwarded.Contains(key) {
			continue
		}
		m.forwarded.Add(key, struct{}{})

		_, err := m.messages.AnalyzeMessage(ctx, commitment.Message{
			Text:      commitment.RespondText(msg.Sender, msg.Content),
			Platform:  commitment.ScreenPlatform,
			Sender:    msg.Sender,
			Timestamp: c.Timestamp,
		})
		if err != nil {
			logger.Warn("failed to analyze screen message", "sender", msg.Sender, "error", err)
		}
	}
}

func (m *Monitor) self(sender string) bool {
	for _, name := range m.opts.SelfNames {
		if strings.EqualFold(sender, name) {
			return true
		}
	}
	return false
}

func messageKey(app string, msg DetectedMessage) string {
	return strings.ToLower(app + "\x00" + msg.Sender + "\x00" + msg.Content)
}

// DetectUnrespondedMessages re-scans the captures of the last hour for
// questions and requests from others. A line from the local user answers
// the asks above it in the same capture. A line that was not visible in the
// previous capture of the application also answers the asks still open from
// earlier captures. Results are ordered by urgency, then newest first;
// expired ones are dropped.
func (m *Monitor) DetectUnrespondedMessages(ctx context.Context) ([]UnrespondedMessage, error) {
	now := m.now().UTC()
	captures, err := m.store.ListScreenCapturesSince(ctx, now.Add(-unrespondedWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list screen captures: %w", err)
	}

	open := map[string]UnrespondedMessage{}
	answered := map[string]bool{}
	var keys []string
	// own lines visible in the latest capture of each application
	prevOwn := map[string]map[string]bool{}

	for _, c := range captures {
		msgs := DetectMessages(c.Application, c.OCRText)
		last := make(map[string]int, len(msgs))
		for i, msg := range msgs {
			last[messageKey(c.Application, msg)] = i
		}
		own := map[string]bool{}
		var above []string

		for i, msg := range msgs {
			k := messageKey(c.Application, msg)
			if m.self(msg.Sender) {
				own[k] = true
				for _, ak := range above {
					answered[ak] = true
					delete(open, ak)
				}
				above = above[:0]
				if prevOwn[c.Application][k] {
					continue
				}
				for _, ak := range keys {
					u, found := open[ak]
					if !found || u.Application != c.Application {
						continue
					}
					if pos, shown := last[ak]; shown && pos > i {
						continue
					}
					answered[ak] = true
					delete(open, ak)
				}
				continue
			}
			if !msg.Ask() || answered[k] {
				continue
			}
			above = append(above, k)
			if _, ok := open[k]; ok {
				continue
			}
			urgency := m.analyzer.Analyze(ctx, msg.Content).Urgency
			open[k] = UnrespondedMessage{
				ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(k)).String(),
				Sender:      msg.Sender,
				Content:     msg.Content,
				Platform:    msg.Platform,
				Application: c.Application,
				CaptureID:   c.ID,
				DetectedAt:  c.Timestamp,
				Urgency:     urgency,
				ExpiresAt:   c.Timestamp.Add(Expiry(urgency)),
			}
			keys = append(keys, k)
		}
		prevOwn[c.Application] = own
	}

	out := []UnrespondedMessage{}
	for _, k := range keys {
		u, ok := open[k]
		if !ok || !u.ExpiresAt.After(now) {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Urgency.Rank(), out[j].Urgency.Rank(); ri != rj {
			return ri > rj
		}
		return out[i].DetectedAt.After(out[j].DetectedAt)
	})
	return out, nil
}

// Expiry is how long an unanswered ask stays relevant.
func Expiry(p models.Priority) time.Duration {
	switch p {
	case models.PriorityUrgent:
		return time.Hour
	case models.PriorityHigh:
		return 4 * time.Hour
	case models.PriorityLow:
		return 72 * time.Hour
	default:
		return 24 * time.Hour
	}
}
