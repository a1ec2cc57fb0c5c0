// Package clipboard records clipboard changes as searchable items.
package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
	"insig8-ai/internal/platform"
)

// DefaultInterval is the clipboard poll cadence.
const DefaultInterval = 2 * time.Second

// Indexer embeds and stores items.
type Indexer interface {
	Index(ctx context.Context, item models.StorableItem) error
}

// Monitor polls a clipboard reader and stores each new value.
type Monitor struct {
	reader   platform.ClipboardReader
	index    Indexer
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	pollMu sync.Mutex
	last   string
}

func NewMonitor(reader platform.ClipboardReader, index Indexer, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{reader: reader, index: index, interval: interval, logger: logger, now: time.Now}
}

// Start launches the poll loop. Starting a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop ends the loop. It is idempotent.
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
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Poll(context.WithoutCancel(ctx)); err != nil {
				m.logger.Debug("clipboard poll failed", "error", err)
			}
		}
	}
}

// Poll reads the clipboard once and stores it when it changed since the
// last stored value. Blank content is ignored.
func (m *Monitor) Poll(ctx context.Context) (*models.ClipboardItem, error) {
	clip, err := m.reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read clipboard: %w", err)
	}
	content := strings.TrimSpace(clip.Text)
	if content == "" {
		return nil, nil
	}

	m.pollMu.Lock()
	defer m.pollMu.Unlock()
	if content == m.last {
		return nil, nil
	}

	item := &models.ClipboardItem{
		ID:                uuid.New().String(),
		Content:           content,
		ContentType:       Classify(content),
		Timestamp:         m.now().UTC(),
		SourceApplication: clip.SourceApp,
	}
	if err := m.index.Index(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save clipboard item: %w", err)
	}
	m.last = content
	contextutil.LoggerOr(ctx, m.logger).Debug("clipboard item stored", "id", item.ID, "type", item.ContentType)
	return item, nil
}

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".heic": true,
	".webp": true, ".tiff": true, ".bmp": true,
}

// Classify guesses the content type of clipboard text.
func Classify(content string) models.ContentType {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "data:image/") {
		return models.ContentImage
	}
	if strings.ContainsAny(content, "\n\t") {
		return models.ContentText
	}

	if path, ok := filePath(content); ok {
		if imageExts[strings.ToLower(filepath.Ext(path))] {
			return models.ContentImage
		}
		return models.ContentFile
	}
	if strings.Contains(content, " ") {
		return models.ContentText
	}
	if u, err := url.Parse(content); err == nil && u.Host != "" {
		switch u.Scheme {
		case "http", "https", "ftp":
			return models.ContentURL
		}
	}
	if strings.HasPrefix(strings.ToLower(content), "www.") && strings.Count(content, ".") >= 2 {
		return models.ContentURL
	}
	return models.ContentText
}

func filePath(content string) (string, bool) {
	switch {
	case strings.HasPrefix(content, "file://"):
		u, err := url.Parse(content)
		if err != nil {
			return "", false
		}
		return u.Path, true
	case strings.HasPrefix(content, "/"), strings.HasPrefix(content, "~/"):
		return content, len(content) > 1
	default:
		return "", false
	}
}
