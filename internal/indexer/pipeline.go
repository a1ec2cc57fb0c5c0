// Package indexer embeds stored items that were saved without a vector and
// registers them with the similarity backend.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
)

// Skip reasons reported by IndexAll.
const (
	SkipEmptyText            = "empty_text"
	SkipEmbeddingUnavailable = "embedding_unavailable"
)

// Store is the item persistence the pipeline reads and writes through.
type Store interface {
	Items(ctx context.Context, typ models.EntityType) ([]models.StorableItem, error)
	Save(ctx context.Context, item models.StorableItem) error
	UpdateCommitment(ctx context.Context, id string, fn func(*models.Commitment) error) (*models.Commitment, error)
}

// Engine embeds text and registers embedded items for similarity search.
type Engine interface {
	Embed(ctx context.Context, text string) []float32
	Register(ctx context.Context, item models.StorableItem) error
}

// Report summarizes one indexing run.
type Report struct {
	Scanned        int            `json:"scanned"`
	Embedded       int            `json:"embedded"`
	Registered     int            `json:"registered"`
	Skipped        int            `json:"skipped"`
	SkippedReasons map[string]int `json:"skippedReasons"`
	Failed         int            `json:"failed"`
}

func (r *Report) skip(reason string) {
	r.Skipped++
	r.SkippedReasons[reason]++
}

// Pipeline orchestrates embedding and registration of stored items.
type Pipeline struct {
	store  Store
	engine Engine
	model  string
	dims   int
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPipeline creates a new indexing pipeline. model and dims identify the
// embedding space in coverage reports.
func NewPipeline(store Store, engine Engine, model string, dims int, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:  store,
		engine: engine,
		model:  model,
		dims:   dims,
		logger: logger,
	}
}

// IndexAll walks every searchable type. Items without a vector are embedded,
// stored and registered. With full set, items that already carry a vector
// are registered again, which rebuilds a fresh backend. Errors for
// individual items are counted but don't stop the run.
func (p *Pipeline) IndexAll(ctx context.Context, full bool) (Report, error) {
	logger := contextutil.LoggerOr(ctx, p.logger)
	report := Report{SkippedReasons: map[string]int{}}

	for _, typ := range models.SearchableTypes {
		items, err := p.store.Items(ctx, typ)
		if err != nil {
			return report, fmt.Errorf("failed to list %s items: %w", typ, err)
		}

		for _, item := range items {
			// Check for context cancellation
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			default:
			}

			report.Scanned++
			if err := p.index(ctx, item, full, &report); err != nil {
				report.Failed++
				logger.ErrorContext(ctx, "failed to index item", "type", typ, "id", item.ItemID(), "error", err)
			}
		}
	}

	logger.InfoContext(ctx, "indexing completed",
		"scanned", report.Scanned,
		"embedded", report.Embedded,
		"registered", report.Registered,
		"skipped", report.Skipped,
		"errors", report.Failed,
	)
	return report, nil
}

func (p *Pipeline) index(ctx context.Context, item models.StorableItem, full bool, report *Report) error {
	if len(item.Vector()) == 0 {
		text := item.EmbeddingText()
		if strings.TrimSpace(text) == "" {
			report.skip(SkipEmptyText)
			return nil
		}
		vec := p.engine.Embed(ctx, text)
		if len(vec) == 0 {
			report.skip(SkipEmbeddingUnavailable)
			return nil
		}
		stored, err := p.persist(ctx, item, vec)
		if err != nil {
			return err
		}
		item = stored
		report.Embedded++
	} else if !full {
		return nil
	}

	if err := p.engine.Register(ctx, item); err != nil {
		return err
	}
	report.Registered++
	return nil
}

// persist stores vec on item. Commitments are mutable, so their vector is
// written inside an update against the current row.
func (p *Pipeline) persist(ctx context.Context, item models.StorableItem, vec []float32) (models.StorableItem, error) {
	if c, ok := item.(*models.Commitment); ok {
		updated, err := p.store.UpdateCommitment(ctx, c.ID, func(cur *models.Commitment) error {
			if len(cur.Embedding) == 0 {
				cur.Embedding = vec
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to store commitment embedding: %w", err)
		}
		return updated, nil
	}

	item.SetVector(vec)
	if err := p.store.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to store %s embedding: %w", item.ItemType(), err)
	}
	return item, nil
}

// Start runs one IndexAll in the background. Starting while a run is in
// flight is a no-op.
func (p *Pipeline) Start(ctx context.Context, full bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))
	p.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		p.logger.Info("starting background indexing", "full", full)
		if _, err := p.IndexAll(ctx, full); err != nil {
			p.logger.Warn("background indexing stopped", "error", err)
		}
	}(p.done)
}

// Stop cancels a background run and waits for it. It is idempotent.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
