// Package intelligence is the query facade over the search engine: global
// fan-out search, per-type search and time-constrained queries.
package intelligence

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
)

const (
	// categoryLimit is the fixed size every per-category query runs with.
	categoryLimit = 20
	// displayCap bounds each category list in a global search result.
	displayCap = 5
)

// Searcher is the semantic retrieval the facade builds on.
type Searcher interface {
	SemanticSearch(ctx context.Context, text string, limit int) []models.VectorSearchResult
}

// GlobalResult is the combined answer of GlobalSearch. TotalResults counts
// every hit before the category lists were capped, so it can exceed the
// number of results returned.
type GlobalResult struct {
	Query        string                      `json:"query"`
	Semantic     []models.VectorSearchResult `json:"semanticResults"`
	Commitments  []models.VectorSearchResult `json:"commitments"`
	Meetings     []models.VectorSearchResult `json:"meetings"`
	Clipboard    []models.VectorSearchResult `json:"clipboardItems"`
	TotalResults int                         `json:"totalResults"`
}

// Engine answers the launcher's search queries.
type Engine struct {
	searcher Searcher
	now      func() time.Time
	logger   *slog.Logger
}

// NewEngine creates a search facade.
func NewEngine(searcher Searcher, logger *slog.Logger) *Engine {
	return &Engine{searcher: searcher, now: time.Now, logger: logger}
}

// GlobalSearch runs the semantic, commitment, meeting and clipboard queries
// concurrently. Category lists are capped at 5 and the semantic list at limit.
func (e *Engine) GlobalSearch(ctx context.Context, query string, limit int) GlobalResult {
	logger := contextutil.LoggerOr(ctx, e.logger)

	var semantic, commitments, meetings, clipboard []models.VectorSearchResult
	var g errgroup.Group
	g.Go(func() error {
		semantic = e.searcher.SemanticSearch(ctx, query, limit)
		return nil
	})
	g.Go(func() error {
		commitments = e.SearchCommitments(ctx, query)
		return nil
	})
	g.Go(func() error {
		meetings = e.SearchMeetings(ctx, query)
		return nil
	})
	g.Go(func() error {
		clipboard = e.SearchClipboardHistory(ctx, query)
		return nil
	})
	_ = g.Wait()

	total := len(semantic) + len(commitments) + len(meetings) + len(clipboard)
	logger.Debug("global search", "query", query, "total", total)

	return GlobalResult{
		Query:        query,
		Semantic:     capped(semantic, limit),
		Commitments:  capped(commitments, displayCap),
		Meetings:     capped(meetings, displayCap),
		Clipboard:    capped(clipboard, displayCap),
		TotalResults: total,
	}
}

// SearchByType fetches limit*2 candidates and keeps those of typ, up to limit.
func (e *Engine) SearchByType(ctx context.Context, query string, typ models.EntityType, limit int) []models.VectorSearchResult {
	if limit <= 0 {
		return []models.VectorSearchResult{}
	}
	candidates := e.searcher.SemanticSearch(ctx, query, limit*2)
	out := make([]models.VectorSearchResult, 0, limit)
	for _, r := range candidates {
		if r.Type != typ {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

func (e *Engine) SearchCommitments(ctx context.Context, query string) []models.VectorSearchResult {
	return e.SearchByType(ctx, query, models.TypeCommitment, categoryLimit)
}

func (e *Engine) SearchMeetings(ctx context.Context, query string) []models.VectorSearchResult {
	return e.SearchByType(ctx, query, models.TypeMeeting, categoryLimit)
}

func (e *Engine) SearchClipboardHistory(ctx context.Context, query string) []models.VectorSearchResult {
	return e.SearchByType(ctx, query, models.TypeClipboard, categoryLimit)
}

func capped(results []models.VectorSearchResult, n int) []models.VectorSearchResult {
	if results == nil {
		return []models.VectorSearchResult{}
	}
	if n >= 0 && len(results) > n {
		return results[:n]
	}
	return results
}

// TimeConstraint restricts results to a recent window.
type TimeConstraint string

const (
	TimeRecent TimeConstraint = "recent"
	TimeToday  TimeConstraint = "today"
	TimeWeek   TimeConstraint = "week"
	TimeMonth  TimeConstraint = "month"
	TimeAll    TimeConstraint = "all"
)

// Cutoff returns the earliest timestamp the constraint admits. ok is false
// for TimeAll.
func (c TimeConstraint) Cutoff(now time.Time) (time.Time, bool) {
	switch c {
	case TimeRecent:
		return now.Add(-24 * time.Hour), true
	case TimeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case TimeWeek:
		return now.AddDate(0, 0, -7), true
	case TimeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// FilterByTime drops results older than the constraint's cutoff.
func FilterByTime(results []models.VectorSearchResult, c TimeConstraint, now time.Time) []models.VectorSearchResult {
	cutoff, ok := c.Cutoff(now)
	if !ok {
		return results
	}
	out := make([]models.VectorSearchResult, 0, len(results))
	for _, r := range results {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Query is a parsed free-text query.
type Query struct {
	Text     string             `json:"text"`
	Time     TimeConstraint     `json:"timeConstraint"`
	Type     *models.EntityType `json:"type,omitempty"`
	Original string             `json:"original"`
}

var timePhrases = []struct {
	phrase string
	c      TimeConstraint
}{
	{"this month", TimeMonth},
	{"last month", TimeMonth},
	{"this week", TimeWeek},
	{"last week", TimeWeek},
	{"today", TimeToday},
	{"recently", TimeRecent},
	{"recent", TimeRecent},
	{"lately", TimeRecent},
}

var typeHints = []struct {
	words []string
	typ   models.EntityType
}{
	{[]string{"commitments", "commitment", "promises", "promise"}, models.TypeCommitment},
	{[]string{"action items", "action item", "tasks", "todo"}, models.TypeActionItem},
	{[]string{"meetings", "meeting", "calls"}, models.TypeMeeting},
	{[]string{"clipboard", "copied"}, models.TypeClipboard},
	{[]string{"screen", "screenshots"}, models.TypeScreenCapture},
}

// ParseQuery extracts a time constraint and an entity type hint from q and
// returns the remaining text to search for.
func ParseQuery(q string) Query {
	out := Query{Original: q, Time: TimeAll}
	text := " " + strings.ToLower(strings.TrimSpace(q)) + " "

	for _, tp := range timePhrases {
		if strings.Contains(text, " "+tp.phrase+" ") {
			out.Time = tp.c
			text = strings.Replace(text, " "+tp.phrase+" ", " ", 1)
			break
		}
	}
	for _, hint := range typeHints {
		found := false
		for _, w := range hint.words {
			if strings.Contains(text, " "+w+" ") {
				text = strings.Replace(text, " "+w+" ", " ", 1)
				found = true
				break
			}
		}
		if found {
			typ := hint.typ
			out.Type = &typ
			break
		}
	}

	out.Text = strings.Join(strings.Fields(text), " ")
	if out.Text == "" {
		out.Text = strings.TrimSpace(q)
	}
	return out
}

// EnhancedResult is the answer to a parsed query.
type EnhancedResult struct {
	Query   Query                       `json:"query"`
	Results []models.VectorSearchResult `json:"results"`
}

// EnhancedSearch parses q, searches the hinted type (or all types) and
// applies the time constraint.
func (e *Engine) EnhancedSearch(ctx context.Context, q string, limit int) EnhancedResult {
	parsed := ParseQuery(q)
	if limit <= 0 {
		return EnhancedResult{Query: parsed, Results: []models.VectorSearchResult{}}
	}

	var results []models.VectorSearchResult
	if parsed.Type != nil {
		results = e.SearchByType(ctx, parsed.Text, *parsed.Type, limit*2)
	} else {
		results = e.searcher.SemanticSearch(ctx, parsed.Text, limit*2)
	}
	results = FilterByTime(results, parsed.Time, e.now())
	return EnhancedResult{Query: parsed, Results: capped(results, limit)}
}
