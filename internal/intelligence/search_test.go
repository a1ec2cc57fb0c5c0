package intelligence

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"insig8-ai/internal/models"
)

// fakeSearcher returns a fixed ranking truncated to the requested limit.
type fakeSearcher struct {
	mu      sync.Mutex
	results []models.VectorSearchResult
	limits  []int
	queries []string
}

func (f *fakeSearcher) SemanticSearch(_ context.Context, text string, limit int) []models.VectorSearchResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	f.queries = append(f.queries, text)
	out := f.results
	if len(out) > limit {
		out = out[:limit]
	}
	return append([]models.VectorSearchResult(nil), out...)
}

func results(prefix string, typ models.EntityType, n int, at time.Time) []models.VectorSearchResult {
	out := make([]models.VectorSearchResult, n)
	for i := range out {
		out[i] = models.VectorSearchResult{ID: fmt.Sprintf("%s%d", prefix, i), Type: typ, Similarity: 0.9, Timestamp: at}
	}
	return out
}

func interleave(lists ...[]models.VectorSearchResult) []models.VectorSearchResult {
	var out []models.VectorSearchResult
	for i := 0; ; i++ {
		added := false
		for _, l := range lists {
			if i < len(l) {
				out = append(out, l[i])
				added = true
			}
		}
		if !added {
			return out
		}
	}
}

func TestGlobalSearch_TotalCountsBeforeCaps(t *testing.T) {
	now := time.Now()
	searcher := &fakeSearcher{results: interleave(
		results("c", models.TypeCommitment, 30, now),
		results("m", models.TypeMeeting, 30, now),
		results("k", models.TypeClipboard, 30, now),
	)}
	e := NewEngine(searcher, nil)

	got := e.GlobalSearch(context.Background(), "test", 20)

	if len(got.Semantic) != 20 {
		t.Errorf("GlobalSearch() semantic = %d, want 20", len(got.Semantic))
	}
	for name, list := range map[string][]models.VectorSearchResult{
		"commitments": got.Commitments,
		"meetings":    got.Meetings,
		"clipboard":   got.Clipboard,
	} {
		if len(list) != 5 {
			t.Errorf("GlobalSearch() %s = %d, want 5", name, len(list))
		}
	}
	for _, r := range got.Commitments {
		if r.Type != models.TypeCommitment {
			t.Errorf("GlobalSearch() commitments contains %v", r.Type)
		}
	}

	// semantic 20; each category fetched 40 candidates, of which 14, 13 and
	// 13 matched its type.
	want := 20 + 14 + 13 + 13
	if got.TotalResults != want {
		t.Errorf("GlobalSearch() TotalResults = %d, want %d", got.TotalResults, want)
	}
	returned := len(got.Semantic) + len(got.Commitments) + len(got.Meetings) + len(got.Clipboard)
	if got.TotalResults == returned {
		t.Errorf("GlobalSearch() TotalResults = returned count %d, want pre-truncation sum", returned)
	}
}

func TestGlobalSearch_EmptyListsAreNonNil(t *testing.T) {
	e := NewEngine(&fakeSearcher{}, nil)
	got := e.GlobalSearch(context.Background(), "nothing", 10)
	if got.Semantic == nil || got.Commitments == nil || got.Meetings == nil || got.Clipboard == nil {
		t.Errorf("GlobalSearch() = %+v, want non-nil empty lists", got)
	}
	if got.TotalResults != 0 {
		t.Errorf("GlobalSearch() TotalResults = %d, want 0", got.TotalResults)
	}
}

func TestSearchByType_WidensThenFilters(t *testing.T) {
	now := time.Now()
	searcher := &fakeSearcher{results: interleave(
		results("m", models.TypeMeeting, 10, now),
		results("c", models.TypeCommitment, 10, now),
	)}
	e := NewEngine(searcher, nil)

	got := e.SearchByType(context.Background(), "q", models.TypeCommitment, 3)

	if len(searcher.limits) != 1 || searcher.limits[0] != 6 {
		t.Errorf("SearchByType() fetched %v, want [6]", searcher.limits)
	}
	if len(got) != 3 {
		t.Fatalf("SearchByType() = %d results, want 3", len(got))
	}
	for i, r := range got {
		if want := fmt.Sprintf("c%d", i); r.ID != want {
			t.Errorf("SearchByType()[%d] = %v, want %v", i, r.ID, want)
		}
	}
}

func TestTimeConstraint_Cutoff(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		c      TimeConstraint
		want   time.Time
		wantOK bool
	}{
		{TimeRecent, now.Add(-24 * time.Hour), true},
		{TimeToday, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{TimeWeek, time.Date(2026, 3, 8, 14, 30, 0, 0, time.UTC), true},
		{TimeMonth, time.Date(2026, 2, 15, 14, 30, 0, 0, time.UTC), true},
		{TimeAll, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			got, ok := tt.c.Cutoff(now)
			if ok != tt.wantOK || !got.Equal(tt.want) {
				t.Errorf("Cutoff() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFilterByTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	in := []models.VectorSearchResult{
		{ID: "fresh", Timestamp: now.Add(-time.Hour)},
		{ID: "yesterday", Timestamp: now.Add(-20 * time.Hour)},
		{ID: "old", Timestamp: now.AddDate(0, 0, -10)},
	}

	tests := []struct {
		c    TimeConstraint
		want []string
	}{
		{TimeToday, []string{"fresh"}},
		{TimeRecent, []string{"fresh", "yesterday"}},
		{TimeWeek, []string{"fresh", "yesterday"}},
		{TimeMonth, []string{"fresh", "yesterday", "old"}},
		{TimeAll, []string{"fresh", "yesterday", "old"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.c), func(t *testing.T) {
			got := FilterByTime(in, tt.c, now)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterByTime() = %d results, want %v", len(got), tt.want)
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("FilterByTime()[%d] = %v, want %v", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	commitment := models.TypeCommitment
	meeting := models.TypeMeeting

	tests := []struct {
		q        string
		wantText string
		wantTime TimeConstraint
		wantType *models.EntityType
	}{
		{q: "budget review", wantText: "budget review", wantTime: TimeAll},
		{q: "commitments to Alice this week", wantText: "to alice", wantTime: TimeWeek, wantType: &commitment},
		{q: "meetings today", wantText: "meetings today", wantTime: TimeToday, wantType: &meeting},
		{q: "recent", wantText: "recent", wantTime: TimeRecent},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := ParseQuery(tt.q)
			if got.Time != tt.wantTime {
				t.Errorf("ParseQuery() Time = %v, want %v", got.Time, tt.wantTime)
			}
			if (got.Type == nil) != (tt.wantType == nil) || (got.Type != nil && *got.Type != *tt.wantType) {
				t.Errorf("ParseQuery() Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Text != tt.wantText {
				t.Errorf("ParseQuery() Text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestEnhancedSearch(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	searcher := &fakeSearcher{results: []models.VectorSearchResult{
		{ID: "old-commit", Type: models.TypeCommitment, Timestamp: now.AddDate(0, 0, -3)},
		{ID: "meeting", Type: models.TypeMeeting, Timestamp: now.Add(-time.Hour)},
		{ID: "new-commit", Type: models.TypeCommitment, Timestamp: now.Add(-2 * time.Hour)},
	}}
	e := NewEngine(searcher, nil)
	e.now = func() time.Time { return now }

	got := e.EnhancedSearch(context.Background(), "commitments about the deck today", 5)

	if len(got.Results) != 1 || got.Results[0].ID != "new-commit" {
		t.Errorf("EnhancedSearch() = %+v, want [new-commit]", got.Results)
	}
	if searcher.queries[0] != "about the deck" {
		t.Errorf("EnhancedSearch() searched %q, want %q", searcher.queries[0], "about the deck")
	}
}
