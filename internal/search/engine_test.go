package search

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"insig8-ai/internal/models"
)

type fakeSource struct {
	mu    sync.Mutex
	items map[models.EntityType][]models.StorableItem
	fail  map[models.EntityType]bool
	saved int
}

func newFakeSource(items ...models.StorableItem) *fakeSource {
	s := &fakeSource{items: map[models.EntityType][]models.StorableItem{}, fail: map[models.EntityType]bool{}}
	for _, it := range items {
		s.items[it.ItemType()] = append(s.items[it.ItemType()], it)
	}
	return s
}

func (s *fakeSource) Save(_ context.Context, item models.StorableItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved++
	s.items[item.ItemType()] = append(s.items[item.ItemType()], item)
	return nil
}

func (s *fakeSource) Items(_ context.Context, typ models.EntityType) ([]models.StorableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[typ] {
		return nil, errors.New("store unavailable")
	}
	return append([]models.StorableItem(nil), s.items[typ]...), nil
}

type fakeEmbedder map[string][]float32

func (f fakeEmbedder) Embed(_ context.Context, text string) []float32 {
	return f[text]
}

type stubBackend struct {
	results map[models.EntityType][]models.VectorSearchResult
	fail    map[models.EntityType]bool
	removed []string
}

func (b *stubBackend) Name() string { return "stub" }

func (b *stubBackend) Index(context.Context, models.StorableItem) error { return nil }

func (b *stubBackend) Remove(_ context.Context, typ models.EntityType, ids []string) error {
	if b.fail[typ] {
		return errors.New("backend down")
	}
	b.removed = append(b.removed, ids...)
	return nil
}

func (b *stubBackend) Query(_ context.Context, typ models.EntityType, _ []float32, _ int, _ float64) ([]models.VectorSearchResult, error) {
	if b.fail[typ] {
		return nil, errors.New("backend down")
	}
	return b.results[typ], nil
}

func commitment(id, desc string, vec []float32) *models.Commitment {
	return &models.Commitment{ID: id, Description: desc, Status: models.StatusPending, Embedding: vec, CreatedAt: time.Unix(0, 0)}
}

func clip(id, content string, vec []float32) *models.ClipboardItem {
	return &models.ClipboardItem{ID: id, Content: content, ContentType: models.ContentText, Embedding: vec}
}

func ids(results []models.VectorSearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{0.3, -1.2, 4}, b: []float32{0.3, -1.2, 4}, want: 1},
		{name: "scaled", a: []float32{1, 2}, b: []float32{2, 4}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "empty", a: nil, b: []float32{1}, want: 0},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 0},
		{name: "zero norm", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuse(t *testing.T) {
	semantic := []models.VectorSearchResult{{ID: "X", Content: "semantic x"}, {ID: "Y", Content: "semantic y"}}
	keyword := []models.VectorSearchResult{{ID: "Y", Content: "keyword y"}, {ID: "Z"}}

	got := Fuse(semantic, keyword)

	if want := []string{"Y", "X", "Z"}; !equalIDs(ids(got), want) {
		t.Fatalf("Fuse() order = %v, want %v", ids(got), want)
	}
	wantScores := []float64{1.5, 1.0, 0.5}
	for i, w := range wantScores {
		if math.Abs(got[i].Similarity-w) > 1e-12 {
			t.Errorf("Fuse()[%d] score = %v, want %v", i, got[i].Similarity, w)
		}
	}
	if got[0].Content != "semantic y" {
		t.Errorf("Fuse() kept content %q, want first occurrence %q", got[0].Content, "semantic y")
	}
}

func TestFuse_TiesKeepFirstAppearance(t *testing.T) {
	got := Fuse(
		[]models.VectorSearchResult{{ID: "A"}},
		[]models.VectorSearchResult{{ID: "B"}},
	)
	if want := []string{"A", "B"}; !equalIDs(ids(got), want) {
		t.Errorf("Fuse() = %v, want %v", ids(got), want)
	}
}

func TestEngine_Search_StrictThreshold(t *testing.T) {
	backend := &stubBackend{results: map[models.EntityType][]models.VectorSearchResult{
		models.TypeCommitment: {{ID: "at", Similarity: 0.7}, {ID: "above", Similarity: 0.71}},
		models.TypeMeeting:    {{ID: "best", Similarity: 0.95}},
		models.TypeClipboard:  {{ID: "below", Similarity: 0.4}},
	}}
	e := NewEngine(newFakeSource(), fakeEmbedder{}, backend, 0.7, nil)

	got := e.Search(context.Background(), []float32{1}, 10)

	if want := []string{"best", "above"}; !equalIDs(ids(got), want) {
		t.Fatalf("Search() = %v, want %v", ids(got), want)
	}
	for _, r := range got {
		if r.Similarity <= 0.7 {
			t.Errorf("Search() returned %s with similarity %v", r.ID, r.Similarity)
		}
	}
}

func TestEngine_Search_IsolatesFailingType(t *testing.T) {
	backend := &stubBackend{
		results: map[models.EntityType][]models.VectorSearchResult{
			models.TypeCommitment: {{ID: "c1", Similarity: 0.8}},
			models.TypeClipboard:  {{ID: "k1", Similarity: 0.9}},
		},
		fail: map[models.EntityType]bool{models.TypeMeeting: true},
	}
	e := NewEngine(newFakeSource(), fakeEmbedder{}, backend, 0, nil)

	got := e.Search(context.Background(), []float32{1}, 10)
	if want := []string{"k1", "c1"}; !equalIDs(ids(got), want) {
		t.Errorf("Search() = %v, want %v", ids(got), want)
	}
}

func TestEngine_Search_TiesFollowTypeOrder(t *testing.T) {
	backend := &stubBackend{results: map[models.EntityType][]models.VectorSearchResult{
		models.TypeClipboard:  {{ID: "clip", Similarity: 0.8}},
		models.TypeCommitment: {{ID: "commit", Similarity: 0.8}},
	}}
	e := NewEngine(newFakeSource(), fakeEmbedder{}, backend, 0, nil)

	got := e.Search(context.Background(), []float32{1}, 1)
	if want := []string{"commit"}; !equalIDs(ids(got), want) {
		t.Errorf("Search() = %v, want %v", ids(got), want)
	}
}

func TestEngine_Search_EmptyVector(t *testing.T) {
	e := NewEngine(newFakeSource(commitment("c", "x", []float32{1, 0})), fakeEmbedder{}, nil, 0, nil)
	got := e.Search(context.Background(), nil, 5)
	if got == nil || len(got) != 0 {
		t.Errorf("Search(nil) = %v, want empty non-nil", got)
	}
}

func TestEngine_ScanBackend(t *testing.T) {
	src := newFakeSource(
		commitment("same", "send the report", []float32{1, 0}),
		commitment("close", "send a report", []float32{0.9, 0.1}),
		commitment("far", "weather", []float32{0, 1}),
		commitment("unembedded", "nothing", nil),
		clip("clip", "report draft", []float32{0.95, 0.05}),
	)
	e := NewEngine(src, fakeEmbedder{"report": {1, 0}}, nil, 0, nil)

	got := e.SemanticSearch(context.Background(), "report", 10)
	if want := []string{"same", "clip", "close"}; !equalIDs(ids(got), want) {
		t.Fatalf("SemanticSearch() = %v, want %v", ids(got), want)
	}
	if got[1].Type != models.TypeClipboard {
		t.Errorf("SemanticSearch()[1].Type = %v, want %v", got[1].Type, models.TypeClipboard)
	}
	if e.Backend() != "scan" {
		t.Errorf("Backend() = %v, want scan", e.Backend())
	}
}

func TestEngine_SemanticSearch_FallsBackToKeywords(t *testing.T) {
	src := newFakeSource(commitment("c1", "send the budget report", nil))
	e := NewEngine(src, fakeEmbedder{}, nil, 0, nil)

	got := e.SemanticSearch(context.Background(), "budget", 5)
	if want := []string{"c1"}; !equalIDs(ids(got), want) {
		t.Errorf("SemanticSearch() = %v, want %v", ids(got), want)
	}
}

func TestEngine_KeywordSearch(t *testing.T) {
	src := newFakeSource(
		commitment("one", "budget review notes", nil),
		commitment("two", "budget budgeting plan draft", nil),
		clip("none", "holiday photos", nil),
	)
	src.fail[models.TypeMeeting] = true
	e := NewEngine(src, fakeEmbedder{}, nil, 0, nil)

	got := e.KeywordSearch(context.Background(), "the budget", 10)
	if want := []string{"two", "one"}; !equalIDs(ids(got), want) {
		t.Fatalf("KeywordSearch() = %v, want %v", ids(got), want)
	}
	// "budget" is contained in 2 of 4 words, and in 1 of 3 words.
	if math.Abs(got[0].Similarity-0.5) > 1e-9 {
		t.Errorf("KeywordSearch()[0] score = %v, want 0.5", got[0].Similarity)
	}
	if math.Abs(got[1].Similarity-1.0/3) > 1e-9 {
		t.Errorf("KeywordSearch()[1] score = %v, want 1/3", got[1].Similarity)
	}
	if got := e.KeywordSearch(context.Background(), "the and of", 10); len(got) != 0 {
		t.Errorf("KeywordSearch(stopwords) = %v, want empty", ids(got))
	}
}

func TestEngine_HybridSearch(t *testing.T) {
	src := newFakeSource(
		commitment("X", "alpha", []float32{1, 0}),
		commitment("Y", "budget", []float32{0.9, 0.3}),
		commitment("Z", "budget plan", []float32{0, 1}),
	)
	e := NewEngine(src, fakeEmbedder{"budget": {1, 0}}, nil, 0, nil)

	got := e.HybridSearch(context.Background(), "budget", 10)

	// semantic ranks X then Y, keyword ranks Y then Z.
	if want := []string{"Y", "X", "Z"}; !equalIDs(ids(got), want) {
		t.Fatalf("HybridSearch() = %v, want %v", ids(got), want)
	}
	wantScores := []float64{1.5, 1.0, 0.5}
	for i, w := range wantScores {
		if math.Abs(got[i].Similarity-w) > 1e-12 {
			t.Errorf("HybridSearch()[%d] score = %v, want %v", i, got[i].Similarity, w)
		}
	}

	if got := e.HybridSearch(context.Background(), "budget", 1); !equalIDs(ids(got), []string{"Y"}) {
		t.Errorf("HybridSearch(limit 1) = %v, want [Y]", ids(got))
	}
}

func TestEngine_FindSimilar(t *testing.T) {
	self := commitment("self", "ship the release", []float32{1, 0})
	src := newFakeSource(
		self,
		commitment("near", "ship a release", []float32{0.99, 0.05}),
		commitment("nearer", "release shipping", []float32{1, 0.01}),
		commitment("far", "lunch", []float32{0, 1}),
	)
	e := NewEngine(src, fakeEmbedder{}, nil, 0, nil)

	got := e.FindSimilar(context.Background(), self, 2)
	if want := []string{"nearer", "near"}; !equalIDs(ids(got), want) {
		t.Errorf("FindSimilar() = %v, want %v", ids(got), want)
	}

	got = e.FindSimilar(context.Background(), commitment("bare", "no vector", nil), 5)
	if len(got) != 0 {
		t.Errorf("FindSimilar(unembedded) = %v, want empty", ids(got))
	}
}

func TestEngine_Index(t *testing.T) {
	src := newFakeSource()
	e := NewEngine(src, fakeEmbedder{"embed me": {0, 1}}, nil, 0, nil)
	ctx := context.Background()

	embedded := commitment("a", "embed me", nil)
	if err := e.Index(ctx, embedded); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if len(embedded.Embedding) != 2 {
		t.Errorf("Index() embedding = %v, want generated vector", embedded.Embedding)
	}

	bare := commitment("b", "unknown text", nil)
	if err := e.Index(ctx, bare); err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if len(bare.Embedding) != 0 {
		t.Errorf("Index() embedding = %v, want empty", bare.Embedding)
	}
	if src.saved != 2 {
		t.Errorf("saved = %d, want 2", src.saved)
	}

	got := e.Search(ctx, []float32{0, 1}, 5)
	if want := []string{"a"}; !equalIDs(ids(got), want) {
		t.Errorf("Search() after Index = %v, want %v", ids(got), want)
	}
}

func TestEngine_Unindex(t *testing.T) {
	backend := &stubBackend{fail: map[models.EntityType]bool{models.TypeMeeting: true}}
	e := NewEngine(newFakeSource(), fakeEmbedder{}, backend, 0, nil)
	ctx := context.Background()

	if err := e.Unindex(ctx, models.TypeActionItem, []string{"a1", "a2"}); err != nil {
		t.Fatalf("Unindex() error = %v", err)
	}
	if len(backend.removed) != 2 {
		t.Errorf("Unindex() removed = %v, want 2 ids", backend.removed)
	}
	if err := e.Unindex(ctx, models.TypeMeeting, nil); err != nil {
		t.Errorf("Unindex() with no ids error = %v", err)
	}
	if err := e.Unindex(ctx, models.TypeMeeting, []string{"m1"}); err == nil {
		t.Error("Unindex() error = nil, want backend error")
	}
}
