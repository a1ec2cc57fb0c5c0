package meeting

import (
	"context"
	"errors"
	"reflect"
	"testing"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/llm"
)

const standup = `Alice: Thanks everyone for joining.
Bob: I'll send the revised budget to finance tomorrow.
Alice: Carol will update the launch checklist.
Carol: Action item: schedule the vendor review.
Bob: Sounds good?`

func TestPatternExtractor(t *testing.T) {
	e := NewPatternExtractor(analyzer.New(nil, nil))

	got, err := e.ExtractActionItems(context.Background(), standup)
	if err != nil {
		t.Fatalf("ExtractActionItems() error = %v", err)
	}

	want := []ExtractedItem{
		{Description: "I'll send the revised budget to finance tomorrow", Assignee: "Bob", Deadline: "tomorrow", Priority: "medium"},
		{Description: "Carol will update the launch checklist", Assignee: "Carol", Priority: "medium"},
		{Description: "schedule the vendor review", Priority: "medium"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractActionItems() = %+v, want %+v", got, want)
	}
}

func TestPatternExtractor_Dedupes(t *testing.T) {
	e := NewPatternExtractor(analyzer.New(nil, nil))
	got, _ := e.ExtractActionItems(context.Background(), "We need to fix the build.\nwe need to fix the build.")
	if len(got) != 1 {
		t.Errorf("ExtractActionItems() = %d items, want 1", len(got))
	}
}

func TestParticipants(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
		want       []string
	}{
		{name: "standup", transcript: standup, want: []string{"Alice", "Bob", "Carol"}},
		{name: "labelled speakers", transcript: "Speaker A: hi\nSpeaker B: hello\nSpeaker A: bye", want: []string{"Speaker A", "Speaker B"}},
		{name: "no speakers", transcript: "just some words\nand more", want: []string{}},
		{name: "empty", transcript: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Participants(tt.transcript); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Participants() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPatternSummarizer(t *testing.T) {
	s := PatternSummarizer{}

	short, _ := s.Summarize(context.Background(), "Alice: We shipped it.\nBob: Great.")
	if short != "We shipped it. Great." {
		t.Errorf("Summarize() = %q, want both sentences", short)
	}

	transcript := `Alice: The budget review is on Friday.
Bob: The budget needs a second review from finance.
Carol: Lunch was good.
Dan: Weather is nice.
Alice: Finance owns the budget review.`
	got, _ := s.Summarize(context.Background(), transcript)
	want := "The budget review is on Friday. The budget needs a second review from finance. Finance owns the budget review."
	if got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}

	if empty, _ := s.Summarize(context.Background(), "  "); empty != "" {
		t.Errorf("Summarize(blank) = %q, want empty", empty)
	}
}

type fakeChat struct {
	reply string
	err   error
}

func (f fakeChat) ChatWithMessages(context.Context, []llm.Message, llm.ChatParams) (string, error) {
	return f.reply, f.err
}

func TestLLMExtractor(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    int
		wantErr bool
	}{
		{name: "fenced array", reply: "```json\n[{\"description\": \"send notes\", \"assignee\": \"Bob\"}, {\"description\": \" \"}]\n```", want: 1},
		{name: "empty array", reply: "[]", want: 0},
		{name: "prose", reply: "No action items.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLLMExtractor(fakeChat{reply: tt.reply}).ExtractActionItems(context.Background(), "x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractActionItems() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != tt.want {
				t.Errorf("ExtractActionItems() = %d items, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFallbacks(t *testing.T) {
	broken := fakeChat{err: errors.New("model offline")}
	ctx := context.Background()

	ex := NewFallbackExtractor(NewLLMExtractor(broken), NewPatternExtractor(analyzer.New(nil, nil)), nil)
	items, err := ex.ExtractActionItems(ctx, standup)
	if err != nil || len(items) != 3 {
		t.Errorf("FallbackExtractor = %d items, %v; want 3, nil", len(items), err)
	}

	sum := NewFallbackSummarizer(NewLLMSummarizer(broken), PatternSummarizer{}, nil)
	summary, err := sum.Summarize(ctx, "Alice: We shipped it.")
	if err != nil || summary != "We shipped it." {
		t.Errorf("FallbackSummarizer = %q, %v", summary, err)
	}

	sum = NewFallbackSummarizer(NewLLMSummarizer(fakeChat{reply: "  Shipped.  "}), PatternSummarizer{}, nil)
	if summary, _ := sum.Summarize(ctx, "anything"); summary != "Shipped." {
		t.Errorf("FallbackSummarizer primary = %q, want %q", summary, "Shipped.")
	}
}

func TestTranscriptText(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name string
		in   aai.Transcript
		want string
	}{
		{
			name: "utterances",
			in: aai.Transcript{Utterances: []aai.TranscriptUtterance{
				{Speaker: s("A"), Text: s("Let's start.")},
				{Speaker: s("B"), Text: s(" ")},
				{Speaker: s("B"), Text: s("I'll take notes.")},
			}},
			want: "Speaker A: Let's start.\nSpeaker B: I'll take notes.",
		},
		{name: "plain text", in: aai.Transcript{Text: s(" hello there ")}, want: "hello there"},
		{name: "nothing", in: aai.Transcript{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transcriptText(tt.in); got != tt.want {
				t.Errorf("transcriptText() = %q, want %q", got, tt.want)
			}
		})
	}
}
