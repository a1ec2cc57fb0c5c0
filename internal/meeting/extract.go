package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/embedding"
	"insig8-ai/internal/llm"
)

// ExtractedItem is an action item found in a transcript.
type ExtractedItem struct {
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
}

// Extractor finds action items in transcript text.
type Extractor interface {
	ExtractActionItems(ctx context.Context, transcript string) ([]ExtractedItem, error)
}

// Summarizer condenses a transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

const extractPrompt = `Extract the action items from this meeting transcript.
Respond with a JSON array only, one object per action item:
[{"description": "what must be done", "assignee": "person or empty", "deadline": "deadline phrase or empty", "priority": "low|medium|high|urgent"}]
Respond with [] when there are none.

Transcript:
%s`

const summaryPrompt = `Summarize this meeting transcript in at most five sentences. Cover the decisions made and open questions. Respond with the summary text only.

Transcript:
%s`

// LLMExtractor asks a chat model for structured action items.
type LLMExtractor struct {
	chat llm.ChatCompleter
}

func NewLLMExtractor(chat llm.ChatCompleter) *LLMExtractor {
	return &LLMExtractor{chat: chat}
}

func (e *LLMExtractor) ExtractActionItems(ctx context.Context, transcript string) ([]ExtractedItem, error) {
	reply, err := e.chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "system", Content: "You extract action items from meeting transcripts."},
		{Role: "user", Content: fmt.Sprintf(extractPrompt, transcript)},
	}, llm.ChatParams{Temperature: 0.1, MaxTokens: 1024})
	if err != nil {
		return nil, err
	}

	var items []ExtractedItem
	if err := json.Unmarshal([]byte(llm.ExtractJSON(reply)), &items); err != nil {
		return nil, fmt.Errorf("failed to parse action items: %w", err)
	}
	out := items[:0]
	for _, it := range items {
		if it.Description = strings.TrimSpace(it.Description); it.Description != "" {
			out = append(out, it)
		}
	}
	return out, nil
}

// LLMSummarizer asks a chat model for a short summary.
type LLMSummarizer struct {
	chat llm.ChatCompleter
}

func NewLLMSummarizer(chat llm.ChatCompleter) *LLMSummarizer {
	return &LLMSummarizer{chat: chat}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	reply, err := s.chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "system", Content: "You write concise meeting summaries."},
		{Role: "user", Content: fmt.Sprintf(summaryPrompt, transcript)},
	}, llm.ChatParams{Temperature: 0.3, MaxTokens: 512})
	if err != nil {
		return "", err
	}
	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", fmt.Errorf("empty summary")
	}
	return summary, nil
}

var (
	labeledItem   = regexp.MustCompile(`(?i)\b(?:action items?|todo|to-do|follow[- ]up)\s*[:\-]\s*(.+)`)
	namedAssignee = regexp.MustCompile(`^([A-Z][a-z]+)\s+(?:will|should|needs to|is going to)\s`)
	deadlineRef   = regexp.MustCompile(`(?i)\b(today|tonight|tomorrow|eod|end of day|next week|this week|by \w+day)\b`)
)

var actionCues = []string{
	"i'll ", "i will ", "we'll ", "we will ", "we need to ", "need to ", "needs to ",
	"should ", "let's ", "going to ", "can you ", "could you ", "please ",
}

// PatternExtractor finds action items with cue phrases. Lines of the form
// "Speaker: text" attribute first-person items to the speaker.
type PatternExtractor struct {
	analyzer *analyzer.Analyzer
}

func NewPatternExtractor(a *analyzer.Analyzer) *PatternExtractor {
	return &PatternExtractor{analyzer: a}
}

func (e *PatternExtractor) ExtractActionItems(ctx context.Context, transcript string) ([]ExtractedItem, error) {
	var items []ExtractedItem
	seen := map[string]bool{}

	for _, line := range strings.Split(transcript, "\n") {
		speaker, text := splitSpeaker(line)
		for _, sentence := range embedding.SplitSentences(text) {
			item, ok := e.match(ctx, speaker, sentence)
			if !ok {
				continue
			}
			key := strings.ToLower(item.Description)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, item)
		}
	}
	return items, nil
}

func (e *PatternExtractor) match(ctx context.Context, speaker, sentence string) (ExtractedItem, bool) {
	if strings.HasSuffix(sentence, "?") && !containsCue(sentence) {
		return ExtractedItem{}, false
	}

	description := ""
	if m := labeledItem.FindStringSubmatch(sentence); m != nil {
		description = m[1]
	} else if containsCue(sentence) || namedAssignee.MatchString(sentence) {
		description = sentence
	}
	description = strings.TrimSpace(strings.TrimRight(description, ".!"))
	if len(strings.Fields(description)) < 3 {
		return ExtractedItem{}, false
	}

	item := ExtractedItem{Description: description}
	lower := strings.ToLower(sentence)
	switch {
	case strings.HasPrefix(lower, "i'll ") || strings.HasPrefix(lower, "i will "):
		item.Assignee = speaker
	default:
		if m := namedAssignee.FindStringSubmatch(sentence); m != nil {
			item.Assignee = m[1]
		}
	}
	if m := deadlineRef.FindString(sentence); m != "" {
		item.Deadline = strings.ToLower(m)
	}
	item.Priority = string(e.analyzer.Analyze(ctx, sentence).Urgency)
	return item, true
}

func containsCue(sentence string) bool {
	lower := strings.ToLower(sentence) + " "
	for _, cue := range actionCues {
		if strings.HasPrefix(lower, cue) || strings.Contains(lower, " "+cue) {
			return true
		}
	}
	return false
}

const summarySentences = 3

// PatternSummarizer picks the sentences that mention the transcript's most
// frequent keywords, in their original order.
type PatternSummarizer struct{}

func (PatternSummarizer) Summarize(_ context.Context, transcript string) (string, error) {
	var sentences []string
	for _, line := range strings.Split(transcript, "\n") {
		_, text := splitSpeaker(line)
		sentences = append(sentences, embedding.SplitSentences(text)...)
	}
	if len(sentences) == 0 {
		return "", nil
	}
	if len(sentences) <= summarySentences {
		return strings.Join(sentences, " "), nil
	}

	phrases := analyzer.KeyPhrases(strings.Join(sentences, " "), 8)
	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(sentences))
	for i, s := range sentences {
		words := map[string]bool{}
		for _, w := range analyzer.Keywords(s) {
			words[w] = true
		}
		score := 0
		for _, p := range phrases {
			if words[p] {
				score++
			}
		}
		ranked[i] = scored{index: i, score: score}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	picked := ranked[:summarySentences]
	sort.Slice(picked, func(i, j int) bool { return picked[i].index < picked[j].index })
	out := make([]string, len(picked))
	for i, p := range picked {
		out[i] = sentences[p.index]
	}
	return strings.Join(out, " "), nil
}

// FallbackExtractor uses primary and degrades to fallback when primary fails.
type FallbackExtractor struct {
	primary  Extractor
	fallback Extractor
	logger   *slog.Logger
}

func NewFallbackExtractor(primary, fallback Extractor, logger *slog.Logger) *FallbackExtractor {
	return &FallbackExtractor{primary: primary, fallback: fallback, logger: logger}
}

func (f *FallbackExtractor) ExtractActionItems(ctx context.Context, transcript string) ([]ExtractedItem, error) {
	if f.primary != nil {
		items, err := f.primary.ExtractActionItems(ctx, transcript)
		if err == nil {
			return items, nil
		}
		contextutil.LoggerOr(ctx, f.logger).Warn("action item extraction failed, using patterns", "error", err)
	}
	return f.fallback.ExtractActionItems(ctx, transcript)
}

// FallbackSummarizer uses primary and degrades to fallback when primary fails.
type FallbackSummarizer struct {
	primary  Summarizer
	fallback Summarizer
	logger   *slog.Logger
}

func NewFallbackSummarizer(primary, fallback Summarizer, logger *slog.Logger) *FallbackSummarizer {
	return &FallbackSummarizer{primary: primary, fallback: fallback, logger: logger}
}

func (f *FallbackSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if f.primary != nil {
		summary, err := f.primary.Summarize(ctx, transcript)
		if err == nil {
			return summary, nil
		}
		contextutil.LoggerOr(ctx, f.logger).Warn("summarization failed, using extractive summary", "error", err)
	}
	return f.fallback.Summarize(ctx, transcript)
}

var speakerPrefix = regexp.MustCompile(`^\s*([A-Z][\w.'-]*(?: [A-Z0-9][\w.'-]*){0,3}):\s+(.*)$`)

// splitSpeaker separates a "Speaker: text" line.
func splitSpeaker(line string) (string, string) {
	if m := speakerPrefix.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	return "", strings.TrimSpace(line)
}

// Participants returns the speakers named by "Speaker:" line prefixes in
// order of first appearance.
func Participants(transcript string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, line := range strings.Split(transcript, "\n") {
		speaker, _ := splitSpeaker(line)
		if speaker == "" || seen[speaker] {
			continue
		}
		seen[speaker] = true
		out = append(out, speaker)
	}
	return out
}
