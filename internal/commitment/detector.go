package commitment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/llm"
	"insig8-ai/internal/models"
)

// Message is an incoming message observed on some platform.
type Message struct {
	Text      string    `json:"message"`
	Platform  string    `json:"platform"`
	Sender    string    `json:"sender"`
	ThreadID  string    `json:"threadId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Detection is what a detector reports about one message.
type Detection struct {
	HasCommitment bool    `json:"hasCommitment"`
	Description   string  `json:"description"`
	Recipient     string  `json:"recipient"`
	Deadline      string  `json:"deadline"`
	Urgency       string  `json:"urgency"`
	ReminderHours float64 `json:"reminderHours"`
	Confidence    float64 `json:"confidence"`
}

// Detector decides whether a message contains a commitment made by the user.
type Detector interface {
	Detect(ctx context.Context, msg Message) (Detection, error)
}

// ScreenPlatform is the platform of asks forwarded from screen captures.
const ScreenPlatform = "screen"

const respondPrefix = "Respond to "

// RespondText phrases an ask seen on screen as a task for the local user.
func RespondText(sender, content string) string {
	return respondPrefix + sender + ": " + content
}

// RuleDetector matches a fixed list of commitment phrases. Asks forwarded
// from the screen are commitments to reply.
type RuleDetector struct {
	analyzer *analyzer.Analyzer
}

func NewRuleDetector(a *analyzer.Analyzer) *RuleDetector {
	return &RuleDetector{analyzer: a}
}

func (d *RuleDetector) Detect(ctx context.Context, msg Message) (Detection, error) {
	forwarded := msg.Platform == ScreenPlatform && strings.HasPrefix(msg.Text, respondPrefix)
	if !forwarded {
		if _, ok := analyzer.MatchCommitment(msg.Text); !ok {
			return Detection{}, nil
		}
	}
	analysis := d.analyzer.Analyze(ctx, msg.Text)
	return Detection{
		HasCommitment: true,
		Description:   strings.TrimSpace(msg.Text),
		Recipient:     msg.Sender,
		Deadline:      deadlineWord(msg.Text),
		Urgency:       string(analysis.Urgency),
		Confidence:    analysis.CommitmentScore,
	}, nil
}

var deadlineWords = []string{"tomorrow", "today", "tonight", "eod", "end of day", "next week", "this week", "week"}

func deadlineWord(text string) string {
	lower := strings.ToLower(text)
	for _, w := range deadlineWords {
		if strings.Contains(lower, w) {
			return w
		}
	}
	return ""
}

// LLMDetector asks a chat model to extract the commitment as JSON.
type LLMDetector struct {
	chat llm.ChatCompleter
}

func NewLLMDetector(chat llm.ChatCompleter) *LLMDetector {
	return &LLMDetector{chat: chat}
}

const detectPrompt = `Decide whether the message below contains a commitment the user made to someone else (a promise to do, send, check or reply to something).
Respond with JSON only:
{"hasCommitment": bool, "description": "what was promised", "recipient": "who it was promised to", "deadline": "deadline phrase or empty", "urgency": "low|medium|high|urgent", "reminderHours": number, "confidence": number between 0 and 1}

Platform: %s
Sender: %s
Message:
%s`

func (d *LLMDetector) Detect(ctx context.Context, msg Message) (Detection, error) {
	reply, err := d.chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "system", Content: "You extract commitments from workplace messages."},
		{Role: "user", Content: fmt.Sprintf(detectPrompt, msg.Platform, msg.Sender, msg.Text)},
	}, llm.ChatParams{Temperature: 0.1, MaxTokens: 256})
	if err != nil {
		return Detection{}, err
	}

	var det Detection
	if err := json.Unmarshal([]byte(llm.ExtractJSON(reply)), &det); err != nil {
		return Detection{}, fmt.Errorf("failed to parse detection: %w", err)
	}
	if det.HasCommitment && strings.TrimSpace(det.Description) == "" {
		return Detection{}, fmt.Errorf("detection has no description")
	}
	if det.Recipient == "" {
		det.Recipient = msg.Sender
	}
	return det, nil
}

// FallbackDetector uses primary and falls back to the rule matcher when
// primary fails.
type FallbackDetector struct {
	primary  Detector
	fallback Detector
	logger   *slog.Logger
}

func NewFallbackDetector(primary, fallback Detector, logger *slog.Logger) *FallbackDetector {
	return &FallbackDetector{primary: primary, fallback: fallback, logger: logger}
}

// Detect never returns an error.
func (d *FallbackDetector) Detect(ctx context.Context, msg Message) (Detection, error) {
	if d.primary != nil {
		det, err := d.primary.Detect(ctx, msg)
		if err == nil {
			return det, nil
		}
		contextutil.LoggerOr(ctx, d.logger).Warn("commitment detector failed, using rules", "error", err)
	}
	det, err := d.fallback.Detect(ctx, msg)
	if err != nil {
		return Detection{}, nil
	}
	return det, nil
}

// DueDate applies the deadline heuristics: "tomorrow" is one day out,
// "today" eight hours and "week" seven days. Without a recognized deadline
// a positive reminderHours offset is used; otherwise there is no due date.
func DueDate(deadline string, reminderHours float64, now time.Time) *time.Time {
	lower := strings.ToLower(deadline)
	var due time.Time
	switch {
	case strings.Contains(lower, "tomorrow"):
		due = now.AddDate(0, 0, 1)
	case strings.Contains(lower, "today"), strings.Contains(lower, "tonight"),
		strings.Contains(lower, "eod"), strings.Contains(lower, "end of day"):
		due = now.Add(8 * time.Hour)
	case strings.Contains(lower, "week"):
		due = now.AddDate(0, 0, 7)
	case reminderHours > 0:
		due = now.Add(time.Duration(reminderHours * float64(time.Hour)))
	default:
		return nil
	}
	return &due
}

// priorityFor maps a detector urgency label to a priority and its score.
func priorityFor(urgency string) (models.Priority, float64) {
	p := models.ParsePriority(urgency)
	return p, p.UrgencyScore()
}
