package commitment

import (
	"context"
	"errors"
	"testing"
	"time"

	"insig8-ai/internal/analyzer"
	"insig8-ai/internal/llm"
)

func TestDueDate(t *testing.T) {
	now := time.Date(2026, 4, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		deadline string
		hours    float64
		want     *time.Time
	}{
		{deadline: "tomorrow", want: ptr(now.AddDate(0, 0, 1))},
		{deadline: "by Tomorrow morning", want: ptr(now.AddDate(0, 0, 1))},
		{deadline: "today", want: ptr(now.Add(8 * time.Hour))},
		{deadline: "EOD", want: ptr(now.Add(8 * time.Hour))},
		{deadline: "next week", want: ptr(now.AddDate(0, 0, 7))},
		{deadline: "", hours: 2, want: ptr(now.Add(2 * time.Hour))},
		{deadline: "someday"},
		{deadline: ""},
	}

	for _, tt := range tests {
		t.Run(tt.deadline, func(t *testing.T) {
			got := DueDate(tt.deadline, tt.hours, now)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("DueDate() = %v, want %v", got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("DueDate() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

type fakeChat struct {
	reply string
	err   error
}

func (f fakeChat) ChatWithMessages(context.Context, []llm.Message, llm.ChatParams) (string, error) {
	return f.reply, f.err
}

func TestLLMDetector_Detect(t *testing.T) {
	tests := []struct {
		name    string
		chat    fakeChat
		want    Detection
		wantErr bool
	}{
		{
			name: "fenced json",
			chat: fakeChat{reply: "```json\n{\"hasCommitment\": true, \"description\": \"send the contract\", \"deadline\": \"tomorrow\", \"urgency\": \"high\", \"confidence\": 0.9}\n```"},
			want: Detection{HasCommitment: true, Description: "send the contract", Recipient: "Alice", Deadline: "tomorrow", Urgency: "high", Confidence: 0.9},
		},
		{
			name: "no commitment",
			chat: fakeChat{reply: `{"hasCommitment": false}`},
			want: Detection{Recipient: "Alice"},
		},
		{
			name:    "missing description",
			chat:    fakeChat{reply: `{"hasCommitment": true, "description": " "}`},
			wantErr: true,
		},
		{
			name:    "prose",
			chat:    fakeChat{reply: "I think so"},
			wantErr: true,
		},
		{
			name:    "chat error",
			chat:    fakeChat{err: errors.New("timeout")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLLMDetector(tt.chat).Detect(context.Background(), Message{Text: "sure", Sender: "Alice"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Detect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackDetector_NeverFails(t *testing.T) {
	det := NewFallbackDetector(failingDetector{}, failingDetector{}, nil)
	got, err := det.Detect(context.Background(), Message{Text: "I'll send it"})
	if err != nil {
		t.Errorf("Detect() error = %v, want nil", err)
	}
	if got.HasCommitment {
		t.Errorf("Detect() = %+v, want no commitment", got)
	}
}

func TestRuleDetector_Detect(t *testing.T) {
	tests := []struct {
		name          string
		msg           Message
		want          bool
		wantRecipient string
	}{
		{
			name: "promise phrase",
			msg:  Message{Text: "I'll get back to you on this shortly", Platform: "slack", Sender: "Alice"},
			want: true, wantRecipient: "Alice",
		},
		{
			name: "small talk",
			msg:  Message{Text: "The weather is nice today", Platform: "slack", Sender: "Alice"},
		},
		{
			name: "ask forwarded from screen",
			msg:  Message{Text: RespondText("Bob", "can you review the launch doc?"), Platform: ScreenPlatform, Sender: "Bob"},
			want: true, wantRecipient: "Bob",
		},
		{
			name: "respond wording outside screen",
			msg:  Message{Text: "Respond to Bob: the doc is fine", Platform: "slack", Sender: "Bob"},
		},
	}

	det := NewRuleDetector(analyzer.New(nil, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := det.Detect(context.Background(), tt.msg)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got.HasCommitment != tt.want {
				t.Fatalf("Detect() hasCommitment = %v, want %v", got.HasCommitment, tt.want)
			}
			if !tt.want {
				return
			}
			if got.Description != tt.msg.Text || got.Recipient != tt.wantRecipient {
				t.Errorf("Detect() = %+v, want description %q for %s", got, tt.msg.Text, tt.wantRecipient)
			}
		})
	}
}
