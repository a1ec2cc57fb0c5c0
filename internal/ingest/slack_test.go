package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"insig8-ai/internal/commitment"
	"insig8-ai/internal/models"
)

type recordingAnalyzer struct {
	mu       sync.Mutex
	messages []commitment.Message
}

func (r *recordingAnalyzer) AnalyzeMessage(_ context.Context, msg commitment.Message) (*models.Commitment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil, nil
}

type fakeSlack struct {
	history map[string][]slack.Message
	oldest  map[string]string
	users   map[string]*slack.User
	lookups int
	err     error
}

func (f *fakeSlack) GetConversationHistoryContext(_ context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.oldest[params.ChannelID] = params.Oldest
	var out []slack.Message
	for _, m := range f.history[params.ChannelID] {
		if tsLess(params.Oldest, m.Timestamp) {
			out = append(out, m)
		}
	}
	return &slack.GetConversationHistoryResponse{Messages: out}, nil
}

func (f *fakeSlack) GetUserInfoContext(_ context.Context, id string) (*slack.User, error) {
	f.lookups++
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("user_not_found")
}

func msg(ts, user, text string) slack.Message {
	return slack.Message{Msg: slack.Msg{Timestamp: ts, User: user, Text: text}}
}

func TestSlackPoller_Poll(t *testing.T) {
	now := time.Now()
	later := func(d time.Duration) string { return slackTimestamp(now.Add(d)) }

	api := &fakeSlack{
		history: map[string][]slack.Message{
			"C1": {
				msg(later(3*time.Second), "U2", "I'll send the deck tomorrow"),
				msg(later(time.Second), "U1", "Can you review the PR?"),
				msg(later(-time.Hour), "U1", "old message"),
				{Msg: slack.Msg{Timestamp: later(2 * time.Second), SubType: "channel_join", User: "U3", Text: "joined"}},
				{Msg: slack.Msg{Timestamp: later(2 * time.Second), BotID: "B1", Text: "deploy finished"}},
			},
		},
		oldest: map[string]string{},
		users: map[string]*slack.User{
			"U1": {ID: "U1", Name: "alice", RealName: "Alice Doe", Profile: slack.UserProfile{DisplayName: "Alice"}},
		},
	}
	sink := &recordingAnalyzer{}
	p := NewSlackPoller(api, []string{"C1"}, sink, time.Hour, nil)

	if n := p.Poll(context.Background()); n != 2 {
		t.Fatalf("Poll() = %d, want 2", n)
	}
	if len(sink.messages) != 2 {
		t.Fatalf("forwarded = %d, want 2", len(sink.messages))
	}
	first, second := sink.messages[0], sink.messages[1]
	if first.Text != "Can you review the PR?" || first.Sender != "Alice" || first.Platform != "slack" || first.ThreadID != "C1" {
		t.Errorf("first = %+v", first)
	}
	if second.Sender != "U2" {
		t.Errorf("second sender = %q, want the id when lookup fails", second.Sender)
	}
	if !first.Timestamp.Before(second.Timestamp) {
		t.Error("messages not forwarded oldest first")
	}

	if n := p.Poll(context.Background()); n != 0 {
		t.Errorf("Poll() again = %d, want 0", n)
	}
	if api.oldest["C1"] != later(3*time.Second) {
		t.Errorf("cursor = %q, want newest timestamp", api.oldest["C1"])
	}
	if api.lookups != 2 {
		t.Errorf("user lookups = %d, want cached names", api.lookups)
	}
}

func TestSlackPoller_PollFailure(t *testing.T) {
	api := &fakeSlack{err: errors.New("ratelimited"), oldest: map[string]string{}}
	p := NewSlackPoller(api, []string{"C1", "C2"}, &recordingAnalyzer{}, time.Hour, nil)
	if n := p.Poll(context.Background()); n != 0 {
		t.Errorf("Poll() = %d, want 0", n)
	}
}

func TestSlackPoller_WithClient(t *testing.T) {
	ts := slackTimestamp(time.Now().Add(time.Minute))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/conversations.history":
			_, _ = w.Write([]byte(`{"ok":true,"messages":[{"type":"message","user":"U1","text":"Could you send the notes?","ts":"` + ts + `"}]}`))
		case "/users.info":
			_, _ = w.Write([]byte(`{"ok":true,"user":{"id":"U1","name":"bob","real_name":"Bob Stone","profile":{"display_name":""}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	sink := &recordingAnalyzer{}
	p := NewSlackPoller(NewSlackClient("xoxb-test", server.URL+"/"), []string{"C9"}, sink, time.Hour, nil)
	if n := p.Poll(context.Background()); n != 1 {
		t.Fatalf("Poll() = %d, want 1", n)
	}
	if got := sink.messages[0]; got.Sender != "Bob Stone" || got.Text != "Could you send the notes?" {
		t.Errorf("forwarded = %+v", got)
	}
}

func TestParseSlackTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"1700000000.000100", time.Unix(1700000000, 100000).UTC()},
		{"1700000000", time.Unix(1700000000, 0).UTC()},
		{"garbage", time.Time{}},
	}
	for _, tt := range tests {
		if got := parseSlackTimestamp(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseSlackTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
