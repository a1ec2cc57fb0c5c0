// Package ingest pulls messages from external messaging services into the
// commitment pipeline.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"insig8-ai/internal/commitment"
	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
)

// DefaultSlackInterval is the channel poll cadence.
const DefaultSlackInterval = time.Minute

// MessageAnalyzer receives incoming messages.
type MessageAnalyzer interface {
	AnalyzeMessage(ctx context.Context, msg commitment.Message) (*models.Commitment, error)
}

// SlackAPI is the part of *slack.Client the poller uses.
type SlackAPI interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// NewSlackClient creates a client for token. An empty apiURL uses the
// public Slack API.
func NewSlackClient(token, apiURL string) *slack.Client {
	var opts []slack.Option
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return slack.New(token, opts...)
}

// SlackPoller reads new human messages from a fixed set of channels.
type SlackPoller struct {
	api      SlackAPI
	channels []string
	analyzer MessageAnalyzer
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	cursors map[string]string
	names   map[string]string
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSlackPoller creates a poller that only reports messages posted after
// its creation.
func NewSlackPoller(api SlackAPI, channels []string, analyzer MessageAnalyzer, interval time.Duration, logger *slog.Logger) *SlackPoller {
	if interval <= 0 {
		interval = DefaultSlackInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	start := slackTimestamp(time.Now())
	cursors := make(map[string]string, len(channels))
	for _, ch := range channels {
		cursors[ch] = start
	}
	return &SlackPoller{
		api:      api,
		channels: channels,
		analyzer: analyzer,
		interval: interval,
		logger:   logger,
		cursors:  cursors,
		names:    map[string]string{},
	}
}

// Start launches the poll loop. Starting a running poller is a no-op.
func (p *SlackPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(context.WithoutCancel(ctx))
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop ends the loop. It is idempotent.
func (p *SlackPoller) Stop() {
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

func (p *SlackPoller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(context.WithoutCancel(ctx))
		}
	}
}

// Poll forwards the messages posted since the previous poll in every
// channel, oldest first, and returns how many were forwarded. A failing
// channel is logged and retried on the next poll.
func (p *SlackPoller) Poll(ctx context.Context) int {
	logger := contextutil.LoggerOr(ctx, p.logger)
	total := 0
	for _, ch := range p.channels {
		n, err := p.pollChannel(ctx, ch)
		if err != nil {
			logger.Warn("slack poll failed", "channel", ch, "error", err)
		}
		total += n
	}
	return total
}

func (p *SlackPoller) pollChannel(ctx context.Context, channel string) (int, error) {
	p.mu.Lock()
	oldest := p.cursors[channel]
	p.mu.Unlock()

	resp, err := p.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channel,
		Oldest:    oldest,
		Limit:     200,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read channel history: %w", err)
	}

	msgs := resp.Messages
	sort.Slice(msgs, func(i, j int) bool { return tsLess(msgs[i].Timestamp, msgs[j].Timestamp) })

	n := 0
	for _, m := range msgs {
		if tsLess(oldest, m.Timestamp) {
			oldest = m.Timestamp
		}
		if m.SubType != "" || m.BotID != "" || strings.TrimSpace(m.Text) == "" {
			continue
		}
		_, err := p.analyzer.AnalyzeMessage(ctx, commitment.Message{
			Text:      m.Text,
			Platform:  "slack",
			Sender:    p.userName(ctx, m.User),
			ThreadID:  channel,
			Timestamp: parseSlackTimestamp(m.Timestamp),
		})
		if err != nil {
			contextutil.LoggerOr(ctx, p.logger).Warn("failed to analyze slack message", "channel", channel, "ts", m.Timestamp, "error", err)
			continue
		}
		n++
	}

	p.mu.Lock()
	p.cursors[channel] = oldest
	p.mu.Unlock()
	return n, nil
}

// userName resolves a user id to a display name, falling back to the id.
func (p *SlackPoller) userName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	p.mu.Lock()
	name, ok := p.names[id]
	p.mu.Unlock()
	if ok {
		return name
	}

	name = id
	if u, err := p.api.GetUserInfoContext(ctx, id); err == nil {
		switch {
		case u.Profile.DisplayName != "":
			name = u.Profile.DisplayName
		case u.RealName != "":
			name = u.RealName
		case u.Name != "":
			name = u.Name
		}
	} else {
		contextutil.LoggerOr(ctx, p.logger).Debug("slack user lookup failed", "user", id, "error", err)
	}

	p.mu.Lock()
	p.names[id] = name
	p.mu.Unlock()
	return name
}

func slackTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}

func parseSlackTimestamp(ts string) time.Time {
	sec, frac, _ := strings.Cut(ts, ".")
	s, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}
	us, _ := strconv.ParseInt((frac + "000000")[:6], 10, 64)
	return time.Unix(s, us*1000).UTC()
}

func tsLess(a, b string) bool {
	return parseSlackTimestamp(a).Before(parseSlackTimestamp(b))
}
