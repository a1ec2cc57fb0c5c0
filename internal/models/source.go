package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SourceKind discriminates CommitmentSource.
type SourceKind string

const (
	SourceSlack  SourceKind = "slack"
	SourceEmail  SourceKind = "email"
	SourceTeams  SourceKind = "teams"
	SourceManual SourceKind = "manual"
	SourceScreen SourceKind = "screen"
)

// CommitmentSource records where a commitment was observed.
// Ref holds the channel id, message id or conversation id for the messaging
// kinds, and the capture time in epoch milliseconds for SourceScreen.
type CommitmentSource struct {
	Kind SourceKind `json:"kind"`
	Ref  string     `json:"ref,omitempty"`
}

func SlackSource(channelID string) CommitmentSource {
	return CommitmentSource{Kind: SourceSlack, Ref: channelID}
}

func EmailSource(messageID string) CommitmentSource {
	return CommitmentSource{Kind: SourceEmail, Ref: messageID}
}

func TeamsSource(conversationID string) CommitmentSource {
	return CommitmentSource{Kind: SourceTeams, Ref: conversationID}
}

func ManualSource() CommitmentSource {
	return CommitmentSource{Kind: SourceManual}
}

func ScreenSource(capturedAt time.Time) CommitmentSource {
	return CommitmentSource{Kind: SourceScreen, Ref: strconv.FormatInt(capturedAt.UnixMilli(), 10)}
}

// SourceForPlatform picks the source kind for a platform name reported with
// an incoming message.
func SourceForPlatform(platform, threadID string, at time.Time) CommitmentSource {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "slack":
		return SlackSource(threadID)
	case "email", "mail", "gmail", "outlook":
		return EmailSource(threadID)
	case "teams", "microsoft teams":
		return TeamsSource(threadID)
	case "screen":
		return ScreenSource(at)
	default:
		return ManualSource()
	}
}

// CapturedAt returns the capture time of a screen source.
func (s CommitmentSource) CapturedAt() (time.Time, bool) {
	if s.Kind != SourceScreen {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(s.Ref, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// String encodes the source as "kind:ref" for storage.
func (s CommitmentSource) String() string {
	if s.Ref == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + ":" + s.Ref
}

// ParseCommitmentSource decodes the String form.
func ParseCommitmentSource(raw string) (CommitmentSource, error) {
	kind, ref, _ := strings.Cut(raw, ":")
	switch SourceKind(kind) {
	case SourceSlack, SourceEmail, SourceTeams, SourceManual, SourceScreen:
		return CommitmentSource{Kind: SourceKind(kind), Ref: ref}, nil
	default:
		return CommitmentSource{}, fmt.Errorf("unknown commitment source %q", raw)
	}
}
