package screen

import (
	"regexp"
	"strings"

	"insig8-ai/internal/analyzer"
)

// DetectedMessage is a chat-like line found in OCR text.
type DetectedMessage struct {
	Sender   string `json:"sender"`
	Content  string `json:"content"`
	Platform string `json:"platform"`
}

// Ask reports whether the message asks the reader for something.
func (m DetectedMessage) Ask() bool {
	return analyzer.IsQuestion(m.Content) || analyzer.IsRequest(m.Content)
}

var (
	colonLine     = regexp.MustCompile(`^\s*([A-Z][\w.'-]*(?: [A-Z][\w.'-]*){0,2}):\s+(.{3,})$`)
	timestampLine = regexp.MustCompile(`^\s*\[?\d{1,2}:\d{2}(?:\s?[AaPp][Mm])?\]?\s*[-,]?\s*([^:\[\]]{1,40}):\s+(.{3,})$`)
	mailHeader    = regexp.MustCompile(`^\s*(From|Subject):\s+(.+)$`)
	mailAddress   = regexp.MustCompile(`\s*<[^>]*>\s*$`)
)

// notSenders are labels that look like "Sender:" prefixes but are not.
var notSenders = map[string]bool{
	"to": true, "cc": true, "bcc": true, "date": true, "subject": true, "from": true,
	"re": true, "fw": true, "fwd": true, "http": true, "https": true, "note": true,
	"warning": true, "error": true, "status": true, "time": true, "location": true,
}

type parser func(ocr string) []DetectedMessage

// platformFor maps a foreground application to a messaging platform and
// the recognizer for its layout.
func platformFor(app string) (string, parser) {
	lower := strings.ToLower(app)
	switch {
	case strings.Contains(lower, "slack"):
		return "slack", colonParser("slack")
	case strings.Contains(lower, "teams"):
		return "teams", colonParser("teams")
	case strings.Contains(lower, "discord"):
		return "discord", colonParser("discord")
	case strings.Contains(lower, "mail"), strings.Contains(lower, "outlook"):
		return "email", parseMail
	case strings.Contains(lower, "messages"), strings.Contains(lower, "whatsapp"), strings.Contains(lower, "telegram"):
		return "messages", timestampParser("messages")
	default:
		return "screen", colonParser("screen")
	}
}

// DetectMessages finds "Sender: content" messages in the OCR text of a
// capture taken while app was in the foreground.
func DetectMessages(app, ocr string) []DetectedMessage {
	_, parse := platformFor(app)
	return parse(ocr)
}

func colonParser(platform string) parser {
	return func(ocr string) []DetectedMessage {
		var out []DetectedMessage
		for _, line := range strings.Split(ocr, "\n") {
			if m := colonLine.FindStringSubmatch(line); m != nil {
				out = appendMessage(out, platform, m[1], m[2])
			}
		}
		return out
	}
}

func timestampParser(platform string) parser {
	colon := colonParser(platform)
	return func(ocr string) []DetectedMessage {
		var out []DetectedMessage
		for _, line := range strings.Split(ocr, "\n") {
			if m := timestampLine.FindStringSubmatch(line); m != nil {
				out = appendMessage(out, platform, m[1], m[2])
				continue
			}
			out = append(out, colon(line)...)
		}
		return out
	}
}

// parseMail pairs a "From:" header with the following "Subject:" header.
func parseMail(ocr string) []DetectedMessage {
	var out []DetectedMessage
	sender := ""
	for _, line := range strings.Split(ocr, "\n") {
		m := mailHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch m[1] {
		case "From":
			sender = strings.Trim(mailAddress.ReplaceAllString(m[2], ""), `" `)
		case "Subject":
			if sender != "" {
				out = appendMessage(out, "email", sender, m[2])
				sender = ""
			}
		}
	}
	return out
}

func appendMessage(out []DetectedMessage, platform, sender, content string) []DetectedMessage {
	sender = strings.TrimSpace(sender)
	content = strings.TrimSpace(content)
	if sender == "" || content == "" || notSenders[strings.ToLower(sender)] {
		return out
	}
	return append(out, DetectedMessage{Sender: sender, Content: content, Platform: platform})
}
