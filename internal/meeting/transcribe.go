package meeting

import (
	"context"
	"fmt"
	"os"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// FileTranscriber transcribes a finished recording.
type FileTranscriber interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// AssemblyAITranscriber uploads a recording to AssemblyAI and waits for
// the speaker-labelled transcript.
type AssemblyAITranscriber struct {
	client *aai.Client
}

func NewAssemblyAITranscriber(apiKey string) *AssemblyAITranscriber {
	return &AssemblyAITranscriber{client: aai.NewClient(apiKey)}
}

func (t *AssemblyAITranscriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open recording: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	transcript, err := t.client.Transcripts.TranscribeFromReader(ctx, f, params)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe recording: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("transcription failed: %s", str(transcript.Error))
	}
	return transcriptText(transcript), nil
}

// transcriptText renders utterances as "Speaker X: text" lines so the
// participants heuristic can see them. Without utterances the plain text
// is returned.
func transcriptText(t aai.Transcript) string {
	if len(t.Utterances) == 0 {
		return strings.TrimSpace(str(t.Text))
	}
	lines := make([]string, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		text := strings.TrimSpace(str(u.Text))
		if text == "" {
			continue
		}
		if speaker := str(u.Speaker); speaker != "" {
			text = "Speaker " + speaker + ": " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
