// Package platform declares the host collaborators the core depends on:
// screen capture, OCR, foreground app detection, audio capture, live
// transcription, clipboard access and user notifications.
package platform

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_platform.go -package=mocks insig8-ai/internal/platform ScreenCapturer,TextRecognizer,AppDetector,AudioRecorder,LiveTranscriber,ClipboardReader,Notifier

import (
	"context"
	"log/slog"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
)

// ScreenCapturer grabs the current screen as an encoded image.
type ScreenCapturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// TextRecognizer extracts text from an encoded image.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// App identifies the foreground application.
type App struct {
	Name        string `json:"name"`
	WindowTitle string `json:"windowTitle"`
}

// AppDetector reports the foreground application.
type AppDetector interface {
	Foreground(ctx context.Context) (App, error)
}

// AudioRecorder records microphone audio to a file.
type AudioRecorder interface {
	Start(ctx context.Context, path string) error
	Stop(ctx context.Context) (models.AudioRecording, error)
}

// Segment is one piece of live transcription. Speaker may be empty.
type Segment struct {
	Speaker string
	Text    string
}

// LiveTranscriber streams transcription segments until ctx is canceled,
// then closes the channel.
type LiveTranscriber interface {
	Transcribe(ctx context.Context) (<-chan Segment, error)
}

// Clip is the current clipboard content.
type Clip struct {
	Text      string
	SourceApp string
}

// ClipboardReader reads the current clipboard content.
type ClipboardReader interface {
	Read(ctx context.Context) (Clip, error)
}

// Notifier shows a notification to the user.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// LogNotifier writes notifications to the log. It is used when the host
// provides no notification channel.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, title, body string) error {
	contextutil.LoggerOr(ctx, n.Logger).Info("notification", "title", title, "body", body)
	return nil
}

// Host bundles the collaborators supplied by the host application. Any of
// them may be nil; the component using it degrades or reports the
// capability as unavailable.
type Host struct {
	Screen      ScreenCapturer
	OCR         TextRecognizer
	Apps        AppDetector
	Recorder    AudioRecorder
	Transcriber LiveTranscriber
	Clipboard   ClipboardReader
	Notifier    Notifier
}
