package platform_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"insig8-ai/internal/platform"
	"insig8-ai/internal/platform/mocks"
	"insig8-ai/internal/service"
)

type call struct {
	stdin []byte
	name  string
	args  []string
}

func recordingRunner(calls *[]call, out string, err error) platform.Runner {
	return func(_ context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
		*calls = append(*calls, call{stdin: stdin, name: name, args: args})
		return []byte(out), err
	}
}

func TestScreencaptureCommand_Capture(t *testing.T) {
	var gotArgs []string
	c := platform.ScreencaptureCommand{
		Dir: t.TempDir(),
		Run: func(_ context.Context, _ []byte, name string, args ...string) ([]byte, error) {
			gotArgs = args
			return nil, os.WriteFile(args[len(args)-1], []byte("png-bytes"), 0644)
		},
	}

	got, err := c.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("Capture() = %q, want %q", got, "png-bytes")
	}
	if _, err := os.Stat(gotArgs[len(gotArgs)-1]); !os.IsNotExist(err) {
		t.Errorf("capture file not removed: %v", err)
	}
}

func TestScreencaptureCommand_EmptyImageIsDenied(t *testing.T) {
	c := platform.ScreencaptureCommand{
		Dir: t.TempDir(),
		Run: func(context.Context, []byte, string, ...string) ([]byte, error) { return nil, nil },
	}
	if _, err := c.Capture(context.Background()); !errors.Is(err, service.ErrPermissionDenied) {
		t.Errorf("Capture() error = %v, want ErrPermissionDenied", err)
	}
}

func TestTesseractOCR_RecognizeText(t *testing.T) {
	var calls []call
	ocr := platform.TesseractOCR{Run: recordingRunner(&calls, "  Alice: lunch?\n\n", nil), Language: "eng"}

	got, err := ocr.RecognizeText(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("RecognizeText() error = %v", err)
	}
	if got != "Alice: lunch?" {
		t.Errorf("RecognizeText() = %q, want %q", got, "Alice: lunch?")
	}
	if len(calls) != 1 || string(calls[0].stdin) != "img" || strings.Join(calls[0].args, " ") != "stdin stdout -l eng" {
		t.Errorf("calls = %+v", calls)
	}

	calls = nil
	if got, _ := ocr.RecognizeText(context.Background(), nil); got != "" || len(calls) != 0 {
		t.Errorf("RecognizeText(nil) = %q with %d calls, want no call", got, len(calls))
	}
}

func TestAppleScriptApps_Foreground(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want platform.App
	}{
		{name: "with window", out: "Slack\n#general\n", want: platform.App{Name: "Slack", WindowTitle: "#general"}},
		{name: "no window", out: "Finder\n\n", want: platform.App{Name: "Finder"}},
		{name: "name only", out: "Dock", want: platform.App{Name: "Dock"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []call
			got, err := platform.AppleScriptApps{Run: recordingRunner(&calls, tt.out, nil)}.Foreground(context.Background())
			if err != nil {
				t.Fatalf("Foreground() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Foreground() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPasteboard_Read(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	apps := mocks.NewMockAppDetector(ctrl)
	apps.EXPECT().Foreground(gomock.Any()).Return(platform.App{Name: "Safari"}, nil)

	var calls []call
	p := platform.Pasteboard{Run: recordingRunner(&calls, "https://example.com", nil), Apps: apps}
	got, err := p.Read(context.Background())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Text != "https://example.com" || got.SourceApp != "Safari" {
		t.Errorf("Read() = %+v", got)
	}
}

func TestAppleScriptNotifier_Escapes(t *testing.T) {
	var calls []call
	n := platform.AppleScriptNotifier{Run: recordingRunner(&calls, "", nil)}
	if err := n.Notify(context.Background(), "Reminder", `Send "Q3" deck`); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	want := `display notification "Send \"Q3\" deck" with title "Reminder"`
	if len(calls) != 1 || calls[0].args[1] != want {
		t.Errorf("script = %v, want %q", calls, want)
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := platform.ExecRunner(context.Background(), nil, "insig8-definitely-missing-binary")
	if !errors.Is(err, service.ErrCapabilityUnavailable) {
		t.Errorf("ExecRunner() error = %v, want ErrCapabilityUnavailable", err)
	}
}

func TestMacOS(t *testing.T) {
	host := platform.MacOS(t.TempDir())
	if host.Screen == nil || host.OCR == nil || host.Apps == nil || host.Recorder == nil || host.Clipboard == nil || host.Notifier == nil {
		t.Errorf("MacOS() = %+v, want every command collaborator set", host)
	}
	if host.Transcriber != nil {
		t.Error("MacOS() Transcriber should be nil")
	}
}
