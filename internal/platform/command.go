package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"insig8-ai/internal/models"
	"insig8-ai/internal/service"
)

// Runner runs an external command with optional stdin and returns its stdout.
type Runner func(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec. A missing binary reports
// ErrCapabilityUnavailable; macOS privacy refusals report ErrPermissionDenied.
func ExecRunner(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", name, service.ErrCapabilityUnavailable)
		}
		msg := strings.TrimSpace(stderr.String())
		if deniedMessage(msg) {
			return nil, fmt.Errorf("%s: %w: %s", name, service.ErrPermissionDenied, msg)
		}
		return nil, fmt.Errorf("failed to run %s: %w: %s", name, err, msg)
	}
	return out, nil
}

func deniedMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "not allowed") ||
		strings.Contains(lower, "not authorized") ||
		strings.Contains(lower, "could not create image")
}

// ScreencaptureCommand captures the main display with screencapture(1).
type ScreencaptureCommand struct {
	Run Runner
	Dir string
}

func (c ScreencaptureCommand) Capture(ctx context.Context) ([]byte, error) {
	f, err := os.CreateTemp(c.Dir, "capture-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create capture file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer func() {
		_ = os.Remove(path)
	}()

	if _, err := c.run()(ctx, nil, "screencapture", "-x", "-t", "png", path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capture: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty capture: %w", service.ErrPermissionDenied)
	}
	return data, nil
}

func (c ScreencaptureCommand) run() Runner {
	if c.Run == nil {
		return ExecRunner
	}
	return c.Run
}

// TesseractOCR recognizes text with tesseract(1) reading the image from stdin.
type TesseractOCR struct {
	Run      Runner
	Language string
}

func (t TesseractOCR) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}
	args := []string{"stdin", "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}
	run := t.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, image, "tesseract", args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

const frontmostScript = `tell application "System Events"
	set frontApp to first application process whose frontmost is true
	set appName to name of frontApp
	set winTitle to ""
	try
		set winTitle to name of front window of frontApp
	end try
end tell
return appName & linefeed & winTitle`

// AppleScriptApps asks System Events for the frontmost application.
type AppleScriptApps struct {
	Run Runner
}

func (a AppleScriptApps) Foreground(ctx context.Context) (App, error) {
	run := a.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, nil, "osascript", "-e", frontmostScript)
	if err != nil {
		return App{}, err
	}
	name, title, _ := strings.Cut(strings.TrimRight(string(out), "\n"), "\n")
	return App{Name: strings.TrimSpace(name), WindowTitle: strings.TrimSpace(title)}, nil
}

// Pasteboard reads the clipboard with pbpaste(1). When Apps is set the
// foreground application is reported as the clip's source.
type Pasteboard struct {
	Run  Runner
	Apps AppDetector
}

func (p Pasteboard) Read(ctx context.Context) (Clip, error) {
	run := p.Run
	if run == nil {
		run = ExecRunner
	}
	out, err := run(ctx, nil, "pbpaste")
	if err != nil {
		return Clip{}, err
	}
	clip := Clip{Text: string(out)}
	if p.Apps != nil {
		if app, err := p.Apps.Foreground(ctx); err == nil {
			clip.SourceApp = app.Name
		}
	}
	return clip, nil
}

// AppleScriptNotifier posts a Notification Center banner.
type AppleScriptNotifier struct {
	Run Runner
}

func (n AppleScriptNotifier) Notify(ctx context.Context, title, body string) error {
	run := n.Run
	if run == nil {
		run = ExecRunner
	}
	script := fmt.Sprintf("display notification %s with title %s", appleString(body), appleString(title))
	_, err := run(ctx, nil, "osascript", "-e", script)
	return err
}

func appleString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// SoxRecorder records the default input device with rec(1) from SoX.
type SoxRecorder struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	path    string
	started time.Time
}

func (r *SoxRecorder) Start(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil {
		return fmt.Errorf("recorder already running")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create recordings directory: %w", err)
	}

	cmd := exec.Command("rec", "-q", "-c", "1", "-r", "16000", path)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("rec: %w", service.ErrCapabilityUnavailable)
		}
		return fmt.Errorf("failed to start recorder: %w", err)
	}
	r.cmd = cmd
	r.path = path
	r.started = time.Now()
	return nil
}

func (r *SoxRecorder) Stop(_ context.Context) (models.AudioRecording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd == nil {
		return models.AudioRecording{}, fmt.Errorf("recorder not running")
	}
	cmd := r.cmd
	r.cmd = nil

	_ = cmd.Process.Signal(os.Interrupt)
	// rec exits non-zero when interrupted.
	_ = cmd.Wait()

	return models.AudioRecording{
		Path:     r.path,
		Format:   strings.TrimPrefix(filepath.Ext(r.path), "."),
		Duration: time.Since(r.started),
	}, nil
}

// MacOS returns the command-line backed collaborators. Screen captures are
// staged in dir. No live transcriber is available from the command line.
func MacOS(dir string) Host {
	apps := AppleScriptApps{}
	return Host{
		Screen:    ScreencaptureCommand{Dir: dir},
		OCR:       TesseractOCR{},
		Apps:      apps,
		Recorder:  &SoxRecorder{},
		Clipboard: Pasteboard{Apps: apps},
		Notifier:  AppleScriptNotifier{},
	}
}
