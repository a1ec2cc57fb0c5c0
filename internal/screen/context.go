package screen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"

	"insig8-ai/internal/models"
)

const (
	maxVisibleWords  = 100
	thumbnailSide    = 1280
	thumbnailQuality = 70
)

// uiKeywords are control labels spotted in OCR text.
var uiKeywords = []string{
	"send", "reply", "search", "cancel", "save", "submit", "share", "close",
	"compose", "inbox", "settings", "join", "mute", "new message", "open",
}

// ContentHash is the hex sha256 of a raw frame.
func ContentHash(frame []byte) string {
	sum := sha256.Sum256(frame)
	return hex.EncodeToString(sum[:])
}

// analyzeContext keeps the first visible words of the OCR text and spots UI
// element labels.
func analyzeContext(window, ocr string) models.ScreenContext {
	words := strings.Fields(ocr)
	if len(words) > maxVisibleWords {
		words = words[:maxVisibleWords]
	}
	return models.ScreenContext{
		ActiveWindow: window,
		VisibleText:  append([]string{}, words...),
		UIElements:   uiElements(ocr),
	}
}

func uiElements(ocr string) []string {
	found := []string{}
	lower := " " + strings.Join(strings.Fields(strings.ToLower(ocr)), " ") + " "
	for _, k := range uiKeywords {
		if strings.Contains(lower, " "+k+" ") {
			found = append(found, k)
		}
	}
	return found
}

// thumbnail decodes a frame and re-encodes it as a bounded JPEG.
func thumbnail(frame []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	b := img.Bounds()
	if b.Dx() > thumbnailSide || b.Dy() > thumbnailSide {
		img = imaging.Fit(img, thumbnailSide, thumbnailSide, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
