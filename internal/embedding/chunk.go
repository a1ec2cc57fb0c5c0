package embedding

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ChunkThreshold is the longest text, in characters, embedded in one call.
const ChunkThreshold = 512

// Chunk splits text into sentence-bounded pieces of at most limit runes.
// Text that already fits is returned unchanged as a single chunk.
// A single sentence longer than limit is split at the last space before
// the limit, or hard split when it has none.
func Chunk(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, sentence := range SplitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if n > limit {
			flush()
			chunks = append(chunks, splitLong(sentence, limit)...)
			continue
		}
		if size > 0 && size+1+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteByte(' ')
			size++
		}
		current.WriteString(sentence)
		size += n
	}
	flush()

	return chunks
}

// SplitSentences breaks text after '.', '!', '?' or a newline.
func SplitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i, r := range runes {
		end := false
		switch r {
		case '\n':
			end = true
		case '.', '!', '?':
			end = i+1 == len(runes) || unicode.IsSpace(runes[i+1])
		}
		if !end {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

func splitLong(sentence string, limit int) []string {
	var out []string
	runes := []rune(sentence)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		if s := strings.TrimSpace(string(runes[:cut])); s != "" {
			out = append(out, s)
		}
		runes = runes[cut:]
	}
	if s := strings.TrimSpace(string(runes)); s != "" {
		out = append(out, s)
	}
	return out
}
