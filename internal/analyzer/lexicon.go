package analyzer

import (
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {}, "i": {}, "you": {}, "we": {},
	"this": {}, "that": {}, "me": {}, "my": {}, "your": {}, "our": {}, "will": {}, "can": {},
	"do": {}, "did": {}, "not": {}, "so": {}, "if": {}, "just": {}, "about": {}, "all": {},
	"what": {}, "when": {}, "how": {}, "there": {}, "here": {}, "they": {}, "them": {}, "he": {},
	"she": {}, "his": {}, "her": {}, "its": {}, "been": {}, "would": {}, "could": {}, "should": {},
	"ll": {}, "s": {}, "t": {}, "re": {}, "ve": {}, "m": {}, "d": {},
}

// CommitmentPhrases are the lowercase phrases the rule-based detector
// looks for. Matching is a case-insensitive substring test.
var CommitmentPhrases = []string{
	"i'll get back",
	"i will get back",
	"i'll look into",
	"i will look into",
	"i'll send",
	"i will send",
	"i'll follow up",
	"i will follow up",
	"i'll check",
	"i will check",
	"will respond",
	"i'll reply",
	"i'll review",
	"i'll take care of",
	"i'll handle",
	"i'll let you know",
	"i'll have it",
	"let me check",
	"let me get back",
	"i'll circle back",
}

var requestPhrases = []string{
	"can you", "could you", "would you", "will you", "please", "let me know",
	"need you to", "can we", "could we", "are you able", "do you have",
	"any update", "when can", "what do you think",
}

var questionStarts = []string{
	"who", "what", "when", "where", "why", "how", "is", "are", "do", "does",
	"did", "can", "could", "would", "will", "should", "have", "has",
}

var positiveWords = map[string]float64{
	"thanks": 1, "thank": 1, "great": 1, "good": 0.5, "awesome": 1, "excellent": 1,
	"love": 1, "appreciate": 1, "perfect": 1, "nice": 0.5, "happy": 1, "glad": 1,
	"works": 0.5, "done": 0.5, "resolved": 1, "congrats": 1, "helpful": 1,
}

var negativeWords = map[string]float64{
	"bad": 1, "broken": 1, "fail": 1, "failed": 1, "failing": 1, "error": 0.5,
	"issue": 0.5, "problem": 1, "angry": 1, "upset": 1, "disappointed": 1,
	"late": 0.5, "delay": 0.5, "delayed": 0.5, "blocked": 1, "bug": 0.5, "wrong": 1,
	"unfortunately": 1, "sorry": 0.5, "worse": 1, "terrible": 1,
}

var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "don": {}, "isn": {}, "wasn": {}, "aren": {},
}

var urgentMarkers = []string{"urgent", "asap", "immediately", "right now", "right away", "emergency", "critical"}
var highMarkers = []string{"today", "eod", "end of day", "tonight", "this morning", "this afternoon", "important", "deadline"}
var lowMarkers = []string{"no rush", "whenever", "no hurry", "low priority", "someday", "when you get a chance"}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Keywords tokenizes text and drops stopwords.
func Keywords(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// MatchCommitment returns the first commitment phrase contained in text.
func MatchCommitment(text string) (string, bool) {
	lower := normalizeApostrophes(strings.ToLower(text))
	for _, p := range CommitmentPhrases {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// IsQuestion reports whether text asks something.
func IsQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return false
	}
	for _, w := range questionStarts {
		if tokens[0] == w {
			return true
		}
	}
	return false
}

// IsRequest reports whether text solicits an action or a reply.
func IsRequest(text string) bool {
	return containsAny(normalizeApostrophes(strings.ToLower(text)), requestPhrases)
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func normalizeApostrophes(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(s)
}
