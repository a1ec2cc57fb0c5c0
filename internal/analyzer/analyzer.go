// Package analyzer extracts sentiment, entities, key phrases and commitment
// signals from short text using lexical heuristics, with optional classifier
// overrides.
package analyzer

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/models"
)

// Sentiment is the overall tone of a text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// EntityKind classifies an extracted entity.
type EntityKind string

const (
	EntityPerson  EntityKind = "person"
	EntityMention EntityKind = "mention"
	EntityEmail   EntityKind = "email"
	EntityURL     EntityKind = "url"
	EntityDate    EntityKind = "date"
)

// Entity is a named thing found in text.
type Entity struct {
	Text string     `json:"text"`
	Kind EntityKind `json:"kind"`
}

// Analysis is the result of analyzing one text.
type Analysis struct {
	Sentiment       Sentiment       `json:"sentiment"`
	SentimentScore  float64         `json:"sentimentScore"`
	Entities        []Entity        `json:"entities"`
	KeyPhrases      []string        `json:"keyPhrases"`
	CommitmentScore float64         `json:"commitmentScore"`
	Urgency         models.Priority `json:"urgency"`
	UrgencyScore    float64         `json:"urgencyScore"`
	IsQuestion      bool            `json:"isQuestion"`
	IsRequest       bool            `json:"isRequest"`
}

const maxKeyPhrases = 5

var (
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	urlPattern     = regexp.MustCompile(`https?://[^\s]+`)
	mentionPattern = regexp.MustCompile(`(?:^|\s)@([A-Za-z0-9._-]+)`)
	datePattern    = regexp.MustCompile(`(?i)\b(today|tomorrow|tonight|yesterday|next week|this week|monday|tuesday|wednesday|thursday|friday|saturday|sunday|\d{1,2}/\d{1,2}(?:/\d{2,4})?)\b`)
)

// Analyzer runs the lexical heuristics and, when a classifier source is
// configured, lets classifiers override sentiment and urgency.
type Analyzer struct {
	classifiers *ClassifierCache
	logger      *slog.Logger
}

// New creates an analyzer. classifiers may be nil.
func New(classifiers *ClassifierCache, logger *slog.Logger) *Analyzer {
	return &Analyzer{classifiers: classifiers, logger: logger}
}

// Analyze never fails; classifier errors fall back to the lexical result.
func (a *Analyzer) Analyze(ctx context.Context, text string) Analysis {
	sentiment, sentimentScore := lexicalSentiment(text)
	urgency := lexicalUrgency(text)

	out := Analysis{
		Sentiment:       sentiment,
		SentimentScore:  sentimentScore,
		Entities:        ExtractEntities(text),
		KeyPhrases:      KeyPhrases(text, maxKeyPhrases),
		CommitmentScore: CommitmentScore(text),
		Urgency:         urgency,
		UrgencyScore:    urgency.UrgencyScore(),
		IsQuestion:      IsQuestion(text),
		IsRequest:       IsRequest(text),
	}

	if a == nil || a.classifiers == nil {
		return out
	}

	logger := contextutil.LoggerOr(ctx, a.logger)
	if c, err := a.classifiers.Classify(ctx, TaskSentiment, text); err == nil {
		switch Sentiment(strings.ToLower(c.Label)) {
		case SentimentPositive, SentimentNegative, SentimentNeutral:
			out.Sentiment = Sentiment(strings.ToLower(c.Label))
			out.SentimentScore = c.Score
		}
	} else {
		logger.Debug("sentiment classifier unavailable, using lexical result", "error", err)
	}
	if c, err := a.classifiers.Classify(ctx, TaskUrgency, text); err == nil {
		out.Urgency = models.ParsePriority(c.Label)
		out.UrgencyScore = out.Urgency.UrgencyScore()
	} else {
		logger.Debug("urgency classifier unavailable, using lexical result", "error", err)
	}
	return out
}

// lexicalSentiment scores text in [-1, 1]; a negation flips the next scored word.
func lexicalSentiment(text string) (Sentiment, float64) {
	tokens := Tokenize(normalizeApostrophes(text))
	var score, weight float64
	negate := false
	for _, tok := range tokens {
		if _, ok := negations[tok]; ok {
			negate = true
			continue
		}
		w := positiveWords[tok] - negativeWords[tok]
		if w == 0 {
			continue
		}
		if negate {
			w = -w
			negate = false
		}
		score += w
		weight += abs(w)
	}
	if weight == 0 {
		return SentimentNeutral, 0
	}
	norm := score / weight
	switch {
	case norm > 0.2:
		return SentimentPositive, norm
	case norm < -0.2:
		return SentimentNegative, norm
	default:
		return SentimentNeutral, norm
	}
}

func lexicalUrgency(text string) models.Priority {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, urgentMarkers):
		return models.PriorityUrgent
	case containsAny(lower, highMarkers):
		return models.PriorityHigh
	case containsAny(lower, lowMarkers):
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

// CommitmentScore is 0 without a commitment phrase, otherwise 0.6 plus
// 0.2 each for a time reference and a concrete deliverable verb, capped at 1.
func CommitmentScore(text string) float64 {
	if _, ok := MatchCommitment(text); !ok {
		return 0
	}
	score := 0.6
	if datePattern.MatchString(text) || strings.Contains(strings.ToLower(text), "shortly") {
		score += 0.2
	}
	if containsAny(strings.ToLower(text), []string{"send", "review", "share", "finish", "fix", "update", "reply"}) {
		score += 0.2
	}
	if score > 1 {
		score = 1
	}
	return score
}

// ExtractEntities finds emails, URLs, @mentions, date words and
// capitalized name sequences that do not start a sentence.
func ExtractEntities(text string) []Entity {
	entities := []Entity{}
	seen := map[string]struct{}{}
	add := func(s string, k EntityKind) {
		key := string(k) + ":" + strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		entities = append(entities, Entity{Text: s, Kind: k})
	}

	for _, m := range emailPattern.FindAllString(text, -1) {
		add(m, EntityEmail)
	}
	for _, m := range urlPattern.FindAllString(text, -1) {
		add(strings.TrimRight(m, ".,;:!?)"), EntityURL)
	}
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		add(m[1], EntityMention)
	}
	for _, m := range datePattern.FindAllString(text, -1) {
		add(m, EntityDate)
	}

	stripped := urlPattern.ReplaceAllString(emailPattern.ReplaceAllString(text, " "), " ")
	for _, name := range capitalizedRuns(stripped) {
		if datePattern.MatchString(name) {
			continue
		}
		add(name, EntityPerson)
	}
	return entities
}

// capitalizedRuns returns sequences of capitalized words. A single
// capitalized word at the start of a sentence is ignored.
func capitalizedRuns(text string) []string {
	var (
		runs        []string
		current     []string
		runAtStart  bool
		atSentStart = true
	)
	flush := func() {
		if len(current) > 1 || (len(current) == 1 && !runAtStart) {
			runs = append(runs, strings.Join(current, " "))
		}
		current = nil
	}

	for _, raw := range strings.Fields(text) {
		word := strings.TrimFunc(raw, func(r rune) bool { return !unicode.IsLetter(r) })
		isCap := word != "" && unicode.IsUpper([]rune(word)[0]) && word != "I" && !strings.HasPrefix(word, "I'")

		if isCap {
			if len(current) == 0 {
				runAtStart = atSentStart
			}
			current = append(current, word)
		} else {
			flush()
		}

		atSentStart = strings.ContainsAny(raw[len(raw)-1:], ".!?:")
		if atSentStart {
			flush()
		}
	}
	flush()
	return runs
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// KeyPhrases returns up to n keywords ordered by frequency, then by first appearance.
func KeyPhrases(text string, n int) []string {
	keywords := Keywords(text)
	counts := map[string]int{}
	order := []string{}
	for _, k := range keywords {
		if len([]rune(k)) < 3 {
			continue
		}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}
