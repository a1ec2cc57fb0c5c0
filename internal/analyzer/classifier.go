package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"insig8-ai/internal/llm"
)

// Classification tasks understood by the analyzer.
const (
	TaskSentiment = "sentiment"
	TaskUrgency   = "urgency"
)

// Classification is a label with a confidence in [0, 1].
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier labels text for one task.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// ClassifierLoader loads the classifier for a task.
type ClassifierLoader func(ctx context.Context, task string) (Classifier, error)

// ClassifierCache keeps at most a fixed number of loaded classifiers,
// evicting the least recently used.
type ClassifierCache struct {
	load  ClassifierLoader
	cache *lru.Cache[string, Classifier]
	mu    sync.Mutex
}

// NewClassifierCache creates a cache holding up to size classifiers.
func NewClassifierCache(load ClassifierLoader, size int) (*ClassifierCache, error) {
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, Classifier](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier cache: %w", err)
	}
	return &ClassifierCache{load: load, cache: cache}, nil
}

// Classify runs the classifier for task, loading it on first use.
func (c *ClassifierCache) Classify(ctx context.Context, task, text string) (Classification, error) {
	clf, err := c.get(ctx, task)
	if err != nil {
		return Classification{}, err
	}
	return clf.Classify(ctx, text)
}

// Len returns the number of loaded classifiers.
func (c *ClassifierCache) Len() int {
	return c.cache.Len()
}

func (c *ClassifierCache) get(ctx context.Context, task string) (Classifier, error) {
	if clf, ok := c.cache.Get(task); ok {
		return clf, nil
	}

	// Serialize loads so a classifier is loaded once per miss.
	c.mu.Lock()
	defer c.mu.Unlock()
	if clf, ok := c.cache.Get(task); ok {
		return clf, nil
	}
	clf, err := c.load(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s classifier: %w", task, err)
	}
	c.cache.Add(task, clf)
	return clf, nil
}

// LLMClassifier asks a chat model to pick one of a fixed set of labels.
type LLMClassifier struct {
	chat   llm.ChatCompleter
	task   string
	labels []string
}

var taskLabels = map[string][]string{
	TaskSentiment: {"positive", "negative", "neutral"},
	TaskUrgency:   {"low", "medium", "high", "urgent"},
}

// LLMClassifierLoader returns a loader that builds LLM classifiers for the known tasks.
func LLMClassifierLoader(chat llm.ChatCompleter) ClassifierLoader {
	return func(_ context.Context, task string) (Classifier, error) {
		labels, ok := taskLabels[task]
		if !ok {
			return nil, fmt.Errorf("unknown classification task %q", task)
		}
		return &LLMClassifier{chat: chat, task: task, labels: labels}, nil
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	prompt := fmt.Sprintf(
		"Classify the %s of the message below. Answer with JSON only: {\"label\": one of [%s], \"score\": confidence between 0 and 1}.\n\nMessage:\n%s",
		c.task, strings.Join(c.labels, ", "), text,
	)
	reply, err := c.chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "system", Content: "You are a precise text classifier."},
		{Role: "user", Content: prompt},
	}, llm.ChatParams{Temperature: 0.1, MaxTokens: 64})
	if err != nil {
		return Classification{}, err
	}

	var out Classification
	if err := json.Unmarshal([]byte(llm.ExtractJSON(reply)), &out); err != nil {
		return Classification{}, fmt.Errorf("failed to parse classifier reply: %w", err)
	}
	out.Label = strings.ToLower(strings.TrimSpace(out.Label))
	for _, l := range c.labels {
		if l == out.Label {
			return out, nil
		}
	}
	return Classification{}, fmt.Errorf("classifier returned unknown label %q", out.Label)
}
