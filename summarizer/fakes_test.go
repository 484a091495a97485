package summarizer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SaiNageswarS/docqa-boot/llm"
)

// fakeLLM answers by prompt kind and records every user prompt.
type fakeLLM struct {
	mu         sync.Mutex
	prompts    []string
	reduceJSON string
	answer     string
	mapErr     error
}

func (f *fakeLLM) GetModel() string { return "fake" }

func (f *fakeLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(chunk string) error, opts ...llm.LLMOption) error {
	user := messages[len(messages)-1].Content

	f.mu.Lock()
	f.prompts = append(f.prompts, user)
	f.mu.Unlock()

	switch {
	case strings.Contains(user, "Question:") || strings.Contains(user, "Pertanyaan:"):
		return callback(f.answer)
	case strings.Contains(user, "summaries") || strings.Contains(user, "ringkasan"):
		return callback(f.reduceJSON)
	default:
		if f.mapErr != nil {
			return f.mapErr
		}
		return callback("chunk summary")
	}
}

func (f *fakeLLM) promptsContaining(s string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.prompts {
		if strings.Contains(p, s) {
			out = append(out, p)
		}
	}
	return out
}

// keywordEmbedder places texts on axes by keyword, so texts sharing a keyword
// are close and texts without one are orthogonal.
type keywordEmbedder struct {
	err error
}

var embedderAxes = []string{"attention", "protein", "weather"}

func (e *keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(embedderAxes)+1)
		lower := strings.ToLower(text)
		for j, axis := range embedderAxes {
			v[j] = float32(strings.Count(lower, axis))
		}
		v[len(embedderAxes)] = 0.01
		out[i] = v
	}
	return out, nil
}

func withExtractor(t *testing.T, fn func([]byte) (string, error)) {
	t.Helper()
	orig := pdfExtractor
	pdfExtractor = fn
	t.Cleanup(func() { pdfExtractor = orig })
}

func staticText(text string) func([]byte) (string, error) {
	return func([]byte) (string, error) { return text, nil }
}

var errBoom = errors.New("boom")

// countingLLM records the peak number of concurrent GenerateInference calls.
type countingLLM struct {
	*fakeLLM
	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *countingLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(chunk string) error, opts ...llm.LLMOption) error {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > c.peak {
		c.peak = c.inFlight
	}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	time.Sleep(5 * time.Millisecond)
	return c.fakeLLM.GenerateInference(ctx, messages, callback, opts...)
}

func (c *countingLLM) peakCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peak
}
