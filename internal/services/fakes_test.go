package services

import (
	"context"
	"fmt"
	"sync"
)

type generateCall struct {
	APIKey string
	Model  string
	Prompt string
}

// fakeGenerator answers from a per-model table; models not in replies fail.
type fakeGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	calls   []generateCall
}

func newFakeGenerator(replies map[string]string) *fakeGenerator {
	return &fakeGenerator{replies: replies}
}

func (f *fakeGenerator) GenerateText(_ context.Context, apiKey, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, generateCall{APIKey: apiKey, Model: model, Prompt: prompt})
	if text, ok := f.replies[model]; ok {
		return text, nil
	}
	return "", fmt.Errorf("%s unavailable", model)
}

func (f *fakeGenerator) models() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.calls {
		out = append(out, c.Model)
	}
	return out
}
