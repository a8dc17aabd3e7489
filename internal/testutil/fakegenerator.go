package testutil

import (
	"context"
	"sync"
)

// FakeGenerator streams canned chunks. It satisfies llm.Generator and
// llm.ModelGate.
type FakeGenerator struct {
	mu      sync.Mutex
	prompts []string

	// Chunks are emitted in order for every prompt.
	Chunks []string
	// Err, when set, is sent after the chunks.
	Err error
	// Unloaded makes IsLoaded report false.
	Unloaded bool
	// Reply, when set, overrides Chunks per prompt.
	Reply func(prompt string) []string
}

// NewFakeGenerator creates a generator that answers every prompt with chunks.
func NewFakeGenerator(chunks ...string) *FakeGenerator {
	return &FakeGenerator{Chunks: chunks}
}

// GenerateStream streams the configured chunks, checking ctx before each one.
func (f *FakeGenerator) GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	chunks := f.Chunks
	if f.Reply != nil {
		chunks = f.Reply(prompt)
	}
	err := f.Err
	f.mu.Unlock()

	contentChan := make(chan string, len(chunks))
	errorChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		for _, c := range chunks {
			if err := ctx.Err(); err != nil {
				errorChan <- err
				return
			}
			contentChan <- c
		}
		if err != nil {
			errorChan <- err
		}
	}()

	return contentChan, errorChan
}

// IsLoaded reports whether the fake model is loaded.
func (f *FakeGenerator) IsLoaded() bool { return !f.Unloaded }

// Prompts returns every prompt received so far.
func (f *FakeGenerator) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}
