// Package llm wraps the text-generation collaborator: a streaming generator
// plus a gate reporting whether a model is available at all.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoModel is returned when generation is requested without a loaded model.
var ErrNoModel = errors.New("no model loaded")

// Generator streams text for a prompt.
//
// The content channel yields tokens in order and is closed when generation
// ends. The error channel receives at most one error and is closed after the
// content channel's producer finishes. A stream is finite and cannot be
// restarted.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string) (<-chan string, <-chan error)
}

// ModelGate reports whether a model is currently loaded.
type ModelGate interface {
	IsLoaded() bool
}

// StaticGate is a ModelGate with a fixed answer.
type StaticGate bool

// IsLoaded implements ModelGate.
func (g StaticGate) IsLoaded() bool { return bool(g) }

// Collect drains a stream into a single string. Tokens received before an
// error are returned alongside it.
func Collect(ctx context.Context, gen Generator, prompt string) (string, error) {
	content, errs := gen.GenerateStream(ctx, prompt)

	var b strings.Builder
	for tok := range content {
		b.WriteString(tok)
	}
	if err := <-errs; err != nil {
		return b.String(), fmt.Errorf("generate: %w", err)
	}
	return b.String(), nil
}

// Chat answers free-form utterances with the language model.
type Chat struct {
	gen  Generator
	gate ModelGate
	log  *zap.Logger
}

// NewChat creates a Chat. A nil gate means a model is always available.
func NewChat(gen Generator, gate ModelGate, log *zap.Logger) *Chat {
	if gate == nil {
		gate = StaticGate(gen != nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Chat{gen: gen, gate: gate, log: log}
}

// Reply generates a response to text. It returns ErrNoModel when the gate is
// closed and never calls the generator in that case.
func (c *Chat) Reply(ctx context.Context, text string) (string, error) {
	if c.gen == nil || !c.gate.IsLoaded() {
		return "", ErrNoModel
	}
	reply, err := Collect(ctx, c.gen, text)
	if err != nil {
		c.log.Warn("chat generation failed", zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// DraftEmail asks the model for an email body.
func (c *Chat) DraftEmail(ctx context.Context, recipient, subject, details string) (string, error) {
	if c.gen == nil || !c.gate.IsLoaded() {
		return "", ErrNoModel
	}
	body, err := Collect(ctx, c.gen, EmailPrompt(recipient, subject, details))
	if err != nil {
		c.log.Warn("email draft failed", zap.String("recipient", recipient), zap.Error(err))
		return "", err
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return "", errors.New("empty email draft")
	}
	return body, nil
}

// Loaded reports whether chat and drafting can reach a model.
func (c *Chat) Loaded() bool {
	return c.gen != nil && c.gate.IsLoaded()
}

// EmailPrompt builds the drafting instruction for an email.
func EmailPrompt(recipient, subject, details string) string {
	return fmt.Sprintf(`Write a short, polite email to %s.
Subject: %s
Context: %s

Reply with the email body only. Do not include a subject line or any explanation.`, recipient, subject, details)
}
