package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"jarvis/internal/assistant"
	"jarvis/internal/backend/googlecalendar"
	"jarvis/internal/backend/googletasks"
	"jarvis/internal/config"
	"jarvis/internal/decompose"
	"jarvis/internal/gateway/host"
	"jarvis/internal/llm"
	"jarvis/internal/router"
	"jarvis/internal/scheduler"
	"jarvis/internal/store"
)

// app is the fully wired assistant for one command.
type app struct {
	assistant  *assistant.Assistant
	router     *router.Router
	decomposer *decompose.Decomposer
	host       *host.Host
	store      *store.Store
}

func (a *app) Close() {
	if a.assistant != nil {
		a.assistant.Close()
	}
	if a.store != nil {
		_ = a.store.Close()
	}
}

// generator returns the model to use, or nil when none is configured.
func (c *CLI) generator(ctx context.Context) llm.Generator {
	if c.Generator != nil {
		return c.Generator
	}
	key := c.cfg.LLM.Key()
	if key == "" {
		c.log.Info("no model API key, chat and model extraction disabled")
		return nil
	}
	gen, err := llm.NewGenAI(ctx, key, c.cfg.LLM.Model, c.log.Named("genai"))
	if err != nil {
		c.log.Warn("model unavailable", zap.Error(err))
		return nil
	}
	return gen
}

// openStore opens the SQLite database once per app.
func (a *app) openStore(cfg *config.Config) (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

func (c *CLI) stores(ctx context.Context, a *app) (host.NoteStore, host.ReminderStore, error) {
	cfg := c.cfg
	if cfg.UsesGoogle() {
		if !cfg.HasOAuthClient() {
			return nil, nil, authError(fmt.Errorf("oauth_client.json not found in %s", cfg.Dir))
		}
		if !cfg.HasToken() {
			return nil, nil, authError(errors.New("not logged in (run: jarvis login)"))
		}
	}

	var notes host.NoteStore
	switch cfg.Backend.Notes {
	case config.BackendGoogle:
		client, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, nil, authError(err)
		}
		notes = client
	default:
		st, err := a.openStore(cfg)
		if err != nil {
			return nil, nil, backendError(err)
		}
		notes = st
	}

	var reminders host.ReminderStore
	switch cfg.Backend.Reminders {
	case config.BackendGoogle:
		client, err := googlecalendar.New(ctx, cfg)
		if err != nil {
			return nil, nil, authError(err)
		}
		reminders = client
	default:
		st, err := a.openStore(cfg)
		if err != nil {
			return nil, nil, backendError(err)
		}
		reminders = st
	}
	return notes, reminders, nil
}

// build wires stores, gateway, model, router, decomposer and assistant.
func (c *CLI) build(ctx context.Context, opts ...assistant.Option) (*app, error) {
	a := &app{}
	notes, reminders, err := c.stores(ctx, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	gen := c.generator(ctx)
	chat := llm.NewChat(gen, nil, c.log.Named("chat"))

	a.host = host.New(host.Config{
		Notes:     notes,
		Reminders: reminders,
		Drafter:   chat,
		Launcher:  c.Launcher,
		Apps:      c.cfg.Apps,
		Contacts:  c.cfg.Contacts,
		Log:       c.log.Named("host"),
	})
	a.router = router.New(a.host, chat, router.WithLogger(c.log.Named("router")))
	a.decomposer = decompose.New(gen, nil, c.log.Named("decompose"))

	base := []assistant.Option{
		assistant.WithLogger(c.log.Named("assistant")),
		assistant.WithSchedulerConfig(scheduler.Config{
			SettleInterval: c.cfg.Scheduler.SettleInterval,
			ClearDelay:     c.cfg.Scheduler.ClearDelay,
		}),
	}
	if c.cfg.Speech.Command != "" {
		base = append(base, assistant.WithSpeaker(assistant.CommandSpeaker{
			Name: c.cfg.Speech.Command,
			Args: c.cfg.Speech.Args,
		}))
	}
	a.assistant = assistant.New(a.router, a.decomposer, append(base, opts...)...)
	return a, nil
}
