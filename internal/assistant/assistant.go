// Package assistant is the entry point for utterances. It asks the
// decomposer whether text holds several tasks and either routes it once or
// plans and runs a batch through the scheduler.
package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jarvis/internal/decompose"
	"jarvis/internal/intent"
	"jarvis/internal/patterns"
	"jarvis/internal/router"
	"jarvis/internal/scheduler"
)

// EmptyBatchMessage is the reply when a multi-task memo yields no tasks.
const EmptyBatchMessage = "I couldn't find any tasks in that message."

// Options describe how an utterance arrived.
type Options struct {
	// Voice marks transcribed speech; the reply is spoken back.
	Voice bool
}

// Reply is the completed outcome of one utterance.
type Reply struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	OK   bool   `json:"ok"`

	// Single-intent replies.
	Rule string      `json:"rule,omitempty"`
	Kind intent.Kind `json:"kind,omitempty"`

	// Multi-task replies.
	Multi   bool             `json:"multi"`
	Stage   decompose.Stage  `json:"stage,omitempty"`
	Notices []string         `json:"notices,omitempty"`
	Tasks   []scheduler.Task `json:"tasks,omitempty"`
}

// Assistant processes one utterance at a time.
type Assistant struct {
	mu sync.Mutex // serialises Process

	router     *router.Router
	decomposer *decompose.Decomposer
	sched      *scheduler.Scheduler
	speaker    Speaker
	listener   scheduler.Notifier
	board      *scheduler.Board
	schedCfg   *scheduler.Config
	newID      func() string
	log        *zap.Logger

	// notices collects the current batch's progress; guarded by mu.
	notices []string
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithSpeaker sets the text-to-speech sink used for voice input.
func WithSpeaker(s Speaker) Option {
	return func(a *Assistant) { a.speaker = s }
}

// WithListener forwards batch progress as it happens.
func WithListener(n scheduler.Notifier) Option {
	return func(a *Assistant) { a.listener = n }
}

// WithSchedulerConfig sets the batch pacing.
func WithSchedulerConfig(cfg scheduler.Config) Option {
	return func(a *Assistant) { a.schedCfg = &cfg }
}

// WithBoard publishes batches to b instead of a private board.
func WithBoard(b *scheduler.Board) Option {
	return func(a *Assistant) { a.board = b }
}

// WithIDFunc replaces the reply ID generator.
func WithIDFunc(f func() string) Option {
	return func(a *Assistant) { a.newID = f }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// New creates an Assistant over r and d.
func New(r *router.Router, d *decompose.Decomposer, opts ...Option) *Assistant {
	a := &Assistant{
		router:     r,
		decomposer: d,
		newID:      func() string { return uuid.NewString() },
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	cfg := scheduler.Config{}
	if a.schedCfg != nil {
		cfg = *a.schedCfg
	}
	a.sched = scheduler.New(a.board, scheduler.ExecutorFunc(a.execute), progress{a}, cfg, a.log.Named("scheduler"))
	return a
}

// Board returns the task board batches are published to.
func (a *Assistant) Board() *scheduler.Board {
	return a.sched.Board()
}

// Close stops background work.
func (a *Assistant) Close() {
	a.sched.Close()
}

// Process handles one utterance. Calls are serialised; a second caller waits
// for the first utterance, including any batch it started, to finish.
func (a *Assistant) Process(ctx context.Context, text string, opts Options) Reply {
	a.mu.Lock()
	defer a.mu.Unlock()

	text = patterns.NormalizeMeridiem(text)

	var reply Reply
	if decompose.IsMultiTask(text) {
		reply = a.runBatch(ctx, text)
	} else {
		out := a.router.Handle(ctx, text)
		reply = Reply{
			Text: out.Message,
			OK:   out.OK,
			Rule: out.Rule,
			Kind: out.Intent.Kind(),
		}
	}
	reply.ID = a.newID()

	a.log.Info("processed utterance",
		zap.String("id", reply.ID),
		zap.Bool("multi", reply.Multi),
		zap.String("rule", reply.Rule),
		zap.Bool("ok", reply.OK))

	if opts.Voice {
		a.speak(ctx, reply.Text)
	}
	return reply
}

func (a *Assistant) runBatch(ctx context.Context, text string) Reply {
	commands, stage := a.decomposer.Extract(ctx, text)
	reply := Reply{Multi: true, Stage: stage}
	if len(commands) == 0 {
		reply.Text = EmptyBatchMessage
		return reply
	}

	a.notices = nil
	summary, err := a.sched.Run(ctx, scheduler.Plan(commands))
	reply.Notices = a.notices
	a.notices = nil

	reply.Tasks = summary.Tasks
	reply.Text = summary.String()
	reply.OK = err == nil && summary.Failed == 0
	if err != nil {
		a.log.Warn("batch interrupted", zap.Error(err))
		reply.Text = fmt.Sprintf("Stopped early. %s", summary)
	}
	return reply
}

// execute runs one sub-task. Sub-task replies are never spoken.
func (a *Assistant) execute(ctx context.Context, command string) (string, bool) {
	out := a.router.Handle(ctx, command)
	return out.Message, out.OK
}

func (a *Assistant) speak(ctx context.Context, text string) {
	if a.speaker == nil {
		return
	}
	if err := a.speaker.Speak(ctx, StripMarkdown(text)); err != nil {
		a.log.Warn("speak failed", zap.Error(err))
	}
}

// progress turns scheduler callbacks into user-facing notices.
type progress struct{ a *Assistant }

func (p progress) Started(t scheduler.Task, i, total int) {
	p.a.notices = append(p.a.notices, fmt.Sprintf("Task %d/%d: %s", i, total, t.Description))
	if p.a.listener != nil {
		p.a.listener.Started(t, i, total)
	}
}

func (p progress) Finished(t scheduler.Task, message string) {
	p.a.notices = append(p.a.notices, message)
	if p.a.listener != nil {
		p.a.listener.Finished(t, message)
	}
}

func (p progress) Done(s scheduler.Summary) {
	if p.a.listener != nil {
		p.a.listener.Done(s)
	}
}
