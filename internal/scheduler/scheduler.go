// Package scheduler prioritises the sub-tasks of a multi-task utterance and
// runs them one at a time while tracking their status on a Board.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default pacing between tasks and before a finished batch is cleared.
const (
	DefaultSettleInterval = 500 * time.Millisecond
	DefaultClearDelay     = 2 * time.Second
)

// Executor runs one sub-utterance and reports the reply and whether it succeeded.
type Executor interface {
	Execute(ctx context.Context, command string) (message string, ok bool)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, command string) (string, bool)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, command string) (string, bool) {
	return f(ctx, command)
}

// Notifier receives progress as a batch runs. Calls happen on the Run goroutine.
type Notifier interface {
	// Started is called when task i of total moves to InProgress.
	Started(task Task, i, total int)
	// Finished is called with the task's terminal status and reply.
	Finished(task Task, message string)
	// Done is called once per batch.
	Done(summary Summary)
}

// Summary counts a batch's outcomes.
type Summary struct {
	Completed int
	Failed    int
	Tasks     []Task
}

// String renders the summary notice.
func (s Summary) String() string {
	return fmt.Sprintf("All tasks finished: %d completed, %d failed.", s.Completed, s.Failed)
}

// Config holds the scheduler's pacing.
type Config struct {
	SettleInterval time.Duration
	ClearDelay     time.Duration
}

// Scheduler executes batches strictly sequentially.
type Scheduler struct {
	board  *Board
	exec   Executor
	notify Notifier
	cfg    Config
	log    *zap.Logger

	run sync.Mutex // held for the whole of Run

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a Scheduler. Zero durations in cfg select the defaults; use a
// negative value to disable a wait.
func New(board *Board, exec Executor, notify Notifier, cfg Config, log *zap.Logger) *Scheduler {
	if board == nil {
		board = NewBoard()
	}
	if notify == nil {
		notify = nopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SettleInterval == 0 {
		cfg.SettleInterval = DefaultSettleInterval
	}
	if cfg.ClearDelay == 0 {
		cfg.ClearDelay = DefaultClearDelay
	}
	return &Scheduler{board: board, exec: exec, notify: notify, cfg: cfg, log: log}
}

// Board returns the board the scheduler publishes to.
func (s *Scheduler) Board() *Board { return s.board }

// Run executes tasks in ascending priority order, one at a time.
//
// ctx is checked between tasks. When it is cancelled the remaining tasks are
// marked Failed, the summary is still emitted and ctx.Err() is returned.
// The board is cleared ClearDelay after the batch ends unless a newer batch
// has replaced it.
func (s *Scheduler) Run(ctx context.Context, tasks []Task) (Summary, error) {
	s.run.Lock()
	defer s.run.Unlock()

	batch := make([]Task, len(tasks))
	copy(batch, tasks)
	SortByPriority(batch)
	for i := range batch {
		batch[i].Status = Pending
	}
	gen := s.board.Set(batch)
	s.log.Info("batch started", zap.Int("tasks", len(batch)), zap.Uint64("generation", gen))

	var runErr error
	for i := range batch {
		t := &batch[i]

		if err := ctx.Err(); err != nil {
			runErr = err
			for j := i; j < len(batch); j++ {
				batch[j].Status = Failed
				s.board.Update(batch[j].ID, Failed)
			}
			s.log.Warn("batch cancelled", zap.Int("remaining", len(batch)-i), zap.Error(err))
			break
		}

		t.Status = InProgress
		s.board.Update(t.ID, InProgress)
		s.notify.Started(*t, i+1, len(batch))

		msg, ok := s.exec.Execute(ctx, t.Command)
		if ok {
			t.Status = Completed
		} else {
			t.Status = Failed
		}
		s.board.Update(t.ID, t.Status)
		s.notify.Finished(*t, msg)
		s.log.Debug("task finished",
			zap.Int("id", t.ID),
			zap.Stringer("priority", t.Priority),
			zap.String("status", string(t.Status)))

		if i < len(batch)-1 {
			s.settle(ctx)
		}
	}

	summary := Summary{Tasks: batch}
	for _, t := range batch {
		if t.Status == Completed {
			summary.Completed++
		} else {
			summary.Failed++
		}
	}
	s.notify.Done(summary)
	s.scheduleClear(gen)
	return summary, runErr
}

func (s *Scheduler) settle(ctx context.Context) {
	if s.cfg.SettleInterval <= 0 {
		return
	}
	t := time.NewTimer(s.cfg.SettleInterval)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (s *Scheduler) scheduleClear(gen uint64) {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cfg.ClearDelay < 0 {
		s.timer = nil
		return
	}
	s.timer = time.AfterFunc(s.cfg.ClearDelay, func() {
		if s.board.ClearIf(gen) {
			s.log.Debug("board cleared", zap.Uint64("generation", gen))
		}
	})
}

// Close stops a pending clear.
func (s *Scheduler) Close() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

type nopNotifier struct{}

func (nopNotifier) Started(Task, int, int) {}
func (nopNotifier) Finished(Task, string)  {}
func (nopNotifier) Done(Summary)           {}
