package assistant_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jarvis/internal/assistant"
	"jarvis/internal/decompose"
	"jarvis/internal/intent"
	"jarvis/internal/llm"
	"jarvis/internal/router"
	"jarvis/internal/scheduler"
	"jarvis/internal/testutil"
)

var noWait = scheduler.Config{SettleInterval: -1, ClearDelay: -1}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

func (s *fakeSpeaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
	return s.err
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("reply-%d", n)
	}
}

func newAssistant(t *testing.T, gw *testutil.FakeGateway, gen *testutil.FakeGenerator, opts ...assistant.Option) *assistant.Assistant {
	t.Helper()
	log := zaptest.NewLogger(t)

	var chat router.Chatter
	var dec *decompose.Decomposer
	if gen != nil {
		chat = llm.NewChat(gen, gen, log)
		dec = decompose.New(gen, gen, log)
	} else {
		dec = decompose.New(nil, nil, log)
	}

	r := router.New(gw, chat, router.WithLogger(log))
	opts = append([]assistant.Option{
		assistant.WithSchedulerConfig(noWait),
		assistant.WithIDFunc(sequentialIDs()),
		assistant.WithLogger(log),
	}, opts...)
	a := assistant.New(r, dec, opts...)
	t.Cleanup(a.Close)
	return a
}

func TestProcess_SingleIntent(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := newAssistant(t, gw, nil)

	reply := a.Process(context.Background(), "open spotify", assistant.Options{})

	assert.Equal(t, "reply-1", reply.ID)
	assert.True(t, reply.OK)
	assert.False(t, reply.Multi)
	assert.Equal(t, router.RuleOpenApp, reply.Rule)
	assert.Equal(t, intent.KindOpenApp, reply.Kind)
	assert.Equal(t, "Opening spotify...", reply.Text)
	assert.Equal(t, []string{"OpenApp(spotify)"}, gw.Ops())
	assert.Empty(t, a.Board().Snapshot())
}

func TestProcess_ChatWithoutModel(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := newAssistant(t, gw, nil)

	reply := a.Process(context.Background(), "tell me a joke", assistant.Options{})

	assert.False(t, reply.OK)
	assert.Equal(t, intent.KindChat, reply.Kind)
	assert.Equal(t, router.NoModelMessage, reply.Text)
	assert.Empty(t, gw.Ops())
}

func TestProcess_DottedMeridiemStaysSingle(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := newAssistant(t, gw, nil)

	text := "remind me to buy eggs and milk at 5 p.m."
	require.True(t, decompose.IsMultiTask(text))

	reply := a.Process(context.Background(), text, assistant.Options{})

	assert.False(t, reply.Multi)
	assert.Equal(t, intent.KindReminder, reply.Kind)
	due, ok := gw.Reminder("buy eggs and milk")
	require.True(t, ok, "ops: %v", gw.Ops())
	assert.Equal(t, 17, due.Hour())
	assert.Equal(t, 0, due.Minute())
	assert.Empty(t, a.Board().Snapshot())
}

func TestProcess_MultiTaskFallback(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := newAssistant(t, gw, nil)

	reply := a.Process(context.Background(), "play despacito, then call mom and then turn on wifi", assistant.Options{})

	require.True(t, reply.Multi)
	assert.True(t, reply.OK)
	assert.Equal(t, decompose.StageFallback, reply.Stage)
	assert.Equal(t, "All tasks finished: 3 completed, 0 failed.", reply.Text)

	// Urgent call first, then the medium toggle, then low-priority music.
	assert.Equal(t, []string{
		"Call(mom)",
		"SetToggle(wifi, true)",
		"PlayMusic(despacito, )",
	}, gw.Ops())
	assert.Equal(t, []string{
		"Task 1/3: call mom",
		"Calling mom...",
		"Task 2/3: turn on wifi",
		"Turning on Wi-Fi.",
		"Task 3/3: play despacito",
		"Playing despacito.",
	}, reply.Notices)

	require.Len(t, reply.Tasks, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{reply.Tasks[0].ID, reply.Tasks[1].ID, reply.Tasks[2].ID})
	for _, task := range reply.Tasks {
		assert.Equal(t, scheduler.Completed, task.Status)
	}
}

func TestProcess_MultiTaskModelStage(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gen := testutil.NewFakeGenerator("Here you go:\n", "- open maps\n", "- call the office\n")
	a := newAssistant(t, gw, gen)

	reply := a.Process(context.Background(), "first open maps and then call the office", assistant.Options{})

	require.True(t, reply.Multi)
	assert.Equal(t, decompose.StageModel, reply.Stage)
	assert.Equal(t, []string{"Call(the office)", "OpenApp(maps)"}, gw.Ops())
	require.Len(t, gen.Prompts(), 1)
	assert.Contains(t, gen.Prompts()[0], "first open maps and then call the office")
}

func TestProcess_PartialFailure(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.OpenAppErr = errors.New("no such app")
	a := newAssistant(t, gw, nil)

	reply := a.Process(context.Background(), "open frobnicator, then call mom and then text dad saying hi", assistant.Options{})

	require.True(t, reply.Multi)
	assert.False(t, reply.OK)
	assert.Equal(t, "All tasks finished: 2 completed, 1 failed.", reply.Text)
	require.Len(t, reply.Tasks, 3)
	assert.Equal(t, scheduler.Failed, reply.Tasks[2].Status)
	assert.Equal(t, "open frobnicator", reply.Tasks[2].Command)
}

func TestProcess_EmptyBatch(t *testing.T) {
	gw := testutil.NewFakeGateway()
	a := newAssistant(t, gw, nil)

	reply := a.Process(context.Background(), "a. b. c.", assistant.Options{})

	assert.True(t, reply.Multi)
	assert.False(t, reply.OK)
	assert.Equal(t, assistant.EmptyBatchMessage, reply.Text)
	assert.Empty(t, gw.Ops())
	assert.Empty(t, a.Board().Snapshot())
}

func TestProcess_CancelledBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := testutil.NewFakeGateway()
	gw.OnAction = func(context.Context, testutil.Action) { cancel() }
	a := newAssistant(t, gw, nil)

	reply := a.Process(ctx, "play despacito, then call mom and then turn on wifi", assistant.Options{})

	assert.False(t, reply.OK)
	assert.True(t, strings.HasPrefix(reply.Text, "Stopped early."), reply.Text)
	assert.Equal(t, []string{"Call(mom)"}, gw.Ops())
}

func TestProcess_VoiceSpeaksOnlyFinalReply(t *testing.T) {
	gw := testutil.NewFakeGateway()
	sp := &fakeSpeaker{}
	a := newAssistant(t, gw, nil, assistant.WithSpeaker(sp))

	a.Process(context.Background(), "play despacito, then call mom and then turn on wifi", assistant.Options{Voice: true})
	a.Process(context.Background(), "open spotify", assistant.Options{})

	assert.Equal(t, []string{"All tasks finished: 3 completed, 0 failed."}, sp.spoken)
}

func TestProcess_VoiceStripsMarkdown(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gen := testutil.NewFakeGenerator("**Hello**", "\n\n", "*World*")
	sp := &fakeSpeaker{err: errors.New("no audio device")}
	a := newAssistant(t, gw, gen, assistant.WithSpeaker(sp))

	reply := a.Process(context.Background(), "how are you", assistant.Options{Voice: true})

	assert.True(t, reply.OK)
	assert.Equal(t, "**Hello**\n\n*World*", reply.Text)
	assert.Equal(t, []string{"Hello. World"}, sp.spoken)
}

func TestProcess_Serialised(t *testing.T) {
	gw := testutil.NewFakeGateway()
	var mu sync.Mutex
	active, maxActive := 0, 0
	gw.OnAction = func(context.Context, testutil.Action) {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		active--
		mu.Unlock()
	}
	a := newAssistant(t, gw, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Process(context.Background(), "turn on the flashlight", assistant.Options{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
	assert.Len(t, gw.Ops(), 5)
}

type listener struct {
	events []string
}

func (l *listener) Started(t scheduler.Task, i, total int) {
	l.events = append(l.events, fmt.Sprintf("started %d", t.ID))
}
func (l *listener) Finished(t scheduler.Task, _ string) {
	l.events = append(l.events, fmt.Sprintf("finished %d %s", t.ID, t.Status))
}
func (l *listener) Done(s scheduler.Summary) { l.events = append(l.events, "done") }

func TestProcess_ListenerAndSharedBoard(t *testing.T) {
	gw := testutil.NewFakeGateway()
	l := &listener{}
	board := scheduler.NewBoard()
	a := newAssistant(t, gw, nil, assistant.WithListener(l), assistant.WithBoard(board))

	a.Process(context.Background(), "call mom, then call dad and then call the office", assistant.Options{})

	assert.Equal(t, []string{
		"started 1", "finished 1 COMPLETED",
		"started 2", "finished 2 COMPLETED",
		"started 3", "finished 3 COMPLETED",
		"done",
	}, l.events)
	assert.Same(t, board, a.Board())
	assert.Len(t, board.Snapshot(), 3)
}
