// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jarvis/internal/gateway"
	"jarvis/internal/intent"
)

// Action is one recorded gateway call.
type Action struct {
	Op   string
	Args []string
}

func (a Action) String() string {
	if len(a.Args) == 0 {
		return a.Op
	}
	return a.Op + "(" + strings.Join(a.Args, ", ") + ")"
}

// FakeGateway is an in-memory implementation of gateway.ActionGateway for testing.
type FakeGateway struct {
	mu        sync.RWMutex
	actions   []Action
	notes     map[string]string // lower-cased title -> content
	reminders map[string]time.Time
	recording bool

	// Error injection for testing
	FlashlightErr   error
	AddReminderErr  error
	CreateNoteErr   error
	ShowNoteErr     error
	OpenAppErr      error
	CallErr         error
	SendSMSErr      error
	YoutubeErr      error
	WhatsAppErr     error
	EmailErr        error
	WhatsAppCallErr error
	SetAlarmErr     error
	SetTimerErr     error
	ManageAlarmsErr error
	ToggleErr       map[intent.ToggleKind]error
	PlayMusicErr    error
	ScreenshotErr   error

	// OnAction, when set, runs after each call is recorded and before it returns.
	OnAction func(ctx context.Context, a Action)
}

var _ gateway.ActionGateway = (*FakeGateway)(nil)

// NewFakeGateway creates an empty FakeGateway.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		notes:     make(map[string]string),
		reminders: make(map[string]time.Time),
		ToggleErr: make(map[intent.ToggleKind]error),
	}
}

// AddNote seeds a note.
func (f *FakeGateway) AddNote(title, content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[strings.ToLower(title)] = content
}

// Note returns a stored note's content.
func (f *FakeGateway) Note(title string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.notes[strings.ToLower(title)]
	return c, ok
}

// Reminder returns a stored reminder's due time.
func (f *FakeGateway) Reminder(title string) (time.Time, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	due, ok := f.reminders[title]
	return due, ok
}

// Actions returns a copy of every recorded call in order.
func (f *FakeGateway) Actions() []Action {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Action, len(f.actions))
	copy(out, f.actions)
	return out
}

// Ops returns the recorded calls formatted as "Op(arg, ...)".
func (f *FakeGateway) Ops() []string {
	actions := f.Actions()
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}

func (f *FakeGateway) record(ctx context.Context, op string, args ...string) {
	a := Action{Op: op, Args: args}
	f.mu.Lock()
	f.actions = append(f.actions, a)
	hook := f.OnAction
	f.mu.Unlock()
	if hook != nil {
		hook(ctx, a)
	}
}

// ToggleFlashlight implements gateway.ActionGateway.
func (f *FakeGateway) ToggleFlashlight(ctx context.Context, enable bool) error {
	f.record(ctx, "ToggleFlashlight", fmt.Sprint(enable))
	return f.FlashlightErr
}

// AddReminder implements gateway.ActionGateway.
func (f *FakeGateway) AddReminder(ctx context.Context, title string, dueAt time.Time) error {
	f.record(ctx, "AddReminder", title, dueAt.Format(time.RFC3339))
	if f.AddReminderErr != nil {
		return f.AddReminderErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminders[title] = dueAt
	return nil
}

// CreateNote implements gateway.ActionGateway.
func (f *FakeGateway) CreateNote(ctx context.Context, title, content string) error {
	f.record(ctx, "CreateNote", title, content)
	if f.CreateNoteErr != nil {
		return f.CreateNoteErr
	}
	f.AddNote(title, content)
	return nil
}

// ShowNote implements gateway.ActionGateway.
func (f *FakeGateway) ShowNote(ctx context.Context, title string) (string, error) {
	f.record(ctx, "ShowNote", title)
	if f.ShowNoteErr != nil {
		return "", f.ShowNoteErr
	}
	content, ok := f.Note(title)
	if !ok {
		return "", gateway.ErrNotFound
	}
	return content, nil
}

// OpenApp implements gateway.ActionGateway.
func (f *FakeGateway) OpenApp(ctx context.Context, name string) error {
	f.record(ctx, "OpenApp", name)
	return f.OpenAppErr
}

// Call implements gateway.ActionGateway.
func (f *FakeGateway) Call(ctx context.Context, target string) error {
	f.record(ctx, "Call", target)
	return f.CallErr
}

// SendSMS implements gateway.ActionGateway.
func (f *FakeGateway) SendSMS(ctx context.Context, target, body string) error {
	f.record(ctx, "SendSMS", target, body)
	return f.SendSMSErr
}

// SearchYoutube implements gateway.ActionGateway.
func (f *FakeGateway) SearchYoutube(ctx context.Context, query string) error {
	f.record(ctx, "SearchYoutube", query)
	return f.YoutubeErr
}

// SendWhatsAppMessage implements gateway.ActionGateway.
func (f *FakeGateway) SendWhatsAppMessage(ctx context.Context, target, body string) error {
	f.record(ctx, "SendWhatsAppMessage", target, body)
	return f.WhatsAppErr
}

// GenerateEmail implements gateway.ActionGateway.
func (f *FakeGateway) GenerateEmail(ctx context.Context, recipient, subject, details string) error {
	f.record(ctx, "GenerateEmail", recipient, subject, details)
	return f.EmailErr
}

// WhatsAppAudioCall implements gateway.ActionGateway.
func (f *FakeGateway) WhatsAppAudioCall(ctx context.Context, target string) error {
	f.record(ctx, "WhatsAppAudioCall", target)
	return f.WhatsAppCallErr
}

// WhatsAppVideoCall implements gateway.ActionGateway.
func (f *FakeGateway) WhatsAppVideoCall(ctx context.Context, target string) error {
	f.record(ctx, "WhatsAppVideoCall", target)
	return f.WhatsAppCallErr
}

// SetAlarm implements gateway.ActionGateway.
func (f *FakeGateway) SetAlarm(ctx context.Context, hour, minute int, label string) error {
	f.record(ctx, "SetAlarm", fmt.Sprintf("%02d:%02d", hour, minute), label)
	return f.SetAlarmErr
}

// SetTimer implements gateway.ActionGateway.
func (f *FakeGateway) SetTimer(ctx context.Context, seconds int, label string) error {
	f.record(ctx, "SetTimer", fmt.Sprint(seconds), label)
	return f.SetTimerErr
}

// ManageAlarms implements gateway.ActionGateway.
func (f *FakeGateway) ManageAlarms(ctx context.Context, action intent.AlarmAction) error {
	f.record(ctx, "ManageAlarms", string(action))
	return f.ManageAlarmsErr
}

// SetToggle implements gateway.ActionGateway.
func (f *FakeGateway) SetToggle(ctx context.Context, setting intent.ToggleKind, enable bool) error {
	f.record(ctx, "SetToggle", string(setting), fmt.Sprint(enable))
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ToggleErr[setting]
}

// PlayMusic implements gateway.ActionGateway.
func (f *FakeGateway) PlayMusic(ctx context.Context, song, artist string) error {
	f.record(ctx, "PlayMusic", song, artist)
	return f.PlayMusicErr
}

// TakeScreenshot implements gateway.ActionGateway.
func (f *FakeGateway) TakeScreenshot(ctx context.Context) (string, error) {
	f.record(ctx, "TakeScreenshot")
	if f.ScreenshotErr != nil {
		return "Screenshot failed", f.ScreenshotErr
	}
	return "Screenshot captured!", nil
}

// StartRecording implements gateway.ActionGateway.
func (f *FakeGateway) StartRecording(ctx context.Context) (string, error) {
	f.record(ctx, "StartRecording")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recording {
		return "Already recording", fmt.Errorf("start recording: already recording")
	}
	f.recording = true
	return "Recording started!", nil
}

// StopRecording implements gateway.ActionGateway.
func (f *FakeGateway) StopRecording(ctx context.Context) (string, error) {
	f.record(ctx, "StopRecording")
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.recording {
		return "Not recording", fmt.Errorf("stop recording: not recording")
	}
	f.recording = false
	return "Recording saved!", nil
}
