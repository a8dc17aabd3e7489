// Package gateway defines the side-effect boundary between the interpreter
// and the device or services that actually carry out a command.
package gateway

import (
	"context"
	"errors"
	"time"

	"jarvis/internal/intent"
)

// ErrNotFound is returned by ShowNote when no note has the requested title.
var ErrNotFound = errors.New("not found")

// ErrUnsupported is returned for operations an implementation cannot perform.
var ErrUnsupported = errors.New("unsupported")

// ActionGateway performs one operation per intent.
// The router never imports platform or SDK packages directly; every side
// effect goes through this interface. A non-nil error means the action did
// not happen and is reported to the user with the intent's failure message.
type ActionGateway interface {
	ToggleFlashlight(ctx context.Context, enable bool) error

	// AddReminder stores a reminder due at the given instant.
	AddReminder(ctx context.Context, title string, dueAt time.Time) error

	// CreateNote saves a note whose content holds one "- item" line per entry.
	CreateNote(ctx context.Context, title, content string) error

	// ShowNote returns a saved note's content, or ErrNotFound.
	ShowNote(ctx context.Context, title string) (string, error)

	OpenApp(ctx context.Context, name string) error
	Call(ctx context.Context, target string) error
	SendSMS(ctx context.Context, target, body string) error
	SearchYoutube(ctx context.Context, query string) error
	SendWhatsAppMessage(ctx context.Context, target, body string) error

	// GenerateEmail drafts an email body with the language model and hands
	// the result to a mail composer.
	GenerateEmail(ctx context.Context, recipient, subject, details string) error

	WhatsAppAudioCall(ctx context.Context, target string) error
	WhatsAppVideoCall(ctx context.Context, target string) error

	SetAlarm(ctx context.Context, hour, minute int, label string) error
	SetTimer(ctx context.Context, seconds int, label string) error
	ManageAlarms(ctx context.Context, action intent.AlarmAction) error

	// SetToggle switches wifi, bluetooth, airplane mode, do not disturb or
	// mobile data.
	SetToggle(ctx context.Context, setting intent.ToggleKind, enable bool) error

	// PlayMusic plays a song; artist may be empty.
	PlayMusic(ctx context.Context, song, artist string) error

	// TakeScreenshot, StartRecording and StopRecording return a short status
	// message ("Screenshot captured!", "Already recording") alongside the error.
	TakeScreenshot(ctx context.Context) (string, error)
	StartRecording(ctx context.Context) (string, error)
	StopRecording(ctx context.Context) (string, error)
}
