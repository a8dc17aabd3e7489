// Package host is the reference ActionGateway used by the CLI and the HTTP
// server. Notes and reminders go to a store; email drafts go through the
// language model; calls, messages and media are handed to a Launcher as
// URIs; device-level actions update a simulated Device.
package host

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"jarvis/internal/gateway"
	"jarvis/internal/intent"
	"jarvis/internal/llm"
)

// NoteStore persists notes. LoadNote returns gateway.ErrNotFound for
// unknown titles.
type NoteStore interface {
	SaveNote(ctx context.Context, title, content string) error
	LoadNote(ctx context.Context, title string) (string, error)
}

// ReminderStore persists reminders.
type ReminderStore interface {
	SaveReminder(ctx context.Context, title string, dueAt time.Time) error
}

// Drafter writes email bodies. *llm.Chat satisfies it.
type Drafter interface {
	DraftEmail(ctx context.Context, recipient, subject, details string) (string, error)
}

// Config wires a Host.
type Config struct {
	Notes     NoteStore
	Reminders ReminderStore
	Drafter   Drafter
	Launcher  Launcher
	Apps      []string
	Contacts  map[string]string
	Now       func() time.Time
	Log       *zap.Logger
}

// Host implements gateway.ActionGateway.
type Host struct {
	notes     NoteStore
	reminders ReminderStore
	drafter   Drafter
	launcher  Launcher
	apps      *AppCatalog
	contacts  *Contacts
	now       func() time.Time
	log       *zap.Logger

	mu  sync.Mutex
	dev Device
}

var _ gateway.ActionGateway = (*Host)(nil)

// New creates a Host. Missing stores make the matching operations fail with
// gateway.ErrUnsupported.
func New(cfg Config) *Host {
	h := &Host{
		notes:     cfg.Notes,
		reminders: cfg.Reminders,
		drafter:   cfg.Drafter,
		launcher:  cfg.Launcher,
		apps:      NewAppCatalog(cfg.Apps),
		contacts:  NewContacts(cfg.Contacts),
		now:       cfg.Now,
		log:       cfg.Log,
		dev:       Device{Toggles: make(map[intent.ToggleKind]bool)},
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.launcher == nil {
		h.launcher = LogLauncher{Log: h.log}
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Device returns a copy of the simulated device state.
func (h *Host) Device() Device {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dev.clone()
}

func (h *Host) launch(ctx context.Context, uri string) error {
	if err := h.launcher.Launch(ctx, uri); err != nil {
		return fmt.Errorf("launch %s: %w", uri, err)
	}
	h.mu.Lock()
	h.dev.Opened = append(h.dev.Opened, uri)
	h.mu.Unlock()
	return nil
}

// ToggleFlashlight implements gateway.ActionGateway.
func (h *Host) ToggleFlashlight(_ context.Context, enable bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dev.Flashlight = enable
	h.log.Info("flashlight", zap.Bool("on", enable))
	return nil
}

// AddReminder implements gateway.ActionGateway.
func (h *Host) AddReminder(ctx context.Context, title string, dueAt time.Time) error {
	if h.reminders == nil {
		return fmt.Errorf("reminders: %w", gateway.ErrUnsupported)
	}
	return h.reminders.SaveReminder(ctx, title, dueAt)
}

// CreateNote implements gateway.ActionGateway.
func (h *Host) CreateNote(ctx context.Context, title, content string) error {
	if h.notes == nil {
		return fmt.Errorf("notes: %w", gateway.ErrUnsupported)
	}
	return h.notes.SaveNote(ctx, title, content)
}

// ShowNote implements gateway.ActionGateway.
func (h *Host) ShowNote(ctx context.Context, title string) (string, error) {
	if h.notes == nil {
		return "", fmt.Errorf("notes: %w", gateway.ErrUnsupported)
	}
	return h.notes.LoadNote(ctx, title)
}

// OpenApp implements gateway.ActionGateway.
func (h *Host) OpenApp(ctx context.Context, name string) error {
	app, ok := h.apps.Resolve(name)
	if !ok {
		return fmt.Errorf("app %q: %w", name, gateway.ErrNotFound)
	}
	return h.launch(ctx, "app:"+url.PathEscape(app))
}

// Call implements gateway.ActionGateway.
func (h *Host) Call(ctx context.Context, target string) error {
	number := h.contacts.Number(target)
	if dialable(number) == "" {
		return fmt.Errorf("contact %q: %w", target, gateway.ErrNotFound)
	}
	return h.launch(ctx, "tel:"+dialable(number))
}

// SendSMS implements gateway.ActionGateway.
func (h *Host) SendSMS(ctx context.Context, target, body string) error {
	number := dialable(h.contacts.Number(target))
	if number == "" {
		return fmt.Errorf("contact %q: %w", target, gateway.ErrNotFound)
	}
	return h.launch(ctx, "sms:"+number+"?body="+url.QueryEscape(body))
}

// SearchYoutube implements gateway.ActionGateway.
func (h *Host) SearchYoutube(ctx context.Context, query string) error {
	return h.launch(ctx, "https://www.youtube.com/results?search_query="+url.QueryEscape(query))
}

// SendWhatsAppMessage implements gateway.ActionGateway.
func (h *Host) SendWhatsAppMessage(ctx context.Context, target, body string) error {
	number := dialable(h.contacts.Number(target))
	if number == "" {
		return fmt.Errorf("contact %q: %w", target, gateway.ErrNotFound)
	}
	return h.launch(ctx, "https://wa.me/"+strings.TrimPrefix(number, "+")+"?text="+url.QueryEscape(body))
}

// GenerateEmail implements gateway.ActionGateway.
func (h *Host) GenerateEmail(ctx context.Context, recipient, subject, details string) error {
	if h.drafter == nil {
		return llm.ErrNoModel
	}
	body, err := h.drafter.DraftEmail(ctx, recipient, subject, details)
	if err != nil {
		return fmt.Errorf("draft email: %w", err)
	}
	return h.launch(ctx, MailtoURI(recipient, subject, body))
}

// MailtoURI builds a mailto: link with percent-encoded subject and body.
func MailtoURI(recipient, subject, body string) string {
	q := url.Values{}
	q.Set("subject", subject)
	q.Set("body", body)
	return "mailto:" + url.PathEscape(recipient) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

// WhatsAppAudioCall implements gateway.ActionGateway.
func (h *Host) WhatsAppAudioCall(ctx context.Context, target string) error {
	return h.whatsappCall(ctx, target, "voice")
}

// WhatsAppVideoCall implements gateway.ActionGateway.
func (h *Host) WhatsAppVideoCall(ctx context.Context, target string) error {
	return h.whatsappCall(ctx, target, "video")
}

func (h *Host) whatsappCall(ctx context.Context, target, kind string) error {
	number := dialable(h.contacts.Number(target))
	if number == "" {
		return fmt.Errorf("contact %q: %w", target, gateway.ErrNotFound)
	}
	return h.launch(ctx, "whatsapp://call?type="+kind+"&phone="+strings.TrimPrefix(number, "+"))
}

// SetAlarm implements gateway.ActionGateway.
func (h *Host) SetAlarm(_ context.Context, hour, minute int, label string) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid alarm time %02d:%02d", hour, minute)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dev.Alarms = append(h.dev.Alarms, Alarm{Hour: hour, Minute: minute, Label: label})
	h.log.Info("alarm set", zap.Int("hour", hour), zap.Int("minute", minute), zap.String("label", label))
	return nil
}

// SetTimer implements gateway.ActionGateway.
func (h *Host) SetTimer(_ context.Context, seconds int, label string) error {
	if seconds <= 0 {
		return fmt.Errorf("invalid timer length %ds", seconds)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dev.Timers = append(h.dev.Timers, Timer{
		Label:  label,
		EndsAt: h.now().Add(time.Duration(seconds) * time.Second),
	})
	h.log.Info("timer set", zap.Int("seconds", seconds), zap.String("label", label))
	return nil
}

// errNoAlarms is returned when dismissing or snoozing with nothing set.
var errNoAlarms = errors.New("no alarms set")

// ManageAlarms implements gateway.ActionGateway. Dismiss removes the first
// alarm and snooze moves it by SnoozeInterval.
func (h *Host) ManageAlarms(_ context.Context, action intent.AlarmAction) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch action {
	case intent.AlarmShow:
		h.log.Info("alarms", zap.Any("alarms", h.dev.Alarms))
		return nil
	case intent.AlarmDismiss:
		if len(h.dev.Alarms) == 0 {
			return errNoAlarms
		}
		h.dev.Alarms = h.dev.Alarms[1:]
		return nil
	case intent.AlarmSnooze:
		if len(h.dev.Alarms) == 0 {
			return errNoAlarms
		}
		a := &h.dev.Alarms[0]
		total := (a.Hour*60 + a.Minute + int(SnoozeInterval/time.Minute)) % (24 * 60)
		a.Hour, a.Minute = total/60, total%60
		return nil
	}
	return fmt.Errorf("alarm action %q: %w", action, gateway.ErrUnsupported)
}

// SetToggle implements gateway.ActionGateway.
func (h *Host) SetToggle(_ context.Context, setting intent.ToggleKind, enable bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dev.Toggles[setting] = enable
	h.log.Info("toggle", zap.String("setting", string(setting)), zap.Bool("on", enable))
	return nil
}

// PlayMusic implements gateway.ActionGateway. The search query is the song
// followed by the artist.
func (h *Host) PlayMusic(ctx context.Context, song, artist string) error {
	query := strings.TrimSpace(song + " " + artist)
	if query == "" {
		return errors.New("nothing to play")
	}
	return h.launch(ctx, "https://music.youtube.com/search?q="+url.QueryEscape(query))
}

// TakeScreenshot implements gateway.ActionGateway.
func (h *Host) TakeScreenshot(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dev.Screenshots++
	return "Screenshot captured!", nil
}

// StartRecording implements gateway.ActionGateway.
func (h *Host) StartRecording(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.dev.Recording {
		return "Already recording", errors.New("already recording")
	}
	h.dev.Recording = true
	return "Recording started!", nil
}

// StopRecording implements gateway.ActionGateway.
func (h *Host) StopRecording(context.Context) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.dev.Recording {
		return "Not recording", errors.New("not recording")
	}
	h.dev.Recording = false
	return "Recording saved!", nil
}
