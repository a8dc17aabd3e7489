package host_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jarvis/internal/gateway"
	"jarvis/internal/gateway/host"
	"jarvis/internal/intent"
	"jarvis/internal/llm"
	"jarvis/internal/store"
	"jarvis/internal/testutil"
)

type launches struct {
	mu   sync.Mutex
	uris []string
	err  error
}

func (l *launches) Launch(_ context.Context, uri string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.uris = append(l.uris, uri)
	return nil
}

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newHost(t *testing.T, gen *testutil.FakeGenerator) (*host.Host, *launches, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "host.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	l := &launches{}
	cfg := host.Config{
		Notes:     st,
		Reminders: st,
		Launcher:  l,
		Apps:      []string{"Spotify", "Maps", "YouTube", "Calculator"},
		Contacts: map[string]string{
			"Mom":         "+1 (555) 000-1111",
			"Tom Hanks":   "+1 555 000 2222",
			"Atom Smith":  "+1 555 000 3333",
			"Bob Builder": "555-0004",
		},
		Now: func() time.Time { return testNow },
		Log: zaptest.NewLogger(t),
	}
	if gen != nil {
		cfg.Drafter = llm.NewChat(gen, gen, nil)
	}
	return host.New(cfg), l, st
}

func TestContactsLookupPriority(t *testing.T) {
	c := host.NewContacts(map[string]string{
		"Tom":        "1",
		"Tommy Lee":  "2",
		"Atom Smith": "3",
	})
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"tom", "1", true},
		{"TOMMY", "2", true},
		{"atom", "3", true},
		{"smith", "3", true},
		{"om", "3", true}, // no exact, no prefix: first "contains" in name order
		{"zed", "", false},
		{"  ", "", false},
	}
	for _, tt := range tests {
		got, ok := c.Lookup(tt.query)
		assert.Equal(t, tt.ok, ok, tt.query)
		assert.Equal(t, tt.want, got, tt.query)
	}
}

func TestAppCatalogResolve(t *testing.T) {
	c := host.NewAppCatalog([]string{"Spotify", "Maps", "YouTube", "Calculator"})
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"spotify", "Spotify", true},
		{"Spotfy", "Spotify", true},
		{"youtub", "YouTube", true},
		{"MAPS", "Maps", true},
		{"frobnicator", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := c.Resolve(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestHost_NotesAndReminders(t *testing.T) {
	h, _, st := newHost(t, nil)
	ctx := context.Background()

	require.NoError(t, h.CreateNote(ctx, "Grocery List", "- milk\n- eggs"))
	content, err := h.ShowNote(ctx, "grocery list")
	require.NoError(t, err)
	assert.Equal(t, "- milk\n- eggs", content)

	_, err = h.ShowNote(ctx, "Nope List")
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	due := testNow.Add(26 * time.Hour)
	require.NoError(t, h.AddReminder(ctx, "call the dentist", due))
	rems, err := st.Reminders(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, rems, 1)
	assert.Equal(t, "call the dentist", rems[0].Title)
	assert.True(t, rems[0].DueAt.Equal(due))
}

func TestHost_NoStores(t *testing.T) {
	h := host.New(host.Config{})
	ctx := context.Background()
	assert.ErrorIs(t, h.CreateNote(ctx, "Note", "- x"), gateway.ErrUnsupported)
	_, err := h.ShowNote(ctx, "Note")
	assert.ErrorIs(t, err, gateway.ErrUnsupported)
	assert.ErrorIs(t, h.AddReminder(ctx, "x", testNow), gateway.ErrUnsupported)
	assert.ErrorIs(t, h.GenerateEmail(ctx, "a@b.c", "s", "d"), llm.ErrNoModel)
}

func TestHost_Launches(t *testing.T) {
	h, l, _ := newHost(t, nil)
	ctx := context.Background()

	require.NoError(t, h.Call(ctx, "mom"))
	require.NoError(t, h.Call(ctx, "+44 20 7946 0000"))
	require.NoError(t, h.SendSMS(ctx, "tom", "running late"))
	require.NoError(t, h.SendWhatsAppMessage(ctx, "bob", "hi there"))
	require.NoError(t, h.WhatsAppVideoCall(ctx, "Mom"))
	require.NoError(t, h.WhatsAppAudioCall(ctx, "mom"))
	require.NoError(t, h.SearchYoutube(ctx, "lofi beats"))
	require.NoError(t, h.PlayMusic(ctx, "believer", "imagine dragons"))
	require.NoError(t, h.OpenApp(ctx, "spotfy"))

	assert.Equal(t, []string{
		"tel:+15550001111",
		"tel:+442079460000",
		"sms:+15550002222?body=running+late",
		"https://wa.me/5550004?text=hi+there",
		"whatsapp://call?type=video&phone=15550001111",
		"whatsapp://call?type=voice&phone=15550001111",
		"https://www.youtube.com/results?search_query=lofi+beats",
		"https://music.youtube.com/search?q=believer+imagine+dragons",
		"app:Spotify",
	}, l.uris)
	assert.Equal(t, l.uris, h.Device().Opened)
}

func TestHost_LaunchFailures(t *testing.T) {
	h, l, _ := newHost(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, h.OpenApp(ctx, "frobnicator"), gateway.ErrNotFound)
	assert.ErrorIs(t, h.Call(ctx, "nobody"), gateway.ErrNotFound)
	assert.Error(t, h.PlayMusic(ctx, " ", ""))

	l.err = errors.New("no handler")
	assert.Error(t, h.SearchYoutube(ctx, "cats"))
	assert.Empty(t, h.Device().Opened)
}

func TestHost_GenerateEmail(t *testing.T) {
	gen := testutil.NewFakeGenerator("Hi Bob,\n", "See you at 5.")
	h, l, _ := newHost(t, gen)

	require.NoError(t, h.GenerateEmail(context.Background(), "bob@example.com", "Dinner", "confirm friday"))
	require.Len(t, l.uris, 1)
	assert.Equal(t, "mailto:bob@example.com?body=Hi%20Bob%2C%0ASee%20you%20at%205.&subject=Dinner", l.uris[0])
	require.Len(t, gen.Prompts(), 1)
	assert.Contains(t, gen.Prompts()[0], "confirm friday")
}

func TestHost_GenerateEmailModelError(t *testing.T) {
	gen := testutil.NewFakeGenerator()
	gen.Err = errors.New("quota exceeded")
	h, l, _ := newHost(t, gen)

	err := h.GenerateEmail(context.Background(), "bob@example.com", "Dinner", "friday")
	assert.Error(t, err)
	assert.Empty(t, l.uris)
}

func TestHost_DeviceState(t *testing.T) {
	h, _, _ := newHost(t, nil)
	ctx := context.Background()

	require.NoError(t, h.ToggleFlashlight(ctx, true))
	require.NoError(t, h.SetToggle(ctx, intent.ToggleWifi, true))
	require.NoError(t, h.SetToggle(ctx, intent.ToggleBluetooth, false))
	require.NoError(t, h.SetAlarm(ctx, 23, 55, "Late"))
	require.NoError(t, h.SetTimer(ctx, 90, "Tea"))
	assert.Error(t, h.SetAlarm(ctx, 24, 0, "bad"))
	assert.Error(t, h.SetTimer(ctx, 0, "bad"))

	dev := h.Device()
	assert.True(t, dev.Flashlight)
	assert.Equal(t, map[intent.ToggleKind]bool{intent.ToggleWifi: true, intent.ToggleBluetooth: false}, dev.Toggles)
	assert.Equal(t, []host.Alarm{{Hour: 23, Minute: 55, Label: "Late"}}, dev.Alarms)
	require.Len(t, dev.Timers, 1)
	assert.Equal(t, testNow.Add(90*time.Second), dev.Timers[0].EndsAt)

	// Snooze wraps past midnight.
	require.NoError(t, h.ManageAlarms(ctx, intent.AlarmSnooze))
	assert.Equal(t, host.Alarm{Hour: 0, Minute: 5, Label: "Late"}, h.Device().Alarms[0])
	require.NoError(t, h.ManageAlarms(ctx, intent.AlarmShow))
	require.NoError(t, h.ManageAlarms(ctx, intent.AlarmDismiss))
	assert.Empty(t, h.Device().Alarms)
	assert.Error(t, h.ManageAlarms(ctx, intent.AlarmDismiss))

	// The snapshot is a copy.
	dev.Toggles[intent.ToggleWifi] = false
	assert.True(t, h.Device().Toggles[intent.ToggleWifi])
}

func TestHost_Recording(t *testing.T) {
	h, _, _ := newHost(t, nil)
	ctx := context.Background()

	msg, err := h.StopRecording(ctx)
	assert.Error(t, err)
	assert.Equal(t, "Not recording", msg)

	msg, err = h.StartRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recording started!", msg)

	msg, err = h.StartRecording(ctx)
	assert.Error(t, err)
	assert.Equal(t, "Already recording", msg)

	msg, err = h.StopRecording(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recording saved!", msg)

	msg, err = h.TakeScreenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Screenshot captured!", msg)
	assert.Equal(t, 1, h.Device().Screenshots)
}
