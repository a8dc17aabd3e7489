package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jarvis/internal/intent"
)

func TestParseAlarm(t *testing.T) {
	tests := []struct {
		text         string
		hour, minute int
		label        string
	}{
		{"set alarm for 7:30am", 7, 30, "Alarm"},
		{"set alarm for 7pm", 19, 0, "Alarm"},
		{"Wake me up at 6:45 a.m.", 6, 45, "Alarm"},
		{"set an alarm for 12 am", 0, 0, "Alarm"},
		{"set an alarm for 12:15 pm", 12, 15, "Alarm"},
		{"create an alarm at 21:15 called gym", 21, 15, "gym"},
		{"alarm 5 pm named tea time", 17, 0, "tea time"},
	}
	for _, tt := range tests {
		a, ok := ParseAlarm(tt.text)
		if !ok {
			t.Errorf("%q: expected match", tt.text)
			continue
		}
		assert.Equal(t, intent.Alarm{Hour: tt.hour, Minute: tt.minute, Label: tt.label}, a, tt.text)
	}
}

func TestParseAlarm_NoMatch(t *testing.T) {
	for _, text := range []string{
		"show my alarms",
		"set alarm",
		"set alarm for 25:00",
		"remind me to call mom at 5pm",
		"set alarm for 13pm",
	} {
		if _, ok := ParseAlarm(text); ok {
			t.Errorf("%q: expected no match", text)
		}
	}
}

func TestParseTimer(t *testing.T) {
	tests := []struct {
		text    string
		seconds int
		label   string
	}{
		{"set a timer for 5 minutes", 300, "Timer"},
		{"start a 2 hour timer", 7200, "Timer"},
		{"timer 45 seconds", 45, "Timer"},
		{"set a timer for 1 minute called eggs", 60, "eggs"},
	}
	for _, tt := range tests {
		got, ok := ParseTimer(tt.text)
		if !ok {
			t.Errorf("%q: expected match", tt.text)
			continue
		}
		if got.Seconds != tt.seconds || got.Label != tt.label {
			t.Errorf("%q: expected %d/%q, got %d/%q", tt.text, tt.seconds, tt.label, got.Seconds, got.Label)
		}
	}

	for _, text := range []string{"set a timer", "call mom in 5 minutes", "set a timer for 0 minutes"} {
		if _, ok := ParseTimer(text); ok {
			t.Errorf("%q: expected no match", text)
		}
	}
}

func TestParseManageAlarms(t *testing.T) {
	tests := []struct {
		text   string
		action intent.AlarmAction
	}{
		{"show my alarms", intent.AlarmShow},
		{"Show all my alarms.", intent.AlarmShow},
		{"dismiss the alarm", intent.AlarmDismiss},
		{"stop alarm", intent.AlarmDismiss},
		{"snooze", intent.AlarmSnooze},
		{"snooze the alarm", intent.AlarmSnooze},
	}
	for _, tt := range tests {
		got, ok := ParseManageAlarms(tt.text)
		if !ok {
			t.Errorf("%q: expected match", tt.text)
			continue
		}
		if got.Action != tt.action {
			t.Errorf("%q: expected %s, got %s", tt.text, tt.action, got.Action)
		}
	}

	if _, ok := ParseManageAlarms("show my alarms for tomorrow"); ok {
		t.Error("expected whole-string match only")
	}
}
