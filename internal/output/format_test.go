package output

import (
	"bytes"
	"strings"
	"testing"

	"jarvis/internal/assistant"
	"jarvis/internal/scheduler"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, scheduler.Task{
		ID:          3,
		Description: "call mom",
		Priority:    scheduler.Urgent,
		Status:      scheduler.InProgress,
	}, Plain())

	want := "   3  IN_PROGRESS URGENT  call mom\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestFormatTask_NormalizesDescription(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"", "(untitled)"},
		{"   ", "(untitled)"},
		{"line one\nline two", "line one line two"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		FormatTask(&buf, scheduler.Task{ID: 1, Description: tt.desc, Priority: scheduler.Low, Status: scheduler.Pending}, Plain())
		if !strings.HasSuffix(buf.String(), "  "+tt.want+"\n") {
			t.Errorf("desc %q: got %q", tt.desc, buf.String())
		}
	}
}

func TestFormatBoard(t *testing.T) {
	var buf bytes.Buffer
	FormatBoard(&buf, "Tasks", scheduler.Plan([]string{"play jazz", "call mom"}), Plain())

	want := strings.Join([]string{
		ListSeparator,
		"Tasks",
		ListSeparator,
		"   2  PENDING     URGENT  call mom",
		"   1  PENDING     LOW     play jazz",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatBoard_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatBoard(&buf, "", nil, Plain())
	if !strings.Contains(buf.String(), "(untitled)\n") || !strings.HasSuffix(buf.String(), "(no tasks)\n") {
		t.Errorf("got %q", buf.String())
	}
}

func TestFormatReply(t *testing.T) {
	var buf bytes.Buffer
	FormatReply(&buf, assistant.Reply{
		Text:    "Completed 1/1 tasks\n",
		OK:      true,
		Notices: []string{"Task 1/1: call mom", "Calling mom"},
	}, Plain())

	want := "Task 1/1: call mom\nCalling mom\nCompleted 1/1 tasks\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
