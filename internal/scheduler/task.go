package scheduler

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Priority orders tasks; 1 is the most urgent.
type Priority int

const (
	Urgent Priority = iota + 1
	High
	Medium
	Low
	Normal
)

func (p Priority) String() string {
	switch p {
	case Urgent:
		return "URGENT"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	case Normal:
		return "NORMAL"
	}
	return "UNKNOWN"
}

// Status is a task's lifecycle state.
type Status string

const (
	Pending    Status = "PENDING"
	InProgress Status = "IN_PROGRESS"
	Completed  Status = "COMPLETED"
	Failed     Status = "FAILED"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Completed || s == Failed
}

// Task is one sub-command of a multi-task utterance.
type Task struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Command     string   `json:"command"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// Keyword buckets, checked in order; the first bucket with a hit wins.
var priorityBuckets = []struct {
	priority Priority
	keywords []string
}{
	{Urgent, []string{"call", "emergency"}},
	{High, []string{"alarm", "message", "text", "whatsapp", "sms", "email", "reminder"}},
	{Medium, []string{"open", "launch", "turn on", "turn off", "enable", "disable", "wifi", "bluetooth"}},
	{Low, []string{"play", "screenshot", "record", "note", "list", "youtube"}},
}

// ClassifyPriority assigns a priority by lower-cased substring scan.
// Every string lands in exactly one bucket; Normal is the catch-all.
func ClassifyPriority(command string) Priority {
	lower := strings.ToLower(command)
	for _, b := range priorityBuckets {
		for _, kw := range b.keywords {
			if strings.Contains(lower, kw) {
				return b.priority
			}
		}
	}
	return Normal
}

// MaxDescriptionRunes is the display length before a description is truncated.
const MaxDescriptionRunes = 50

// Describe shortens command for display.
func Describe(command string) string {
	command = strings.TrimSpace(command)
	if utf8.RuneCountInString(command) <= MaxDescriptionRunes {
		return command
	}
	return string([]rune(command)[:MaxDescriptionRunes]) + "..."
}

// Plan builds a batch from sub-utterances: IDs follow decomposition order,
// every task starts Pending, and the batch is stable-sorted by priority.
func Plan(commands []string) []Task {
	tasks := make([]Task, len(commands))
	for i, c := range commands {
		tasks[i] = Task{
			ID:          i + 1,
			Description: Describe(c),
			Command:     c,
			Priority:    ClassifyPriority(c),
			Status:      Pending,
		}
	}
	SortByPriority(tasks)
	return tasks
}

// SortByPriority sorts ascending by priority, keeping the relative order of
// equal-priority tasks.
func SortByPriority(tasks []Task) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return int(a.Priority) - int(b.Priority)
	})
}
