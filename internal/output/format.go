// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jarvis/internal/assistant"
	"jarvis/internal/scheduler"
)

const (
	// ListSeparator is the separator line for board sections.
	ListSeparator = "------------"
)

// Styles colours terminal output. The zero value renders plain text.
type Styles struct {
	enabled bool

	Header   lipgloss.Style
	Notice   lipgloss.Style
	OK       lipgloss.Style
	Failure  lipgloss.Style
	Statuses map[scheduler.Status]lipgloss.Style
}

// Plain returns styles that leave text untouched.
func Plain() Styles {
	return Styles{}
}

// Colour returns the styles used on a terminal.
func Colour() Styles {
	return Styles{
		enabled: true,
		Header:  lipgloss.NewStyle().Bold(true),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("#7d8590")),
		OK:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Statuses: map[scheduler.Status]lipgloss.Style{
			scheduler.Pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7d8590")),
			scheduler.InProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
			scheduler.Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")),
			scheduler.Failed:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		},
	}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// FormatReply writes batch notices, then the reply text.
func FormatReply(w io.Writer, reply assistant.Reply, s Styles) {
	for _, n := range reply.Notices {
		fmt.Fprintln(w, s.render(s.Notice, n))
	}
	style := s.OK
	if !reply.OK {
		style = s.Failure
	}
	fmt.Fprintln(w, s.render(style, normalizeText(reply.Text)))
}

// FormatTask formats a board row.
// Format: "{ID:>4}  {STATUS:<11} {PRIORITY:<6}  {DESCRIPTION}\n"
func FormatTask(w io.Writer, task scheduler.Task, s Styles) {
	status := fmt.Sprintf("%-11s", task.Status)
	if st, ok := s.Statuses[task.Status]; ok {
		status = s.render(st, status)
	}
	fmt.Fprintf(w, "%4d  %s %-6s  %s\n", task.ID, status, task.Priority, normalizeTitle(task.Description))
}

// FormatBoard formats a titled section of tasks in board order.
func FormatBoard(w io.Writer, title string, tasks []scheduler.Task, s Styles) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, s.render(s.Header, normalizeListTitle(title)))
	fmt.Fprintln(w, ListSeparator)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for _, t := range tasks {
		FormatTask(w, t, s)
	}
}

// normalizeTitle normalizes a task description for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeListTitle normalizes a section title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText drops trailing blank lines from a reply.
func normalizeText(text string) string {
	return strings.TrimRight(text, "\r\n")
}
