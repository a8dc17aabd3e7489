package assistant

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Speaker reads a reply aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

var (
	codeFenceRe = regexp.MustCompile("```[a-z]*")
	newlinesRe  = regexp.MustCompile(`\n+`)
)

// StripMarkdown removes emphasis markers and code fences and turns line
// breaks into spoken pauses.
func StripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = codeFenceRe.ReplaceAllString(text, "")
	text = newlinesRe.ReplaceAllString(text, ". ")
	return strings.TrimSpace(text)
}

// CommandSpeaker pipes text to an external text-to-speech program such as
// espeak or say.
type CommandSpeaker struct {
	Name string
	Args []string
}

// Speak runs the program with text on stdin. Empty text is not spoken.
func (s CommandSpeaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, s.Name, s.Args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
