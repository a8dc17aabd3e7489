package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/assistant"
	"jarvis/internal/output"
	"jarvis/internal/scheduler"
)

// styles colours output written to the terminal; lipgloss drops the colour
// again when stdout is redirected.
func (c *CLI) styles() output.Styles {
	if c.Out == os.Stdout {
		return output.Colour()
	}
	return output.Plain()
}

func (c *CLI) newSayCmd() *cobra.Command {
	var voice bool
	cmd := &cobra.Command{
		Use:   "say <utterance>...",
		Short: "Run one utterance",
		Example: `  jarvis say remind me to call the dentist tomorrow at 3pm
  jarvis say "play despacito, then call mom and then turn on wifi"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return userError(fmt.Errorf("nothing to say"))
			}
			a, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			reply := a.assistant.Process(cmd.Context(), text, assistant.Options{Voice: voice})
			if !c.quiet || !reply.OK {
				output.FormatReply(c.Out, reply, c.styles())
			}
			if !reply.OK {
				return errReplyFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&voice, "voice", false, "speak the reply with the configured speech command")
	return cmd
}

// liveProgress prints batch progress as the scheduler reports it.
type liveProgress struct {
	w      io.Writer
	styles output.Styles
}

func (p liveProgress) Started(t scheduler.Task, i, total int) {
	fmt.Fprintf(p.w, "Task %d/%d: %s\n", i, total, t.Description)
}

func (p liveProgress) Finished(t scheduler.Task, message string) {
	output.FormatTask(p.w, scheduler.Task{
		ID:          t.ID,
		Description: message,
		Priority:    t.Priority,
		Status:      t.Status,
	}, p.styles)
}

func (p liveProgress) Done(scheduler.Summary) {}

func (c *CLI) newReplCmd() *cobra.Command {
	var voice bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read utterances line by line until EOF or \"exit\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := c.styles()
			a, err := c.build(cmd.Context(), assistant.WithListener(liveProgress{w: c.Out, styles: styles}))
			if err != nil {
				return err
			}
			defer a.Close()

			scanner := bufio.NewScanner(c.In)
			for {
				if !c.quiet {
					fmt.Fprint(c.Out, "> ")
				}
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(line) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}
				if cmd.Context().Err() != nil {
					return nil
				}

				reply := a.assistant.Process(cmd.Context(), line, assistant.Options{Voice: voice})
				// Batch notices were already printed live.
				reply.Notices = nil
				output.FormatReply(c.Out, reply, styles)
			}
			if err := scanner.Err(); err != nil {
				return userError(fmt.Errorf("read input: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&voice, "voice", false, "speak each reply with the configured speech command")
	return cmd
}
