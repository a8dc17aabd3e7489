package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jarvis/internal/decompose"
	"jarvis/internal/output"
	"jarvis/internal/router"
	"jarvis/internal/scheduler"
)

func (c *CLI) newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <utterance>...",
		Short: "Show which rule an utterance matches without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			r := router.New(nil, nil, router.WithLogger(c.log.Named("router")))
			rule, in := r.Classify(text)

			fmt.Fprintf(c.Out, "rule:   %s\n", rule)
			fmt.Fprintf(c.Out, "kind:   %s\n", in.Kind())
			fmt.Fprintf(c.Out, "fields: %+v\n", in)
			fmt.Fprintf(c.Out, "multi:  %t\n", decompose.IsMultiTask(text))
			return nil
		},
	}
}

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <memo>...",
		Short: "Show the batch a multi-task memo would run, in execution order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			memo := strings.Join(args, " ")
			d := decompose.New(c.generator(cmd.Context()), nil, c.log.Named("decompose"))
			commands, stage := d.Extract(cmd.Context(), memo)
			if len(commands) == 0 {
				return userError(fmt.Errorf("no tasks found"))
			}
			output.FormatBoard(c.Out, fmt.Sprintf("Plan (%s)", stage), scheduler.Plan(commands), c.styles())
			return nil
		},
	}
}
