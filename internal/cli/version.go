package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"jarvis/internal/config"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.Out, "%s %s\n", config.AppName, Version)
			return nil
		},
	}
}
