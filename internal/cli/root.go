// Package cli wires configuration, backends and the assistant behind the
// jarvis command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jarvis/internal/config"
	"jarvis/internal/exitcode"
	"jarvis/internal/gateway/host"
	"jarvis/internal/llm"
	"jarvis/internal/logging"
)

// CLI holds the process streams and the overridable collaborators.
type CLI struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Launcher receives the URIs for calls, messages and media.
	// Nil logs them instead.
	Launcher host.Launcher

	// Generator replaces the configured model when set.
	Generator llm.Generator

	configDir string
	quiet     bool
	debug     bool

	cfg *config.Config
	log *zap.Logger
}

// Run executes args against the standard streams and returns the exit code.
func Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	c := &CLI{In: os.Stdin, Out: out, Err: errOut}
	return c.Run(ctx, args)
}

// Run parses args, dispatches to the matching command and maps its error
// to an exit code.
func (c *CLI) Run(ctx context.Context, args []string) int {
	if c.In == nil {
		c.In = os.Stdin
	}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetIn(c.In)
	root.SetOut(c.Out)
	root.SetErr(c.Err)

	err := root.ExecuteContext(ctx)
	if c.log != nil {
		_ = c.log.Sync()
	}
	if err == nil {
		return exitcode.Success
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(c.Err, "error: %s\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(c.Err, "error: %s\n", err)
	return exitcode.UserError
}

func (c *CLI) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Voice and text assistant that turns commands into device actions",
		Long: `jarvis routes natural-language commands to actions: reminders, notes,
alarms and timers, calls and messages, media and device toggles.

Utterances holding several tasks ("call mom and then turn on wifi") are split
into a batch and run one at a time, most urgent first.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config", "", "config directory (default $XDG_CONFIG_HOME/jarvis)")
	flags.BoolVarP(&c.quiet, "quiet", "q", false, "suppress informational output")
	flags.BoolVar(&c.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		c.newSayCmd(),
		c.newReplCmd(),
		c.newClassifyCmd(),
		c.newPlanCmd(),
		c.newNotesCmd(),
		c.newRemindersCmd(),
		c.newServeCmd(),
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (c *CLI) setup() error {
	cfg, err := config.New(c.configDir)
	if err != nil {
		return userError(err)
	}
	cfg.Quiet = c.quiet
	cfg.Debug = c.debug
	c.cfg = cfg

	log, err := logging.New(c.debug, c.quiet)
	if err != nil {
		return userError(err)
	}
	c.log = log
	return nil
}

// exitError carries the exit code for a failed command. A nil err exits
// without printing anything.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error    { return &exitError{code: exitcode.UserError, err: err} }
func authError(err error) error    { return &exitError{code: exitcode.AuthError, err: err} }
func backendError(err error) error { return &exitError{code: exitcode.BackendError, err: err} }

// errReplyFailed exits with UserError after the reply has been printed.
var errReplyFailed = &exitError{code: exitcode.UserError}
