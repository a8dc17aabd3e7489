package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jarvis/internal/config"
	"jarvis/internal/output"
	"jarvis/internal/store"
)

// ReminderTimeLayout formats due times in the reminders listing.
const ReminderTimeLayout = "Mon Jan 2 15:04"

// localStore opens the SQLite database for commands that browse it.
func (c *CLI) localStore(backend string) (*store.Store, error) {
	if backend != config.BackendSQLite {
		return nil, userError(fmt.Errorf("backend is %s; browse it there", backend))
	}
	a := &app{}
	st, err := a.openStore(c.cfg)
	if err != nil {
		return nil, backendError(err)
	}
	return st, nil
}

func (c *CLI) newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "List saved notes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.localStore(c.cfg.Backend.Notes)
			if err != nil {
				return err
			}
			defer st.Close()

			notes, err := st.Notes(cmd.Context())
			if err != nil {
				return backendError(err)
			}
			if len(notes) == 0 {
				if !c.quiet {
					fmt.Fprintln(c.Out, "no notes")
				}
				return nil
			}
			for _, n := range notes {
				fmt.Fprintln(c.Out, output.ListSeparator)
				fmt.Fprintln(c.Out, n.Title)
				fmt.Fprintln(c.Out, output.ListSeparator)
				fmt.Fprintln(c.Out, n.Content)
			}
			return nil
		},
	}
}

func (c *CLI) newRemindersCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List upcoming reminders, soonest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.localStore(c.cfg.Backend.Reminders)
			if err != nil {
				return err
			}
			defer st.Close()

			from := time.Now()
			if all {
				from = time.Time{}
			}
			reminders, err := st.Reminders(cmd.Context(), from)
			if err != nil {
				return backendError(err)
			}
			if len(reminders) == 0 {
				if !c.quiet {
					fmt.Fprintln(c.Out, "no reminders")
				}
				return nil
			}
			for _, r := range reminders {
				fmt.Fprintf(c.Out, "%s  %s\n", r.DueAt.Local().Format(ReminderTimeLayout), r.Title)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include reminders already due")
	return cmd
}
