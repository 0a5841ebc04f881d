package commands

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "events [--output <file.json>]",
		Short: "Crawls every upcoming event reachable from the landing page.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			catalog, err := svc.Events(cmd.Context())
			if err != nil {
				return err
			}
			return f.write(cmd, catalog)
		},
	}
}

func newEventCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "event <id> [--output <file.json>]",
		Short: "Crawls a single event page by its slug, e.g. ufc-310.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := f.service(cmd.Context())
			if err != nil {
				return err
			}
			catalog, err := svc.Event(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return f.write(cmd, catalog)
		},
	}
}
