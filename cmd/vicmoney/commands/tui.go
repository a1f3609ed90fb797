package commands

import (
	"github.com/spf13/cobra"

	"vicmoney/internal/cli"
	"vicmoney/internal/tracker"
	"vicmoney/internal/tui"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the tracker in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()

			// The terminal belongs to the UI; tracker events are not logged.
			return tui.Run(ctx, tracker.New(nil))
		},
	}
	return cmd
}
