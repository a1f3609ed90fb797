package commands

import (
	"github.com/spf13/cobra"

	"vicmoney/internal/cli"
)

var (
	envFile   string
	overrides cli.Overrides
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "vicmoney",
		Short:        "Track a purse of pre-decimal British coins",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.LoadEnvFile(envFile)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(serveCmd(), tuiCmd(), versionCmd())
	return root
}
