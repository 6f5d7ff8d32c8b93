package main

import (
	"os"

	"github.com/akeren/teamup-site/config"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/spf13/cobra"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger *log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "teamup",
		Short:        "Operator commands for the teamup site",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newMigrateCommand(logger),
		newHashPasswordCommand(),
		newListCommand(logger),
	)
	return cmd
}
