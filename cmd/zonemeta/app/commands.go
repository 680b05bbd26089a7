package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/zonemeta/cmd/zonemeta/cmd/revisions"
	"github.com/agentstation/zonemeta/cmd/zonemeta/cmd/show"
	synccmd "github.com/agentstation/zonemeta/cmd/zonemeta/cmd/sync"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(synccmd.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(revisions.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.createVersionCommand())
}

// createVersionCommand creates the version command.
func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("zonemeta %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
