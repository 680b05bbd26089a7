// Package revisions implements the revisions command.
package revisions

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/internal/cmd/output"
	"github.com/agentstation/zonemeta/internal/cmd/table"
)

// NewCommand creates the revisions command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "revisions",
		GroupID: "management",
		Short:   "Print the form type revisions resolved for the domain",
		Long: `Revisions resolves the current revision of every form type zonemeta
writes and prints the result. Forms whose type could not be resolved fall
back to revision 1 when publishing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

// Run prints the resolved revision map.
func Run(ctx context.Context, app application.Application, w io.Writer) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	manager, err := app.Manager(ctx)
	if err != nil {
		return err
	}

	revisions := manager.Revisions()
	return output.Write(w, format, revisions.All(), func(bool) table.Data {
		return table.Revisions(revisions)
	})
}
