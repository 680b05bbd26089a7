// Package show implements the show command.
package show

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/internal/cmd/output"
	"github.com/agentstation/zonemeta/internal/cmd/table"
)

// NewCommand creates the show command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <asset-id>",
		GroupID: "core",
		Short:   "Show the merged column metadata of an asset",
		Long: `Show fetches the table and column business metadata forms of an asset
and prints one row per column with its business name and description.

Nothing is generated or published.`,
		Example: `  zonemeta show a1b2c3d4            # Table output
  zonemeta show a1b2c3d4 -o wide    # Include column attributes
  zonemeta show a1b2c3d4 -o json    # Merged columns as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout(), args[0])
		},
	}
}

// Run prints the merged column view of one asset.
func Run(ctx context.Context, app application.Application, w io.Writer, assetID string) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	manager, err := app.Manager(ctx)
	if err != nil {
		return err
	}

	columns, err := manager.Content(ctx, assetID)
	if err != nil {
		return err
	}

	app.Logger().Debug().
		Str("asset_id", assetID).
		Int("columns", len(columns)).
		Msg("Fetched asset content")

	return output.Write(w, format, columns, func(wide bool) table.Data {
		return table.Columns(columns, wide)
	})
}
