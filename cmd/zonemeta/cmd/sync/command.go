// Package sync implements the sync command.
package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/internal/cmd/output"
	"github.com/agentstation/zonemeta/internal/cmd/table"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync <asset-id>...",
		GroupID: "core",
		Short:   "Generate, edit and publish column business metadata",
		Long: `Sync brings the column business metadata of one or more assets up to date.

For every asset it will:
  1. Fetch the table and column business metadata forms
  2. Merge them into one view per column
  3. Generate missing business names and descriptions (unless --no-generate)
  4. Apply the overrides from --edits
  5. Publish both forms as one new asset revision (unless --dry-run)

Several assets are synced concurrently; a failing asset does not stop the others.`,
		Example: `  zonemeta sync a1b2c3d4                               # Fill gaps and publish
  zonemeta sync a1b2c3d4 --dry-run -o wide             # Preview the changes
  zonemeta sync a1b2c3d4 --context "Orders placed on the web shop"
  zonemeta sync a1b2c3d4 --edits overrides.yaml --no-generate
  zonemeta sync a1b2c3d4 e5f6a7b8 --concurrency 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), app, cmd.OutOrStdout(), flags, args)
		},
	}

	flags = addFlags(cmd)
	return cmd
}

// Run syncs the given assets and prints the outcome.
func Run(ctx context.Context, app application.Application, w io.Writer, flags *Flags, assetIDs []string) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	opts, err := flags.Options()
	if err != nil {
		return err
	}

	manager, err := app.Manager(ctx)
	if err != nil {
		return err
	}
	logger := app.Logger()

	if len(assetIDs) == 1 {
		result, err := manager.Sync(ctx, assetIDs[0], opts...)
		if err != nil {
			return err
		}
		logger.Info().Msg(result.Summary())
		return output.Write(w, format, result, func(bool) table.Data {
			return table.Changes(result.Changeset)
		})
	}

	batch, err := manager.SyncAll(ctx, assetIDs, opts...)
	if err != nil {
		return err
	}
	for _, failure := range batch.Errors {
		logger.Error().Err(failure).Msg("Asset sync failed")
	}
	logger.Info().Msg(batch.Summary())

	if err := output.Write(w, format, batch, func(bool) table.Data {
		return table.Results(batch)
	}); err != nil {
		return err
	}

	if n := batch.Failed(); n > 0 {
		return fmt.Errorf("%d of %d assets failed to sync", n, len(assetIDs))
	}
	return nil
}
