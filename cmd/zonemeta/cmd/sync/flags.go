package sync

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/edits"
	"github.com/agentstation/zonemeta/pkg/errors"
	pkgsync "github.com/agentstation/zonemeta/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun      bool
	NoGenerate  bool
	Context     string
	ContextFile string
	Edits       string
	Timeout     time.Duration
}

func addFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "run the pipeline without publishing a revision")
	cmd.Flags().BoolVar(&flags.NoGenerate, "no-generate", false, "skip metadata generation")
	cmd.Flags().StringVar(&flags.Context, "context", "", "free text describing the table, sent with every column")
	cmd.Flags().StringVar(&flags.ContextFile, "context-file", "", "read the context text from a file")
	cmd.Flags().StringVar(&flags.Edits, "edits", "", "YAML or JSON file of per-column businessName/description overrides")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.CommandTimeout, "deadline for each asset (0 for none)")
	cmd.MarkFlagsMutuallyExclusive("context", "context-file")
	return flags
}

// Options converts the flags into sync options, reading the context and
// edits files.
func (f *Flags) Options() ([]pkgsync.Option, error) {
	contextText := f.Context
	if f.ContextFile != "" {
		data, err := os.ReadFile(f.ContextFile)
		if err != nil {
			return nil, errors.WrapResource("read", "context file", f.ContextFile, err)
		}
		contextText = strings.TrimSpace(string(data))
	}

	opts := []pkgsync.Option{
		pkgsync.WithDryRun(f.DryRun),
		pkgsync.WithGenerate(!f.NoGenerate),
		pkgsync.WithContextText(contextText),
		pkgsync.WithTimeout(f.Timeout),
	}

	if f.Edits != "" {
		file, err := edits.Load(f.Edits)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pkgsync.WithEdits(file))
	}

	return opts, nil
}
