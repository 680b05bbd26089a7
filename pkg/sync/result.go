package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/zonemeta/pkg/differ"
	"github.com/agentstation/zonemeta/pkg/forms"
)

// Result is the outcome of one asset synchronization.
type Result struct {
	AssetID   string               `json:"asset_id" yaml:"asset_id"`
	Revision  string               `json:"revision,omitempty" yaml:"revision,omitempty"` // New revision, empty on dry runs
	Label     string               `json:"label,omitempty" yaml:"label,omitempty"`
	DryRun    bool                 `json:"dry_run" yaml:"dry_run"`
	Published bool                 `json:"published" yaml:"published"`
	Generated int                  `json:"generated" yaml:"generated"` // Columns sent to the generator
	Edited    int                  `json:"edited" yaml:"edited"`       // Columns touched by edits
	Changeset *differ.Changeset    `json:"changeset" yaml:"changeset"`
	Columns   []forms.MergedColumn `json:"columns" yaml:"columns"` // Merged view as published
}

// HasChanges returns true if the run changed any column.
func (r *Result) HasChanges() bool {
	return r.Changeset.HasChanges()
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", r.AssetID, r.Changeset.String())
	switch {
	case r.DryRun:
		sb.WriteString(" (dry run)")
	case r.Published:
		fmt.Fprintf(&sb, ", published revision %s", r.Revision)
	}
	return sb.String()
}

// BatchResult collects the results of several assets. Failed assets appear
// in Errors only.
type BatchResult struct {
	Results []*Result `json:"results" yaml:"results"`
	Errors  []error   `json:"-" yaml:"-"`
}

// Failed returns the number of assets that failed.
func (b *BatchResult) Failed() int {
	return len(b.Errors)
}

// Summary returns a human-readable summary of the batch.
func (b *BatchResult) Summary() string {
	published := 0
	for _, r := range b.Results {
		if r.Published {
			published++
		}
	}
	return fmt.Sprintf("%d assets synced (%d published), %d failed", len(b.Results), published, len(b.Errors))
}
