package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/zonemeta/pkg/differ"
	"github.com/agentstation/zonemeta/pkg/edits"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
)

func TestOptions(t *testing.T) {
	f := &edits.File{}
	opts := Defaults().Apply(
		WithDryRun(true),
		WithGenerate(false),
		WithContextText("orders"),
		WithEdits(f),
		WithTimeout(time.Minute),
	)
	assert.True(t, opts.DryRun)
	assert.False(t, opts.Generate)
	assert.Equal(t, "orders", opts.ContextText)
	assert.Same(t, f, opts.Edits)
	assert.NoError(t, opts.Validate())

	assert.True(t, errors.IsValidationError(Defaults().Apply(WithTimeout(-1)).Validate()))
}

func TestResultSummary(t *testing.T) {
	before := []forms.MergedColumn{{ColumnStructure: forms.ColumnStructure{ColumnName: "a"}}}
	after := forms.CloneColumns(before)
	after[0].BusinessName = forms.String("A")

	r := &Result{AssetID: "a1", Changeset: differ.Diff(before, after), Published: true, Revision: "3"}
	assert.True(t, r.HasChanges())
	assert.Equal(t, "a1: columns: 1 updated (1 fields), published revision 3", r.Summary())

	r = &Result{AssetID: "a1", Changeset: differ.Diff(before, before), DryRun: true}
	assert.Equal(t, "a1: no changes (dry run)", r.Summary())

	b := &BatchResult{Results: []*Result{r}, Errors: []error{errors.New("x")}}
	assert.Equal(t, 1, b.Failed())
	assert.Equal(t, "1 assets synced (0 published), 1 failed", b.Summary())
}
