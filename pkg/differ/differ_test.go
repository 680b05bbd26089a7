package differ

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta/pkg/forms"
)

func col(name string, businessName, description *string) forms.MergedColumn {
	return forms.MergedColumn{
		ColumnStructure: forms.ColumnStructure{ColumnName: name, DataType: "string"},
		BusinessName:    businessName,
		Description:     description,
	}
}

func TestDiffNoChanges(t *testing.T) {
	cols := []forms.MergedColumn{col("a", forms.String("A"), nil)}
	cs := Diff(cols, forms.CloneColumns(cols))
	assert.False(t, cs.HasChanges())
	assert.Equal(t, "no changes", cs.String())

	var nilChangeset *Changeset
	assert.False(t, nilChangeset.HasChanges())
}

func TestDiffFieldChanges(t *testing.T) {
	before := []forms.MergedColumn{
		col("a", nil, nil),
		col("b", forms.String("B"), forms.String("old")),
		col("c", forms.String("C"), nil),
	}
	after := []forms.MergedColumn{
		col("a", forms.String("A"), forms.String("")),
		col("b", forms.String("B"), forms.String("new")),
		col("c", forms.String("C"), nil),
	}

	cs := Diff(before, after)
	require.True(t, cs.HasChanges())
	require.Len(t, cs.Updated, 2)

	assert.Equal(t, "a", cs.Updated[0].Column)
	assert.Equal(t, []FieldChange{
		{Path: FieldBusinessName, NewValue: "A", Type: ChangeTypeAdd},
		{Path: FieldDescription, NewValue: "", Type: ChangeTypeAdd},
	}, cs.Updated[0].Changes)

	assert.Equal(t, []FieldChange{
		{Path: FieldDescription, OldValue: "old", NewValue: "new", Type: ChangeTypeUpdate},
	}, cs.Updated[1].Changes)

	assert.Equal(t, ChangesetSummary{ColumnsUpdated: 2, FieldChanges: 3, TotalChanges: 2}, cs.Summary)
	assert.Equal(t, "columns: 2 updated (3 fields)", cs.String())
	assert.Contains(t, cs.Details(), `~ b.description: "old" -> "new"`)
}

func TestDiffAddedRemovedAndAttributes(t *testing.T) {
	withAttr := col("a", nil, nil)
	withAttr.Attributes = map[string]json.RawMessage{"comment": json.RawMessage(`"x"`)}

	cs := Diff(
		[]forms.MergedColumn{col("a", nil, nil), col("gone", nil, nil)},
		[]forms.MergedColumn{withAttr, col("new", nil, nil)},
	)
	require.Len(t, cs.Added, 1)
	require.Len(t, cs.Removed, 1)
	require.Len(t, cs.Updated, 1)
	assert.Equal(t, FieldChange{Path: "comment", NewValue: `"x"`, Type: ChangeTypeAdd}, cs.Updated[0].Changes[0])
	assert.Equal(t, "columns: 1 added, 1 updated (1 fields), 1 removed", cs.String())
	assert.Contains(t, cs.Details(), "+ new")
	assert.Contains(t, cs.Details(), "- gone")

	cs = Diff([]forms.MergedColumn{col("a", nil, nil)}, []forms.MergedColumn{withAttr}, WithAttributes(false))
	assert.False(t, cs.HasChanges())
}

func TestDiffIgnoredFields(t *testing.T) {
	cs := Diff(
		[]forms.MergedColumn{col("a", nil, forms.String("x"))},
		[]forms.MergedColumn{col("a", nil, forms.String("y"))},
		WithIgnoredFields(FieldDescription),
	)
	assert.False(t, cs.HasChanges())
}
