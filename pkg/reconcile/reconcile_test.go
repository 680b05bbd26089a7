package reconcile_test

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	"github.com/agentstation/zonemeta/pkg/reconcile"
)

func column(name, dataType string) forms.ColumnStructure {
	return forms.ColumnStructure{ColumnName: name, DataType: dataType}
}

func table(cols ...forms.ColumnStructure) forms.TableDocument {
	return forms.TableDocument{Columns: cols}
}

func metadata(entries ...forms.BusinessMetadataEntry) forms.MetadataDocument {
	return forms.MetadataDocument{Entries: entries}
}

func TestMergeAndSplitCustomerID(t *testing.T) {
	tbl := table(column("cust_id", "string"))
	md := metadata(forms.BusinessMetadataEntry{ColumnIdentifier: "cust_id", Name: "Customer ID", Description: "Unique customer key"})

	merged, err := reconcile.Merge(tbl, md)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "Customer ID", forms.Value(merged[0].BusinessName))
	assert.Equal(t, "Unique customer key", forms.Value(merged[0].Description))

	outTable, outMetadata, err := reconcile.Split(merged)
	require.NoError(t, err)
	assert.Equal(t, tbl, outTable)
	assert.Equal(t, md, outMetadata)
}

func TestMergeAndSplitMissingMetadata(t *testing.T) {
	tbl := table(column("amt", "decimal"))

	merged, err := reconcile.Merge(tbl, metadata())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Nil(t, merged[0].BusinessName)
	assert.Nil(t, merged[0].Description)

	_, outMetadata, err := reconcile.Split(merged)
	require.NoError(t, err)
	assert.Equal(t, []forms.BusinessMetadataEntry{{ColumnIdentifier: "amt", Name: "amt", Description: ""}}, outMetadata.Entries)
}

func TestMergePreservesOrderAndIgnoresUnknownEntries(t *testing.T) {
	tbl := table(column("c", "int"), column("a", "int"), column("b", "int"))
	md := metadata(
		forms.BusinessMetadataEntry{ColumnIdentifier: "b", Name: "B"},
		forms.BusinessMetadataEntry{ColumnIdentifier: "ghost", Name: "Ghost"},
		forms.BusinessMetadataEntry{ColumnIdentifier: "c", Name: "C", Description: "see"},
	)

	merged, err := reconcile.Merge(tbl, md)
	require.NoError(t, err)

	names := make([]string, len(merged))
	for i, m := range merged {
		names[i] = m.ColumnName
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
	assert.Equal(t, "C", forms.Value(merged[0].BusinessName))
	assert.Nil(t, merged[1].BusinessName)
	require.NotNil(t, merged[2].Description)
	assert.Equal(t, "", *merged[2].Description)

	_, outMetadata, err := reconcile.Split(merged)
	require.NoError(t, err)
	assert.Len(t, outMetadata.Entries, 3)
	for _, e := range outMetadata.Entries {
		assert.NotEqual(t, "ghost", e.ColumnIdentifier)
	}
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	tbl := table(forms.ColumnStructure{
		ColumnName: "a",
		Attributes: map[string]json.RawMessage{"comment": json.RawMessage(`"x"`)},
	})

	merged, err := reconcile.Merge(tbl, metadata())
	require.NoError(t, err)
	merged[0].Attributes["comment"] = json.RawMessage(`"y"`)

	assert.JSONEq(t, `"x"`, string(tbl.Columns[0].Attributes["comment"]))
}

func TestDuplicatePolicies(t *testing.T) {
	tbl := table(column("id", "int"))
	md := metadata(
		forms.BusinessMetadataEntry{ColumnIdentifier: "id", Name: "First"},
		forms.BusinessMetadataEntry{ColumnIdentifier: "id", Name: "Last"},
	)

	t.Run("last wins by default", func(t *testing.T) {
		merged, err := reconcile.Merge(tbl, md)
		require.NoError(t, err)
		assert.Equal(t, "Last", forms.Value(merged[0].BusinessName))
	})

	t.Run("first wins", func(t *testing.T) {
		merged, err := reconcile.Merge(tbl, md, reconcile.WithDuplicatePolicy(reconcile.FirstWins))
		require.NoError(t, err)
		assert.Equal(t, "First", forms.Value(merged[0].BusinessName))
	})

	t.Run("reject", func(t *testing.T) {
		_, err := reconcile.Merge(tbl, md, reconcile.WithDuplicatePolicy(reconcile.RejectDuplicates))
		require.Error(t, err)
		assert.True(t, errors.IsConflict(err))
		var conflict *errors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, []string{"id"}, conflict.ConflictIDs)
	})

	t.Run("reject passes without duplicates", func(t *testing.T) {
		_, err := reconcile.Merge(tbl, metadata(md.Entries[0]), reconcile.WithDuplicatePolicy(reconcile.RejectDuplicates))
		assert.NoError(t, err)
	})
}

func TestParseDuplicatePolicy(t *testing.T) {
	tests := map[string]reconcile.DuplicatePolicy{
		"":       reconcile.LastWins,
		"last":   reconcile.LastWins,
		"First":  reconcile.FirstWins,
		"reject": reconcile.RejectDuplicates,
	}
	for in, want := range tests {
		got, err := reconcile.ParseDuplicatePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
		if in != "" {
			assert.Equal(t, want.String(), got.String())
		}
	}

	_, err := reconcile.ParseDuplicatePolicy("random")
	assert.Error(t, err)
}

func TestSplitStripsBusinessFields(t *testing.T) {
	merged := []forms.MergedColumn{{
		ColumnStructure: forms.ColumnStructure{
			ColumnName: "email",
			DataType:   "string",
			Attributes: map[string]json.RawMessage{
				"businessName": json.RawMessage(`"stale"`),
				"description":  json.RawMessage(`"stale"`),
				"nullable":     json.RawMessage(`true`),
			},
		},
		BusinessName: forms.String("E-mail"),
	}}

	outTable, outMetadata, err := reconcile.Split(merged)
	require.NoError(t, err)

	encoded, err := outTable.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns": [{"columnName": "email", "dataType": "string", "nullable": true}]}`, encoded)
	assert.Equal(t, forms.BusinessMetadataEntry{ColumnIdentifier: "email", Name: "E-mail", Description: ""}, outMetadata.Entries[0])

	// the input keeps its attributes
	assert.Contains(t, merged[0].Attributes, "businessName")
}

func TestSplitPreconditions(t *testing.T) {
	t.Run("missing column name", func(t *testing.T) {
		_, _, err := reconcile.Split([]forms.MergedColumn{
			{ColumnStructure: column("ok", "int")},
			{ColumnStructure: column("", "int")},
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("duplicate column name", func(t *testing.T) {
		_, _, err := reconcile.Split([]forms.MergedColumn{
			{ColumnStructure: column("a", "int")},
			{ColumnStructure: column("a", "string")},
		})
		assert.True(t, errors.IsConflict(err))
	})

	t.Run("empty input", func(t *testing.T) {
		outTable, outMetadata, err := reconcile.Split(nil)
		require.NoError(t, err)
		assert.Empty(t, outTable.Columns)
		assert.Empty(t, outMetadata.Entries)
	})
}

func TestSplitIntoKeepsDocumentAttributes(t *testing.T) {
	tbl := table(column("a", "int"))
	tbl.Attributes = map[string]json.RawMessage{"tableName": json.RawMessage(`"orders"`)}
	md := metadata()
	md.Attributes = map[string]json.RawMessage{"version": json.RawMessage(`2`)}

	merged, err := reconcile.Merge(tbl, md)
	require.NoError(t, err)
	outTable, outMetadata, err := reconcile.SplitInto(merged, tbl, md)
	require.NoError(t, err)

	assert.Equal(t, tbl, outTable)
	assert.Equal(t, md.Attributes, outMetadata.Attributes)
	assert.Len(t, outMetadata.Entries, 1)
}

// randomDocuments builds a table with unique column names and a metadata
// document covering a random subset of it.
func randomDocuments(r *rand.Rand) (forms.TableDocument, forms.MetadataDocument) {
	var tbl forms.TableDocument
	var md forms.MetadataDocument
	n := r.IntN(12)
	for i := range n {
		name := fmt.Sprintf("col_%d_%d", i, r.IntN(1000))
		col := column(name, []string{"int", "string", "decimal", "timestamp"}[r.IntN(4)])
		if r.IntN(3) == 0 {
			col.Attributes = map[string]json.RawMessage{"nullable": json.RawMessage(`false`)}
		}
		tbl.Columns = append(tbl.Columns, col)
		if r.IntN(2) == 0 {
			md.Entries = append(md.Entries, forms.BusinessMetadataEntry{
				ColumnIdentifier: name,
				Name:             "Name " + name,
				Description:      []string{"", "desc " + name}[r.IntN(2)],
			})
		}
	}
	return tbl, md
}

func TestRoundTripProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := range 200 {
		tbl, md := randomDocuments(r)

		merged, err := reconcile.Merge(tbl, md)
		require.NoError(t, err)

		outTable, outMetadata, err := reconcile.Split(merged)
		require.NoError(t, err)

		// round trip of the structural form
		if len(tbl.Columns) == 0 {
			assert.Empty(t, outTable.Columns, "iteration %d", iter)
		} else {
			assert.Equal(t, tbl.Columns, outTable.Columns, "iteration %d", iter)
		}

		// completeness: one entry per column, in column order
		require.Len(t, outMetadata.Entries, len(tbl.Columns), "iteration %d", iter)
		byID := make(map[string]forms.BusinessMetadataEntry)
		for _, e := range md.Entries {
			byID[e.ColumnIdentifier] = e
		}
		for i, col := range tbl.Columns {
			got := outMetadata.Entries[i]
			assert.Equal(t, col.ColumnName, got.ColumnIdentifier)
			if want, ok := byID[col.ColumnName]; ok {
				assert.Equal(t, want, got, "iteration %d", iter)
			} else {
				assert.Equal(t, forms.BusinessMetadataEntry{ColumnIdentifier: col.ColumnName, Name: col.ColumnName}, got)
			}
		}

		// no leakage
		encoded, err := outTable.Encode()
		require.NoError(t, err)
		assert.NotContains(t, encoded, `"businessName"`)
		assert.NotContains(t, encoded, `"description"`)
	}
}
