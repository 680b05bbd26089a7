package reconcile

import (
	"fmt"

	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
)

// Split rebuilds the two canonical documents from a merged view.
//
// The table document receives only structural fields: businessName and
// description are stripped even when they arrived as opaque attributes.
// The metadata document receives exactly one entry per column, in column
// order, with the name defaulting to the column name and the description
// defaulting to "".
//
// A column without a name, or a name used twice, fails the whole call;
// nothing is partially split.
func Split(columns []forms.MergedColumn) (forms.TableDocument, forms.MetadataDocument, error) {
	table := forms.TableDocument{Columns: make([]forms.ColumnStructure, 0, len(columns))}
	metadata := forms.MetadataDocument{Entries: make([]forms.BusinessMetadataEntry, 0, len(columns))}

	seen := make(map[string]struct{}, len(columns))
	for i, col := range columns {
		if col.ColumnName == "" {
			return forms.TableDocument{}, forms.MetadataDocument{},
				errors.NewValidationError(forms.KeyColumnName, i, fmt.Sprintf("merged column %d has no name", i))
		}
		if _, dup := seen[col.ColumnName]; dup {
			return forms.TableDocument{}, forms.MetadataDocument{},
				errors.NewConflictError(forms.TableForm.Name, []string{col.ColumnName})
		}
		seen[col.ColumnName] = struct{}{}

		table.Columns = append(table.Columns, structural(col))
		metadata.Entries = append(metadata.Entries, entry(col))
	}
	return table, metadata, nil
}

// SplitInto is Split that keeps the document-level attributes of the
// documents the columns were merged from.
func SplitInto(columns []forms.MergedColumn, table forms.TableDocument, metadata forms.MetadataDocument) (forms.TableDocument, forms.MetadataDocument, error) {
	outTable, outMetadata, err := Split(columns)
	if err != nil {
		return forms.TableDocument{}, forms.MetadataDocument{}, err
	}
	outTable.Attributes = table.Attributes
	outMetadata.Attributes = metadata.Attributes
	return outTable, outMetadata, nil
}

func structural(col forms.MergedColumn) forms.ColumnStructure {
	out := col.ColumnStructure.Clone()
	delete(out.Attributes, forms.KeyBusinessName)
	delete(out.Attributes, forms.KeyDescription)
	if len(out.Attributes) == 0 {
		out.Attributes = nil
	}
	return out
}

func entry(col forms.MergedColumn) forms.BusinessMetadataEntry {
	name := col.ColumnName
	if col.BusinessName != nil {
		name = *col.BusinessName
	}
	return forms.BusinessMetadataEntry{
		ColumnIdentifier: col.ColumnName,
		Name:             name,
		Description:      forms.Value(col.Description),
	}
}
