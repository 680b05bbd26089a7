package reconcile

import (
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
)

// Merge joins table and metadata by column name, preserving table order.
// Columns without a matching entry keep BusinessName and Description unset.
// Entries naming columns absent from the table are ignored.
func Merge(table forms.TableDocument, metadata forms.MetadataDocument, opts ...Option) ([]forms.MergedColumn, error) {
	o := options{duplicates: LastWins}
	for _, opt := range opts {
		opt(&o)
	}

	lookup, err := index(metadata, o.duplicates)
	if err != nil {
		return nil, err
	}

	merged := make([]forms.MergedColumn, 0, len(table.Columns))
	for _, col := range table.Columns {
		mc := forms.MergedColumn{ColumnStructure: col.Clone()}
		if entry, ok := lookup[col.ColumnName]; ok {
			mc.BusinessName = forms.String(entry.Name)
			mc.Description = forms.String(entry.Description)
		}
		merged = append(merged, mc)
	}
	return merged, nil
}

// index builds the identifier lookup according to the duplicate policy.
func index(metadata forms.MetadataDocument, policy DuplicatePolicy) (map[string]forms.BusinessMetadataEntry, error) {
	if policy == RejectDuplicates {
		if dups := metadata.Duplicates(); len(dups) > 0 {
			return nil, errors.NewConflictError(forms.MetadataForm.Name, dups)
		}
	}

	lookup := make(map[string]forms.BusinessMetadataEntry, len(metadata.Entries))
	for _, entry := range metadata.Entries {
		if _, seen := lookup[entry.ColumnIdentifier]; seen && policy == FirstWins {
			continue
		}
		lookup[entry.ColumnIdentifier] = entry
	}
	return lookup, nil
}
