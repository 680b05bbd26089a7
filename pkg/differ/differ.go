package differ

import (
	"bytes"
	"sort"

	"github.com/agentstation/zonemeta/pkg/forms"
)

// Field paths reported in FieldChange.Path.
const (
	FieldBusinessName = forms.KeyBusinessName
	FieldDescription  = forms.KeyDescription
	FieldDataType     = forms.KeyDataType
)

type differ struct {
	ignoreFields map[string]bool
	attributes   bool
}

// Diff compares two merged views by column name. Column order is not a change.
func Diff(existing, updated []forms.MergedColumn, opts ...Option) *Changeset {
	d := &differ{ignoreFields: make(map[string]bool), attributes: true}
	for _, opt := range opts {
		opt(d)
	}

	changeset := &Changeset{}

	existingMap := make(map[string]forms.MergedColumn, len(existing))
	for _, col := range existing {
		existingMap[col.ColumnName] = col
	}
	updatedMap := make(map[string]forms.MergedColumn, len(updated))
	for _, col := range updated {
		updatedMap[col.ColumnName] = col
	}

	for _, col := range updated {
		old, ok := existingMap[col.ColumnName]
		if !ok {
			changeset.Added = append(changeset.Added, col)
			continue
		}
		if changes := d.column(old, col); len(changes) > 0 {
			changeset.Updated = append(changeset.Updated, ColumnUpdate{
				Column:   col.ColumnName,
				Existing: old,
				New:      col,
				Changes:  changes,
			})
		}
	}
	for _, col := range existing {
		if _, ok := updatedMap[col.ColumnName]; !ok {
			changeset.Removed = append(changeset.Removed, col)
		}
	}

	changeset.summarize()
	return changeset
}

func (d *differ) column(old, updated forms.MergedColumn) []FieldChange {
	var changes []FieldChange

	if !d.ignoreFields[FieldDataType] && old.DataType != updated.DataType {
		changes = append(changes, change(FieldDataType, old.DataType, updated.DataType))
	}
	if !d.ignoreFields[FieldBusinessName] {
		if c, ok := optional(FieldBusinessName, old.BusinessName, updated.BusinessName); ok {
			changes = append(changes, c)
		}
	}
	if !d.ignoreFields[FieldDescription] {
		if c, ok := optional(FieldDescription, old.Description, updated.Description); ok {
			changes = append(changes, c)
		}
	}
	if d.attributes {
		changes = append(changes, d.attributeChanges(old, updated)...)
	}
	return changes
}

func (d *differ) attributeChanges(old, updated forms.MergedColumn) []FieldChange {
	keys := make(map[string]struct{}, len(old.Attributes)+len(updated.Attributes))
	for k := range old.Attributes {
		keys[k] = struct{}{}
	}
	for k := range updated.Attributes {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		if !d.ignoreFields[k] {
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)

	var changes []FieldChange
	for _, k := range sorted {
		before, hadBefore := old.Attributes[k]
		after, hasAfter := updated.Attributes[k]
		switch {
		case hadBefore && !hasAfter:
			changes = append(changes, FieldChange{Path: k, OldValue: string(before), Type: ChangeTypeRemove})
		case !hadBefore && hasAfter:
			changes = append(changes, FieldChange{Path: k, NewValue: string(after), Type: ChangeTypeAdd})
		case !bytes.Equal(before, after):
			changes = append(changes, change(k, string(before), string(after)))
		}
	}
	return changes
}

func optional(path string, old, updated *string) (FieldChange, bool) {
	switch {
	case old == nil && updated == nil:
		return FieldChange{}, false
	case old == nil:
		return FieldChange{Path: path, NewValue: *updated, Type: ChangeTypeAdd}, true
	case updated == nil:
		return FieldChange{Path: path, OldValue: *old, Type: ChangeTypeRemove}, true
	case *old != *updated:
		return change(path, *old, *updated), true
	}
	return FieldChange{}, false
}

func change(path, old, updated string) FieldChange {
	return FieldChange{Path: path, OldValue: old, NewValue: updated, Type: ChangeTypeUpdate}
}
