// Package differ compares two merged column views of an asset and reports
// what a sync would change.
package differ

import (
	"fmt"
	"strings"

	"github.com/agentstation/zonemeta/pkg/forms"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates an item was added.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates an item was updated.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates an item was removed.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`           // Field path (e.g., "businessName")
	OldValue string     `json:"old_value" yaml:"old_value"` // Previous value (string representation)
	NewValue string     `json:"new_value" yaml:"new_value"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// ColumnUpdate represents an update to an existing column.
type ColumnUpdate struct {
	Column   string             `json:"column" yaml:"column"`
	Existing forms.MergedColumn `json:"-" yaml:"-"`
	New      forms.MergedColumn `json:"-" yaml:"-"`
	Changes  []FieldChange      `json:"changes" yaml:"changes"`
}

// Changeset represents all changes between two merged views.
type Changeset struct {
	Added   []forms.MergedColumn `json:"added,omitempty" yaml:"added,omitempty"`
	Updated []ColumnUpdate       `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed []forms.MergedColumn `json:"removed,omitempty" yaml:"removed,omitempty"`
	Summary ChangesetSummary     `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	ColumnsAdded   int `json:"columns_added" yaml:"columns_added"`
	ColumnsUpdated int `json:"columns_updated" yaml:"columns_updated"`
	ColumnsRemoved int `json:"columns_removed" yaml:"columns_removed"`
	FieldChanges   int `json:"field_changes" yaml:"field_changes"`
	TotalChanges   int `json:"total_changes" yaml:"total_changes"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c != nil && c.Summary.TotalChanges > 0
}

// String returns a one-line summary.
func (c *Changeset) String() string {
	if !c.HasChanges() {
		return "no changes"
	}
	var parts []string
	if n := c.Summary.ColumnsAdded; n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := c.Summary.ColumnsUpdated; n > 0 {
		parts = append(parts, fmt.Sprintf("%d updated (%d fields)", n, c.Summary.FieldChanges))
	}
	if n := c.Summary.ColumnsRemoved; n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}
	return "columns: " + strings.Join(parts, ", ")
}

// Details renders every change, one per line.
func (c *Changeset) Details() string {
	var sb strings.Builder
	for _, col := range c.Added {
		fmt.Fprintf(&sb, "+ %s\n", col.ColumnName)
	}
	for _, u := range c.Updated {
		for _, ch := range u.Changes {
			fmt.Fprintf(&sb, "~ %s.%s: %q -> %q\n", u.Column, ch.Path, ch.OldValue, ch.NewValue)
		}
	}
	for _, col := range c.Removed {
		fmt.Fprintf(&sb, "- %s\n", col.ColumnName)
	}
	return sb.String()
}

func (c *Changeset) summarize() {
	fields := 0
	for _, u := range c.Updated {
		fields += len(u.Changes)
	}
	c.Summary = ChangesetSummary{
		ColumnsAdded:   len(c.Added),
		ColumnsUpdated: len(c.Updated),
		ColumnsRemoved: len(c.Removed),
		FieldChanges:   fields,
		TotalChanges:   len(c.Added) + len(c.Updated) + len(c.Removed),
	}
}
