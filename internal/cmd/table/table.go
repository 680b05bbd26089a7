// Package table converts zonemeta values into rows for table output.
package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/zonemeta/pkg/differ"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
	pkgsync "github.com/agentstation/zonemeta/pkg/sync"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// descriptionWidth caps descriptions in narrow tables.
const descriptionWidth = 60

var caser = cases.Title(language.English)

// Header turns a snake_case or camelCase key into a table header.
func Header(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return caser.String(b.String())
}

// Columns converts a merged column view to table format. Wide output adds
// the opaque column attributes and does not truncate descriptions.
func Columns(columns []forms.MergedColumn, wide bool) Data {
	headers := []string{
		Header(forms.KeyColumnName),
		Header(forms.KeyDataType),
		Header(forms.KeyBusinessName),
		Header(forms.KeyDescription),
	}
	if wide {
		headers = append(headers, "Attributes")
	}

	rows := make([][]string, 0, len(columns))
	for _, col := range columns {
		description := forms.Value(col.Description)
		if !wide {
			description = truncate(description, descriptionWidth)
		}
		row := []string{
			col.ColumnName,
			dash(col.DataType),
			dash(forms.Value(col.BusinessName)),
			dash(description),
		}
		if wide {
			row = append(row, attributes(col))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// Changes converts a changeset to one row per field change.
func Changes(cs *differ.Changeset) Data {
	data := Data{Headers: []string{"Column", "Field", "Change", "Old", "New"}}
	if cs == nil {
		return data
	}

	for _, col := range cs.Added {
		data.Rows = append(data.Rows, []string{col.ColumnName, "-", string(differ.ChangeTypeAdd), "-", "-"})
	}
	for _, update := range cs.Updated {
		for _, change := range update.Changes {
			data.Rows = append(data.Rows, []string{
				update.Column,
				change.Path,
				string(change.Type),
				dash(truncate(change.OldValue, descriptionWidth)),
				dash(truncate(change.NewValue, descriptionWidth)),
			})
		}
	}
	for _, col := range cs.Removed {
		data.Rows = append(data.Rows, []string{col.ColumnName, "-", string(differ.ChangeTypeRemove), "-", "-"})
	}
	return data
}

// Revisions converts resolved form type revisions to table format.
func Revisions(revisions forms.RevisionMap) Data {
	data := Data{
		Headers:         []string{"Form", "Type", "Revision", "Resolved"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignCenter},
	}
	for _, spec := range forms.KnownForms() {
		_, resolved := revisions.Lookup(spec.Name)
		data.Rows = append(data.Rows, []string{
			spec.Name,
			spec.TypeIdentifier,
			revisions.Get(spec.Name),
			yesNo(resolved),
		})
	}
	return data
}

// Results converts a batch of sync results to one row per asset.
func Results(batch *pkgsync.BatchResult) Data {
	data := Data{
		Headers:         []string{"Asset", "Revision", "Published", "Generated", "Edited", "Changes", "Error"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignCenter, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
	if batch == nil {
		return data
	}

	for _, r := range batch.Results {
		data.Rows = append(data.Rows, []string{
			r.AssetID,
			dash(r.Revision),
			yesNo(r.Published),
			fmt.Sprintf("%d", r.Generated),
			fmt.Sprintf("%d", r.Edited),
			r.Changeset.String(),
			"-",
		})
	}
	for _, err := range batch.Errors {
		asset := "-"
		var syncErr *errors.SyncError
		if errors.As(err, &syncErr) {
			asset = syncErr.Asset
		}
		data.Rows = append(data.Rows, []string{asset, "-", yesNo(false), "-", "-", "-", err.Error()})
	}
	return data
}

func attributes(col forms.MergedColumn) string {
	if len(col.Attributes) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(col.Attributes))
	for k := range col.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+string(col.Attributes[k]))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
