// Package edits loads hand-written business metadata overrides and applies
// them to a merged column view.
//
// An edits file maps column names to the fields to set:
//
//	columns:
//	  cust_id:
//	    businessName: Customer ID
//	    description: Unique customer key
//
// YAML and JSON are accepted; the format follows the file extension.
package edits

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
)

// Edit overrides the business metadata of one column. Nil fields are left alone.
type Edit struct {
	BusinessName *string `json:"businessName,omitempty" yaml:"businessName,omitempty"`
	Description  *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// File is a parsed edits file.
type File struct {
	Columns map[string]Edit `json:"columns" yaml:"columns"`
}

// Len returns the number of edited columns.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Columns)
}

// Load reads and parses an edits file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapResource("read", "edits file", path, err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(data, format, path)
}

// Parse decodes edits in the given format ("yaml" or "json"). name is used in
// error messages only.
func Parse(data []byte, format, name string) (*File, error) {
	var f File
	switch format {
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapParse("json", name, err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.WrapParse("yaml", name, err)
		}
	default:
		return nil, errors.NewValidationError("format", format, "edits format must be yaml or json")
	}
	for column := range f.Columns {
		if strings.TrimSpace(column) == "" {
			return nil, errors.NewValidationError("columns", column, "edits name an empty column")
		}
	}
	return &f, nil
}

// Apply returns a copy of columns with the edits applied. Edits naming a
// column that is not in the view are rejected as a whole.
func Apply(columns []forms.MergedColumn, f *File) ([]forms.MergedColumn, error) {
	out := forms.CloneColumns(columns)
	if f.Len() == 0 {
		return out, nil
	}

	positions := make(map[string]int, len(out))
	for i, col := range out {
		positions[col.ColumnName] = i
	}

	var unknown []string
	for column := range f.Columns {
		if _, ok := positions[column]; !ok {
			unknown = append(unknown, column)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.NewValidationError("columns", unknown, "edits name unknown columns: "+strings.Join(unknown, ", "))
	}

	for column, edit := range f.Columns {
		col := &out[positions[column]]
		if edit.BusinessName != nil {
			col.BusinessName = forms.String(*edit.BusinessName)
		}
		if edit.Description != nil {
			col.Description = forms.String(*edit.Description)
		}
	}
	return out, nil
}
