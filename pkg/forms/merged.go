package forms

import "encoding/json"

// MergedColumn is a table column carrying its business metadata inline.
// BusinessName and Description are nil when no metadata entry matched;
// they are never defaulted here.
type MergedColumn struct {
	ColumnStructure
	BusinessName *string
	Description  *string
}

// MarshalJSON writes the structural column plus businessName/description when set.
func (m MergedColumn) MarshalJSON() ([]byte, error) {
	obj := m.ColumnStructure.object()
	if m.BusinessName != nil {
		obj[KeyBusinessName] = mustString(*m.BusinessName)
	}
	if m.Description != nil {
		obj[KeyDescription] = mustString(*m.Description)
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reads a joined column; businessName and description are
// lifted out of the attributes.
func (m *MergedColumn) UnmarshalJSON(data []byte) error {
	var col ColumnStructure
	if err := col.UnmarshalJSON(data); err != nil {
		return err
	}
	out := MergedColumn{ColumnStructure: col}
	var err error
	if out.BusinessName, err = takeOptionalString(out.Attributes, KeyBusinessName); err != nil {
		return err
	}
	if out.Description, err = takeOptionalString(out.Attributes, KeyDescription); err != nil {
		return err
	}
	if len(out.Attributes) == 0 {
		out.Attributes = nil
	}
	*m = out
	return nil
}

// MarshalYAML renders the column as a plain map for YAML output.
func (m MergedColumn) MarshalYAML() (any, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// HasBusinessName reports whether a non-empty business name is set.
func (m MergedColumn) HasBusinessName() bool {
	return m.BusinessName != nil && *m.BusinessName != ""
}

// HasDescription reports whether a non-empty description is set.
func (m MergedColumn) HasDescription() bool {
	return m.Description != nil && *m.Description != ""
}

// Clone returns a deep copy of the column.
func (m MergedColumn) Clone() MergedColumn {
	out := MergedColumn{ColumnStructure: m.ColumnStructure.Clone()}
	if m.BusinessName != nil {
		out.BusinessName = String(*m.BusinessName)
	}
	if m.Description != nil {
		out.Description = String(*m.Description)
	}
	return out
}

// CloneColumns deep-copies a merged view.
func CloneColumns(columns []MergedColumn) []MergedColumn {
	if columns == nil {
		return nil
	}
	out := make([]MergedColumn, len(columns))
	for i, c := range columns {
		out[i] = c.Clone()
	}
	return out
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Value returns the string s points to, or "" for nil.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
