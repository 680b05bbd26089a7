package forms

import (
	"encoding/json"
	"fmt"

	"github.com/agentstation/zonemeta/pkg/errors"
)

// ColumnStructure is one column of the table-structure form.
// ColumnName is the identity key within a table.
type ColumnStructure struct {
	ColumnName string
	DataType   string

	// Attributes holds every other key of the column object, untouched.
	Attributes map[string]json.RawMessage
}

// MarshalJSON writes the column with its opaque attributes.
func (c ColumnStructure) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.object())
}

// UnmarshalJSON reads a column, keeping unknown keys as attributes.
func (c *ColumnStructure) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out ColumnStructure
	if err := takeString(raw, KeyColumnName, &out.ColumnName); err != nil {
		return err
	}
	if err := takeString(raw, KeyDataType, &out.DataType); err != nil {
		return err
	}
	if len(raw) > 0 {
		out.Attributes = raw
	}
	*c = out
	return nil
}

// Clone returns a deep copy of the column.
func (c ColumnStructure) Clone() ColumnStructure {
	c.Attributes = cloneRaw(c.Attributes)
	return c
}

func (c ColumnStructure) object() map[string]json.RawMessage {
	obj := cloneRaw(c.Attributes)
	if obj == nil {
		obj = make(map[string]json.RawMessage, 2)
	}
	obj[KeyColumnName] = mustString(c.ColumnName)
	obj[KeyDataType] = mustString(c.DataType)
	return obj
}

// TableDocument is the decoded content of the table-structure form.
// Column order is catalog-defined and preserved.
type TableDocument struct {
	Columns []ColumnStructure

	// Attributes holds every other top-level key (tableName, tableArn, ...).
	Attributes map[string]json.RawMessage
}

// DecodeTableDocument parses the serialized content of the table form.
func DecodeTableDocument(content string) (TableDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return TableDocument{}, errors.WrapParse("json", TableForm.Name, err)
	}
	if raw == nil {
		return TableDocument{}, errors.NewParseError("json", TableForm.Name, "content is not an object", nil)
	}

	var doc TableDocument
	if cols, ok := raw[KeyColumns]; ok {
		if err := json.Unmarshal(cols, &doc.Columns); err != nil {
			return TableDocument{}, errors.WrapParse("json", TableForm.Name, err)
		}
		delete(raw, KeyColumns)
	}
	if len(raw) > 0 {
		doc.Attributes = raw
	}
	return doc, nil
}

// Encode serializes the document back into form content.
func (d TableDocument) Encode() (string, error) {
	obj := cloneRaw(d.Attributes)
	if obj == nil {
		obj = make(map[string]json.RawMessage, 1)
	}
	columns := d.Columns
	if columns == nil {
		columns = []ColumnStructure{}
	}
	encoded, err := json.Marshal(columns)
	if err != nil {
		return "", err
	}
	obj[KeyColumns] = encoded

	out, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Validate checks that every column has a name and names are unique.
func (d TableDocument) Validate() error {
	seen := make(map[string]struct{}, len(d.Columns))
	for i, col := range d.Columns {
		if col.ColumnName == "" {
			return errors.NewValidationError(KeyColumnName, i, fmt.Sprintf("column %d has no name", i))
		}
		if _, dup := seen[col.ColumnName]; dup {
			return errors.NewValidationError(KeyColumnName, col.ColumnName, "duplicate column name "+col.ColumnName)
		}
		seen[col.ColumnName] = struct{}{}
	}
	return nil
}

// ColumnNames returns the column names in table order.
func (d TableDocument) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.ColumnName
	}
	return names
}
