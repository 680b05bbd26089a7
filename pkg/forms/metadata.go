package forms

import (
	"encoding/json"

	"github.com/agentstation/zonemeta/pkg/errors"
)

// BusinessMetadataEntry is the business metadata of one column.
// Description may be empty but is always written.
type BusinessMetadataEntry struct {
	ColumnIdentifier string `json:"columnIdentifier" yaml:"columnIdentifier"`
	Name             string `json:"name" yaml:"name"`
	Description      string `json:"description" yaml:"description"`
}

// MetadataDocument is the decoded content of the business metadata form.
// Entries keep the order they were read or produced in.
type MetadataDocument struct {
	Entries []BusinessMetadataEntry

	// Attributes holds every other top-level key.
	Attributes map[string]json.RawMessage
}

// DecodeMetadataDocument parses the serialized content of the metadata form.
func DecodeMetadataDocument(content string) (MetadataDocument, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return MetadataDocument{}, errors.WrapParse("json", MetadataForm.Name, err)
	}
	if raw == nil {
		return MetadataDocument{}, errors.NewParseError("json", MetadataForm.Name, "content is not an object", nil)
	}

	var doc MetadataDocument
	if entries, ok := raw[KeyColumnsBusinessMetadata]; ok {
		if err := json.Unmarshal(entries, &doc.Entries); err != nil {
			return MetadataDocument{}, errors.WrapParse("json", MetadataForm.Name, err)
		}
		delete(raw, KeyColumnsBusinessMetadata)
	}
	if len(raw) > 0 {
		doc.Attributes = raw
	}
	return doc, nil
}

// Encode serializes the document back into form content.
func (d MetadataDocument) Encode() (string, error) {
	obj := cloneRaw(d.Attributes)
	if obj == nil {
		obj = make(map[string]json.RawMessage, 1)
	}
	entries := d.Entries
	if entries == nil {
		entries = []BusinessMetadataEntry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	obj[KeyColumnsBusinessMetadata] = encoded

	out, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Duplicates returns the column identifiers that occur more than once,
// in order of their second occurrence.
func (d MetadataDocument) Duplicates() []string {
	seen := make(map[string]int, len(d.Entries))
	var dups []string
	for _, e := range d.Entries {
		seen[e.ColumnIdentifier]++
		if seen[e.ColumnIdentifier] == 2 {
			dups = append(dups, e.ColumnIdentifier)
		}
	}
	return dups
}
