// Package forms models the two DataZone forms zonemeta keeps in sync: the
// table-structure form (columns and their types) and the column business
// metadata form (business names and descriptions), plus the merged
// column-centric view built from both.
//
// Attributes this package does not own are carried verbatim through
// decode and encode, at document level and at column level.
package forms

import (
	"github.com/agentstation/zonemeta/pkg/constants"
)

// JSON keys owned by zonemeta.
const (
	KeyColumns                 = "columns"
	KeyColumnName              = "columnName"
	KeyDataType                = "dataType"
	KeyBusinessName            = "businessName"
	KeyDescription             = "description"
	KeyColumnsBusinessMetadata = "columnsBusinessMetadata"
)

// FormSpec names a form on an asset and the form type it is an instance of.
type FormSpec struct {
	Name           string
	TypeIdentifier string
}

var (
	// TableForm is the table-structure form.
	TableForm = FormSpec{Name: constants.TableFormName, TypeIdentifier: constants.TableFormType}

	// MetadataForm is the column business metadata form.
	MetadataForm = FormSpec{Name: constants.MetadataFormName, TypeIdentifier: constants.MetadataFormType}
)

// KnownForms returns the forms zonemeta reads and writes, table form first.
func KnownForms() []FormSpec {
	return []FormSpec{TableForm, MetadataForm}
}

// AssetContent is the unit fetched, transformed and written back for one asset.
// It is never persisted locally.
type AssetContent struct {
	AssetID  string
	Revision string
	Table    TableDocument
	Metadata MetadataDocument
}
