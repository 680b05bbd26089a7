package constants_test

import (
	"fmt"
	"time"

	"github.com/agentstation/zonemeta/pkg/constants"
)

// Example shows the form identifiers written on every revision
func Example() {
	fmt.Println(constants.TableFormName, constants.TableFormType)
	fmt.Println(constants.MetadataFormName, constants.MetadataFormType)
	// Output:
	// GlueTableForm amazon.datazone.GlueTableFormType
	// ColumnBusinessMetadataForm amazon.datazone.ColumnBusinessMetadataFormType
}

// Example_revisionLabel demonstrates the revision label timestamp format
func Example_revisionLabel() {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	fmt.Printf("%s - %s\n", constants.DefaultRevisionPrefix, at.Format(constants.RevisionTimeFormat))
	// Output: Made by zonemeta - 2025-03-04 05:06:07
}
