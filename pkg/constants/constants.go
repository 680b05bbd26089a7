// Package constants provides shared constants used throughout the zonemeta codebase.
// This includes the fixed DataZone form identifiers, generation budgets,
// timeouts and file permissions that should be consistent across the application.
package constants

import "time"

// Form constants identify the two forms zonemeta keeps in sync
const (
	// TableFormName is the form name carrying the table structure
	TableFormName = "GlueTableForm"

	// MetadataFormName is the form name carrying column business metadata
	MetadataFormName = "ColumnBusinessMetadataForm"

	// TableFormType is the form type identifier of the table structure form
	TableFormType = "amazon.datazone.GlueTableFormType"

	// MetadataFormType is the form type identifier of the business metadata form
	MetadataFormType = "amazon.datazone.ColumnBusinessMetadataFormType"

	// DefaultTypeRevision is used when a form type revision could not be resolved
	DefaultTypeRevision = "1"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to generation backends
	DefaultHTTPTimeout = 30 * time.Second

	// GenerationTimeout bounds a single generation call
	GenerationTimeout = 60 * time.Second

	// CommandTimeout is the default per-asset deadline of the sync command
	CommandTimeout = 10 * time.Minute
)

// Generation constants
const (
	// DefaultMaxOutputTokens is the output-length budget for one generation call
	DefaultMaxOutputTokens = 500

	// MaxContextLength is the maximum number of context characters embedded in a prompt
	MaxContextLength = 8000

	// DefaultConcurrency is the default number of assets synced in parallel
	DefaultConcurrency = 4
)

// FilePermissions is the permission of created log files (rw-r--r--)
const FilePermissions = 0644

// Format constants
const (
	// RevisionTimeFormat is the timestamp format embedded in revision labels
	RevisionTimeFormat = "2006-01-02 15:04:05"

	// DefaultRevisionPrefix is the label prefix of revisions created by zonemeta
	DefaultRevisionPrefix = "Made by zonemeta"
)
