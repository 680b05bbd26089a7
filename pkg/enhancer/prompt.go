package enhancer

import (
	"fmt"
	"strings"

	"github.com/agentstation/zonemeta/pkg/constants"
)

const promptTemplate = `You are documenting a column of a data-catalog table.

Column name: %s

Context about the table:
%s

Respond with a single JSON object and nothing else. The object must have
exactly two string keys:
  "businessName": a short, human-readable label for the column
  "description": one or two sentences explaining what the column holds

Example: {"businessName": "Customer ID", "description": "Unique key identifying the customer."}`

// BuildPrompt builds the instruction sent to the backend for one column.
// Context longer than constants.MaxContextLength is truncated.
func BuildPrompt(columnName, contextText string) string {
	contextText = strings.TrimSpace(contextText)
	if len(contextText) > constants.MaxContextLength {
		contextText = contextText[:constants.MaxContextLength]
	}
	if contextText == "" {
		contextText = "(none provided)"
	}
	return fmt.Sprintf(promptTemplate, columnName, contextText)
}
