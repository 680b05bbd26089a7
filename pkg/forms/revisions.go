package forms

import (
	"maps"

	"github.com/agentstation/zonemeta/pkg/constants"
)

// RevisionMap maps form names to the current revision of their form type.
// It is resolved once per session and never mutated afterwards, so one
// value can be shared by any number of concurrent pipeline runs.
type RevisionMap struct {
	revisions map[string]string
}

// NewRevisionMap copies m into a new RevisionMap.
func NewRevisionMap(m map[string]string) RevisionMap {
	return RevisionMap{revisions: maps.Clone(m)}
}

// Lookup returns the resolved revision for a form name.
func (r RevisionMap) Lookup(formName string) (string, bool) {
	rev, ok := r.revisions[formName]
	return rev, ok
}

// Get returns the resolved revision for a form name, or "1" when the
// revision could not be resolved.
func (r RevisionMap) Get(formName string) string {
	if rev, ok := r.revisions[formName]; ok && rev != "" {
		return rev
	}
	return constants.DefaultTypeRevision
}

// Len returns the number of resolved entries.
func (r RevisionMap) Len() int {
	return len(r.revisions)
}

// All returns a copy of the resolved entries.
func (r RevisionMap) All() map[string]string {
	out := make(map[string]string, len(r.revisions))
	maps.Copy(out, r.revisions)
	return out
}
