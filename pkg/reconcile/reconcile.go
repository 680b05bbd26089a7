// Package reconcile joins the table-structure form and the business metadata
// form into one column-centric view, and splits an edited view back into the
// two canonical forms.
//
// Merge and Split are pure: no I/O, no shared state. Merging then splitting
// without edits reproduces the table document exactly and the metadata
// document up to defaulting missing descriptions to "".
package reconcile

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides which metadata entry wins when several share a
// column identifier.
type DuplicatePolicy int

const (
	// LastWins keeps the last entry seen for an identifier.
	LastWins DuplicatePolicy = iota
	// FirstWins keeps the first entry seen for an identifier.
	FirstWins
	// RejectDuplicates fails the merge with a ConflictError.
	RejectDuplicates
)

// String returns the configuration name of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last"
	case FirstWins:
		return "first"
	case RejectDuplicates:
		return "reject"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
	}
}

// ParseDuplicatePolicy parses "last", "first" or "reject".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last", "last-wins":
		return LastWins, nil
	case "first", "first-wins":
		return FirstWins, nil
	case "reject":
		return RejectDuplicates, nil
	default:
		return LastWins, fmt.Errorf("invalid duplicate policy %q: must be one of: last, first, reject", s)
	}
}

type options struct {
	duplicates DuplicatePolicy
}

// Option configures Merge.
type Option func(*options)

// WithDuplicatePolicy sets how duplicate metadata identifiers are resolved.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}
