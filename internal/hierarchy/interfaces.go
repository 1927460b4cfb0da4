// Package hierarchy defines the boundary to the externally owned element
// hierarchy being inspected. A Provider hands out children and attributes for
// opaque element references; it is the only source of truth about the
// inspected program, and everything it reports may be stale a moment later.
package hierarchy

import (
	"errors"
	"fmt"
)

// ElementRef is an opaque handle to one element in the inspected hierarchy.
// Refs are only meaningful to the Provider that issued them.
type ElementRef string

// AttributeSet holds the attributes of one element, fetched in a single
// provider round trip.
type AttributeSet struct {
	Role            string `json:"role"`
	Subrole         string `json:"subrole,omitempty"`
	Title           string `json:"title,omitempty"`
	TypeDescription string `json:"type_description,omitempty"`
	Help            string `json:"help,omitempty"`
	ChildCount      int    `json:"child_count"`
}

// Provider is the external collaborator that walks the inspected hierarchy.
// Calls may block and may fail; they are never made concurrently.
type Provider interface {
	// FetchChildren returns the ordered child references of ref.
	FetchChildren(ref ElementRef) ([]ElementRef, error)

	// FetchAttributes returns the attributes of ref.
	FetchAttributes(ref ElementRef) (AttributeSet, error)

	// Validate checks that root denotes a live element and returns the
	// canonical reference for it. Used once at target-acquisition time.
	Validate(root ElementRef) (ElementRef, error)
}

// ErrElementGone reports that an element no longer exists in the inspected
// hierarchy. The inspected program destroys elements without notice, so any
// fetch can fail this way.
var ErrElementGone = errors.New("element no longer exists")

// ProviderError wraps a provider failure with the operation and reference
// involved.
type ProviderError struct {
	Op  string
	Ref ElementRef
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, string(e.Ref), e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsGone reports whether err indicates a destroyed element.
func IsGone(err error) bool {
	return errors.Is(err, ErrElementGone)
}
