// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import "fmt"

// NotFoundError reports a point operation against an unknown LocalID.
type NotFoundError struct {
	LocalID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("paper %d not found", e.LocalID)
}

// ValidationError reports an update payload touching a field that callers
// may not write: derived annotation fields, identity fields, or fields
// that do not exist. Rejected updates apply nothing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid update field %q: %s", e.Field, e.Reason)
}
