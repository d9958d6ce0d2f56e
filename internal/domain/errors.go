package domain

import "fmt"

// ValidationError reports malformed input (missing field, non-positive
// quantity, negative price). It is always raised before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ReferenceError reports a dangling reference to an entity that does not
// exist or is no longer active.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Entity, e.ID)
}

// IndexError reports an out-of-range line item index.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("item index %d out of range (len %d)", e.Index, e.Len)
}

// InvalidTransitionError names both ends of an illegal status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}

// NotFoundError is surfaced by the data layer when a lookup misses.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// TransportError wraps a failed round trip to the backing store. The
// underlying error is preserved for errors.Is/As.
type TransportError struct {
	Op  string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }
