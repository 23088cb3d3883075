package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a document does not exist. Focus loads never
// return it; a missing day is an empty day.
var ErrNotFound = errors.New("document not found")

// OpError wraps a failed store operation with its context.
type OpError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(op, collection, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Collection: collection, ID: id, Err: err}
}
