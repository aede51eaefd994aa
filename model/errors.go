package model

import "errors"

// ValidationError marks bad user input: a missing field, an
// unparseable number or date, or a business-rule violation such as
// insufficient stock. Nothing has been written when one is returned;
// the caller keeps the form state and lets the user correct it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalid builds a ValidationError with the given reason.
func Invalid(reason string) error { return &ValidationError{Reason: reason} }

// StorageError wraps a persistence failure. The surrounding database
// transaction has been rolled back; no partial state survives.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage error: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// ErrNotFound is returned when an id does not match any row.
var ErrNotFound = errors.New("not found")
