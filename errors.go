package relgen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a row that must exist does not.
	ErrNotFound = errors.New("relgen: entity not found")

	// ErrUnresolvedLink is returned when an inline link reaches the wire
	// encoder. Create resolves every inline link before encoding, so this
	// indicates a programming fault rather than a storage failure.
	ErrUnresolvedLink = errors.New("relgen: unresolved inline link")
)

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the ID that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("relgen: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("relgen: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the ID that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// StorageError wraps a failure of the store or of the wire codec with the
// operation and row it happened on.
type StorageError struct {
	Op         string // "create", "select", "update", "encode", "decode"
	Collection string
	Key        string // Empty for create before a key is known.
	Err        error
}

// Error returns the error string.
func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("relgen: %s %s/%s: %v", e.Op, shortCollection(e.Collection), e.Key, e.Err)
	}
	return fmt.Sprintf("relgen: %s %s: %v", e.Op, shortCollection(e.Collection), e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError returns a new StorageError.
func NewStorageError(op, collection, key string, err error) *StorageError {
	return &StorageError{Op: op, Collection: collection, Key: key, Err: err}
}

// IsStorageError returns true if the error is a StorageError.
func IsStorageError(err error) bool {
	if err == nil {
		return false
	}
	var e *StorageError
	return errors.As(err, &e)
}

// LinkError reports a link field that could not be converted to a
// reference.
type LinkError struct {
	Field string // Link field name
	Err   error
}

// Error returns the error string.
func (e *LinkError) Error() string {
	return fmt.Sprintf("relgen: link %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *LinkError) Unwrap() error {
	return e.Err
}

// IsLinkError returns true if the error is a LinkError.
func IsLinkError(err error) bool {
	if err == nil {
		return false
	}
	var e *LinkError
	return errors.As(err, &e)
}

// shortCollection abbreviates 64-hex collection tokens in messages.
func shortCollection(c string) string {
	if len(c) > 12 {
		return c[:12]
	}
	return c
}
