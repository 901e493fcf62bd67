package schema

import (
	"errors"
	"strings"
)

// Sentinel errors for schema declaration failures.
var (
	// ErrUnknownClass indicates a reference to a class that was not registered.
	ErrUnknownClass = errors.New("relgen: unknown class")
	// ErrDuplicateClass indicates two classes registered with the same name.
	ErrDuplicateClass = errors.New("relgen: duplicate class")
	// ErrDuplicateField indicates two fields with the same name on one class.
	ErrDuplicateField = errors.New("relgen: duplicate field")
	// ErrReservedField indicates a field that uses a name reserved by the codegen.
	ErrReservedField = errors.New("relgen: reserved field name")
	// ErrInvalidName indicates a class or field name that is not a valid identifier.
	ErrInvalidName = errors.New("relgen: invalid name")
	// ErrInvalidType indicates a scalar field declared with an invalid type.
	ErrInvalidType = errors.New("relgen: invalid field type")
	// ErrSelfRelation indicates a relation whose two ends are the same class.
	ErrSelfRelation = errors.New("relgen: self relation")
)

// Error describes a schema declaration error. Errors are fatal: a manager
// holding any of them cannot be used for generation.
type Error struct {
	Class   string // Class name, if known.
	Field   string // Field name, if applicable.
	Message string
	Err     error // One of the sentinel errors above.
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("relgen: schema error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(strings.TrimPrefix(e.Err.Error(), "relgen: "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(class, field string, err error, msg string) *Error {
	return &Error{Class: class, Field: field, Err: err, Message: msg}
}

// IsSchemaError reports whether the error is a schema declaration error.
func IsSchemaError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
