package field

import (
	"fmt"
	"strings"
)

// A Type represents a scalar field type.
type Type uint8

// List of scalar types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeBytes
	TypeUUID
	TypeString
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeBytes:   "[]byte",
	TypeUUID:    "uuid.UUID",
	TypeString:  "string",
	TypeInt8:    "int8",
	TypeInt16:   "int16",
	TypeInt32:   "int32",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint:    "uint",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
}

var constNames = [...]string{
	TypeBool:    "TypeBool",
	TypeTime:    "TypeTime",
	TypeBytes:   "TypeBytes",
	TypeUUID:    "TypeUUID",
	TypeString:  "TypeString",
	TypeInt8:    "TypeInt8",
	TypeInt16:   "TypeInt16",
	TypeInt32:   "TypeInt32",
	TypeInt:     "TypeInt",
	TypeInt64:   "TypeInt64",
	TypeUint8:   "TypeUint8",
	TypeUint16:  "TypeUint16",
	TypeUint32:  "TypeUint32",
	TypeUint:    "TypeUint",
	TypeUint64:  "TypeUint64",
	TypeFloat32: "TypeFloat32",
	TypeFloat64: "TypeFloat64",
}

// aliases accepted by ParseType in addition to the Go type names.
var aliases = map[string]Type{
	"time":    TypeTime,
	"bytes":   TypeBytes,
	"uuid":    TypeUUID,
	"boolean": TypeBool,
	"text":    TypeString,
}

// String returns the Go type name of the scalar type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// ConstName returns the constant name of the type. It is used by the codegen
// for describing field types in generated comments and tests.
func (t Type) ConstName() string {
	if !t.Valid() {
		return typeNames[TypeInvalid]
	}
	return constNames[t]
}

// Valid reports if the given type is a known scalar type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t < endTypes
}

// Float reports if the given type is a floating point type.
func (t Type) Float() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t.Numeric() && !t.Float()
}

// PkgPath returns the import path of the package that defines the type,
// or an empty string for builtin types.
func (t Type) PkgPath() string {
	switch t {
	case TypeTime:
		return "time"
	case TypeUUID:
		return "github.com/google/uuid"
	default:
		return ""
	}
}

// ParseType parses a scalar type from its Go type name ("uint16",
// "time.Time") or one of the short aliases ("time", "uuid", "bytes").
// Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if t, ok := aliases[name]; ok {
		return t, nil
	}
	for t := TypeBool; t < endTypes; t++ {
		if strings.ToLower(typeNames[t]) == name {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("field: cannot marshal invalid type %d", t)
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	v, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
