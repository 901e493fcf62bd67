package schema

import (
	"fmt"

	"github.com/syssam/relgen/schema/field"
)

// FieldKind discriminates the variants of a Field.
type FieldKind uint8

// Field kinds.
const (
	// KindScalar is a field holding a primitive value.
	KindScalar FieldKind = iota + 1
	// KindLinkSingle is a field linking to exactly one row of another class.
	KindLinkSingle
	// KindLinkMany is a field linking to an ordered list of rows of another class.
	KindLinkMany
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindLinkSingle:
		return "link_single"
	case KindLinkMany:
		return "link_many"
	default:
		return fmt.Sprintf("FieldKind(%d)", k)
	}
}

// Field describes one attribute of a class. Scalar fields carry a Type;
// link fields carry a Target class and a Prefetch flag.
type Field struct {
	Name     string
	Kind     FieldKind
	Type     field.Type
	Target   ClassID
	Prefetch bool
}

// Scalar returns a scalar field descriptor.
func Scalar(name string, typ field.Type) Field {
	return Field{Name: name, Kind: KindScalar, Type: typ}
}

// LinkSingle returns a single-valued link field descriptor. Link fields are
// normally synthesized by [Manager.RegisterRelation].
func LinkSingle(name string, target ClassID, prefetch bool) Field {
	return Field{Name: name, Kind: KindLinkSingle, Target: target, Prefetch: prefetch}
}

// LinkMany returns a multi-valued link field descriptor.
func LinkMany(name string, target ClassID, prefetch bool) Field {
	return Field{Name: name, Kind: KindLinkMany, Target: target, Prefetch: prefetch}
}

// IsLink reports if the field is a relation link.
func (f Field) IsLink() bool {
	return f.Kind == KindLinkSingle || f.Kind == KindLinkMany
}

// Many reports if the field is a multi-valued link.
func (f Field) Many() bool {
	return f.Kind == KindLinkMany
}

// Eager reports if the related entities are embedded on fetch.
func (f Field) Eager() bool {
	return f.IsLink() && f.Prefetch
}
