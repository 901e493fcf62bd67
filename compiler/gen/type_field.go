package gen

import (
	"github.com/syssam/relgen/schema"
	"github.com/syssam/relgen/schema/field"
)

// Field holds the information of a class field used by the dialects.
type Field struct {
	typ *Type
	// Name is the declared name of the field, also used as its wire key.
	Name string
	// Kind is the field variant.
	Kind schema.FieldKind
	// Type holds the primitive type of a scalar field.
	Type field.Type
	// Target is the class a link field points to.
	Target *Type
	// Prefetch reports if the targets of a link field are embedded on fetch.
	Prefetch bool
}

// StructField returns the struct member of the field in all shapes.
func (f *Field) StructField() string {
	return pascal(f.Name)
}

// Tag returns the wire key of the field.
func (f *Field) Tag() string {
	return f.Name
}

// Var returns the local variable name used when iterating the elements of
// a many link.
func (f *Field) Var() string {
	v := singular(camel(f.Name))
	if f.taken(v) {
		v += "Item"
	}
	return v
}

// Local returns the local variable name holding the converted value of a
// link field in generated method bodies.
func (f *Field) Local() string {
	v := camel(f.Name)
	if f.taken(v) {
		v += "Value"
	}
	return v
}

// taken reports if v is used by generated method bodies of the owner.
func (f *Field) taken(v string) bool {
	if isLocal(v) || isKeyword(v) || isPredeclared(v) {
		return true
	}
	if f.typ == nil {
		return false
	}
	for _, k := range []ShapeKind{ShapeIdentity, ShapeView, ShapePayload, ShapeWire} {
		if v == f.typ.Receiver(k) {
			return true
		}
	}
	return false
}

// IsLink reports if the field is a relation link.
func (f *Field) IsLink() bool {
	return f.Kind == schema.KindLinkSingle || f.Kind == schema.KindLinkMany
}

// Many reports if the field is a multi-valued link.
func (f *Field) Many() bool {
	return f.Kind == schema.KindLinkMany
}

// Eager reports if the field is a link resolved on fetch.
func (f *Field) Eager() bool {
	return f.IsLink() && f.Prefetch
}

// Lazy reports if the field is a link kept as references on fetch.
func (f *Field) Lazy() bool {
	return f.IsLink() && !f.Prefetch
}

// Repr returns the representation of the field in the given shape.
//
//	                 view          payload        wire
//	scalar           T             T              T
//	link one lazy    PetID         Link           Ref
//	link one eager   *Pet          Link           Ref
//	link many lazy   []PetID       []Link         []Ref
//	link many eager  []*Pet        []Link         []Ref
func (f *Field) Repr(s ShapeKind) Repr {
	if !f.IsLink() {
		return ReprScalar
	}
	switch s {
	case ShapeView:
		switch {
		case f.Eager() && f.Many():
			return ReprViewList
		case f.Eager():
			return ReprView
		case f.Many():
			return ReprIdentityList
		default:
			return ReprIdentity
		}
	case ShapePayload:
		if f.Many() {
			return ReprLinkList
		}
		return ReprLink
	case ShapeWire:
		if f.Many() {
			return ReprRefList
		}
		return ReprRef
	}
	return 0
}

// Owner returns the type the field belongs to.
func (f *Field) Owner() *Type {
	return f.typ
}
