package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/samber/lo"

	"github.com/syssam/relgen/schema"
)

// Type is the generation plan of one class: its fields, the four shapes
// derived from them and the step lists of its operations.
type Type struct {
	*Config
	class *schema.Class
	// Name holds the class name.
	Name string
	// Collection is the storage collection token of the class.
	Collection string
	// Fields holds all fields in declaration order, links last.
	Fields []*Field
	fields map[string]*Field
	// Identity, View, Payload and Wire are the generated struct shapes.
	Identity, View, Payload, Wire Shape
	// Ops holds the generated operations.
	Ops []*Op
}

// ClassID returns the handle of the class the type was planned from.
func (t *Type) ClassID() schema.ClassID {
	return t.class.ID()
}

// Field returns the field with the given name.
func (t *Type) Field(name string) (*Field, bool) {
	f, ok := t.fields[name]
	return f, ok
}

// Scalars returns the scalar fields of the type.
func (t *Type) Scalars() []*Field {
	return lo.Filter(t.Fields, func(f *Field, _ int) bool { return !f.IsLink() })
}

// Links returns the link fields of the type.
func (t *Type) Links() []*Field {
	return lo.Filter(t.Fields, func(f *Field, _ int) bool { return f.IsLink() })
}

// EagerLinks returns the link fields resolved on fetch.
func (t *Type) EagerLinks() []*Field {
	return lo.Filter(t.Fields, func(f *Field, _ int) bool { return f.Eager() })
}

// RelatedTypes returns the distinct types this type links to.
func (t *Type) RelatedTypes() []*Type {
	return lo.Uniq(lo.Map(t.Links(), func(f *Field, _ int) *Type { return f.Target }))
}

// Op returns the operation of the given kind.
func (t *Type) Op(kind OpKind) *Op {
	op, _ := lo.Find(t.Ops, func(o *Op) bool { return o.Kind == kind })
	return op
}

// Shape returns the shape of the given kind.
func (t *Type) Shape(kind ShapeKind) Shape {
	switch kind {
	case ShapeIdentity:
		return t.Identity
	case ShapeView:
		return t.View
	case ShapePayload:
		return t.Payload
	default:
		return t.Wire
	}
}

// IdentityName returns the name of the identity type (UserID).
func (t *Type) IdentityName() string { return t.Name + "ID" }

// ViewName returns the name of the materialized view type (User).
func (t *Type) ViewName() string { return t.Name }

// PayloadName returns the name of the creation payload type (UserCreate).
func (t *Type) PayloadName() string { return t.Name + "Create" }

// WireName returns the name of the unexported wire type (userWire).
func (t *Type) WireName() string { return camel(snake(t.Name)) + "Wire" }

// LinkName returns the name of the link type alias (UserLink).
func (t *Type) LinkName() string { return t.Name + "Link" }

// LinkFunc returns the name of the existing-link constructor (LinkUser).
func (t *Type) LinkFunc() string { return "Link" + t.Name }

// CollectionConst returns the name of the collection token constant
// (UserCollection).
func (t *Type) CollectionConst() string { return t.Name + "Collection" }

// FileName returns the name of the generated file of the type.
func (t *Type) FileName() string { return snake(t.Name) + ".go" }

// Receiver returns the receiver name of the given shape. Receivers never
// shadow the local names used by generated method bodies.
func (t *Type) Receiver(kind ShapeKind) string {
	var name string
	switch kind {
	case ShapeIdentity:
		name = t.IdentityName()
	case ShapeView:
		name = t.ViewName()
	case ShapePayload:
		name = t.PayloadName()
	default:
		name = t.WireName()
	}
	r := receiver(name)
	if isLocal(r) || isPredeclared(r) {
		r += "_"
	}
	return r
}

// globalIdent are the package level identifiers emitted once per package.
var globalIdent = map[string]struct{}{
	"Store":       {},
	"Collections": {},
}

// memberIdent are identifiers of the generated methods and members that
// field struct names may not take.
var memberIdent = map[string]struct{}{
	"ID":             {},
	"Ref":            {},
	"Fetch":          {},
	"Update":         {},
	"Identity":       {},
	"Payload":        {},
	"Create":         {},
	"CreateAndFetch": {},
	"Link":           {},
}

// generatedLocals are the local names used by generated method bodies.
var generatedLocals = map[string]struct{}{
	"ctx": {}, "store": {}, "err": {}, "ok": {}, "wire": {}, "key": {},
	"id": {}, "i": {}, "view": {}, "payload": {},
	"relgen": {}, "context": {}, "time": {}, "uuid": {},
}

func isLocal(s string) bool {
	_, ok := generatedLocals[s]
	return ok
}

// ValidSchemaName will determine if a class name is going to conflict with
// any pre-defined names.
func ValidSchemaName(name string) error {
	if name == "" {
		return errors.New("class name cannot be empty")
	}
	if !token.IsIdentifier(name) || !token.IsExported(name) {
		return fmt.Errorf("class name %q is not an exported Go identifier", name)
	}
	if _, ok := globalIdent[name]; ok {
		return fmt.Errorf("class name conflicts with generated identifier %q", name)
	}
	return nil
}

// newType plans the fields of a class. Link targets are resolved by the
// graph once all types exist.
func newType(c *Config, class *schema.Class, collection string) (*Type, error) {
	if err := ValidSchemaName(class.Name()); err != nil {
		return nil, NewSchemaError(class.Name(), "", "invalid class name", err)
	}
	t := &Type{
		Config:     c,
		class:      class,
		Name:       class.Name(),
		Collection: collection,
		fields:     make(map[string]*Field),
	}
	members := make(map[string]string)
	for _, sf := range class.Fields() {
		f := &Field{
			typ:      t,
			Name:     sf.Name,
			Kind:     sf.Kind,
			Type:     sf.Type,
			Prefetch: sf.Prefetch,
		}
		sn := f.StructField()
		if _, ok := memberIdent[sn]; ok {
			return nil, NewSchemaError(t.Name, f.Name, fmt.Sprintf("struct field %s conflicts with a generated member", sn), nil)
		}
		if prev, ok := members[sn]; ok {
			return nil, NewSchemaError(t.Name, f.Name, fmt.Sprintf("struct field %s conflicts with field %q", sn, prev), nil)
		}
		members[sn] = f.Name
		t.Fields = append(t.Fields, f)
		t.fields[f.Name] = f
	}
	return t, nil
}

// plan derives shapes and operations. It must be called after link targets
// were resolved.
func (t *Type) plan() {
	t.Identity, t.View, t.Payload, t.Wire = planShapes(t)
	t.Ops = planOps(t)
}

// names returns the package level identifiers generated for the type.
func (t *Type) names() []string {
	return []string{
		t.IdentityName(),
		t.ViewName(),
		t.PayloadName(),
		t.WireName(),
		t.LinkName(),
		t.LinkFunc(),
		t.CollectionConst(),
	}
}

// String describes the type plan, one line per shape and operation.
func (t *Type) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", t.Name, t.Collection)
	for _, s := range []Shape{t.Identity, t.View, t.Payload, t.Wire} {
		fmt.Fprintf(&b, "  %s %s {", s.Kind, s.Name)
		for i, m := range s.Members {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %s:%s", m.Field.Name, m.Repr)
		}
		b.WriteString(" }\n")
	}
	for _, op := range t.Ops {
		steps := lo.Map(op.Steps, func(s Step, _ int) string { return s.String() })
		fmt.Fprintf(&b, "  %s: %s\n", op.Name(), strings.Join(steps, " -> "))
	}
	return b.String()
}
