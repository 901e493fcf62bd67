package gen

import "fmt"

// ShapeKind identifies one of the four type shapes generated per class.
type ShapeKind uint8

// Shapes generated for every class.
const (
	// ShapeIdentity is the typed reference to a stored row (UserID).
	ShapeIdentity ShapeKind = iota + 1
	// ShapeView is the materialized, read-side value (User).
	ShapeView
	// ShapePayload is the write-side value used to create rows (UserCreate).
	ShapePayload
	// ShapeWire is the persisted encoding of a row (userWire).
	ShapeWire
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeIdentity:
		return "identity"
	case ShapeView:
		return "view"
	case ShapePayload:
		return "payload"
	case ShapeWire:
		return "wire"
	default:
		return fmt.Sprintf("ShapeKind(%d)", k)
	}
}

// Repr is the representation of a field within a shape.
type Repr uint8

// Field representations.
const (
	ReprScalar       Repr = iota + 1 // the primitive Go type
	ReprIdentity                     // PetID
	ReprIdentityList                 // []PetID
	ReprView                         // *Pet
	ReprViewList                     // []*Pet
	ReprLink                         // relgen.Link[PetID, *PetCreate]
	ReprLinkList                     // []relgen.Link[PetID, *PetCreate]
	ReprRef                          // relgen.Ref
	ReprRefList                      // []relgen.Ref
)

var reprNames = [...]string{
	ReprScalar:       "scalar",
	ReprIdentity:     "identity",
	ReprIdentityList: "identity_list",
	ReprView:         "view",
	ReprViewList:     "view_list",
	ReprLink:         "link",
	ReprLinkList:     "link_list",
	ReprRef:          "ref",
	ReprRefList:      "ref_list",
}

// String returns the representation name.
func (r Repr) String() string {
	if int(r) < len(reprNames) && reprNames[r] != "" {
		return reprNames[r]
	}
	return fmt.Sprintf("Repr(%d)", r)
}

// Member is one field of a shape together with its representation.
type Member struct {
	Field *Field
	Repr  Repr
}

// Shape is one of the generated struct types of a class.
type Shape struct {
	Kind    ShapeKind
	Name    string
	Members []Member
}

// OpKind identifies a generated operation.
type OpKind uint8

// Operations generated for every class.
const (
	OpCreate OpKind = iota + 1
	OpCreateAndFetch
	OpUpdate
	OpFetch
	OpCollectionIdentity
)

// String returns the operation method name.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "Create"
	case OpCreateAndFetch:
		return "CreateAndFetch"
	case OpUpdate:
		return "Update"
	case OpFetch:
		return "Fetch"
	case OpCollectionIdentity:
		return "CollectionIdentity"
	default:
		return fmt.Sprintf("OpKind(%d)", k)
	}
}

// Receiver returns the shape the operation is a method of.
func (k OpKind) Receiver() ShapeKind {
	switch k {
	case OpCreate, OpCreateAndFetch:
		return ShapePayload
	case OpUpdate:
		return ShapeView
	default:
		return ShapeIdentity
	}
}

// StepKind identifies one step of an operation.
type StepKind uint8

// Operation steps. Steps that carry a Field act on that field only.
const (
	// StepCascadeOne creates the inline target of a single link and
	// replaces it in place by a reference to the created row.
	StepCascadeOne StepKind = iota + 1
	// StepCascadeMany does StepCascadeOne for every element of a many link.
	StepCascadeMany
	// StepEncode converts the payload into the wire shape.
	StepEncode
	// StepInsert persists the wire shape under a fresh key.
	StepInsert
	// StepCreate runs the Create operation.
	StepCreate
	// StepRefetch fetches the created row; an absent row is an error.
	StepRefetch
	// StepToPayload converts the view into a payload of existing links.
	StepToPayload
	// StepOverwrite replaces the stored row, only if it exists.
	StepOverwrite
	// StepSelect reads and decodes the wire shape.
	StepSelect
	// StepLazyOne converts a single reference into an identity.
	StepLazyOne
	// StepLazyMany converts a reference list into identities.
	StepLazyMany
	// StepEagerOne fetches the target of a single link; an absent target
	// makes the whole fetch absent.
	StepEagerOne
	// StepEagerMany fetches all targets of a many link concurrently,
	// preserving order and dropping absent targets.
	StepEagerMany
	// StepAssemble builds the view from the decoded row and resolved links.
	StepAssemble
	// StepConstant returns the collection token.
	StepConstant
)

var stepNames = [...]string{
	StepCascadeOne:  "cascade_one",
	StepCascadeMany: "cascade_many",
	StepEncode:      "encode",
	StepInsert:      "insert",
	StepCreate:      "create",
	StepRefetch:     "refetch",
	StepToPayload:   "to_payload",
	StepOverwrite:   "overwrite",
	StepSelect:      "select",
	StepLazyOne:     "lazy_one",
	StepLazyMany:    "lazy_many",
	StepEagerOne:    "eager_one",
	StepEagerMany:   "eager_many",
	StepAssemble:    "assemble",
	StepConstant:    "constant",
}

// String returns the step name.
func (k StepKind) String() string {
	if int(k) < len(stepNames) && stepNames[k] != "" {
		return stepNames[k]
	}
	return fmt.Sprintf("StepKind(%d)", k)
}

// Step is one step of an operation.
type Step struct {
	Kind  StepKind
	Field *Field // nil for steps acting on the whole row
}

// String returns the step in the form kind or kind(field).
func (s Step) String() string {
	if s.Field == nil {
		return s.Kind.String()
	}
	return s.Kind.String() + "(" + s.Field.Name + ")"
}

// Op is a generated operation as an ordered list of steps.
type Op struct {
	Kind  OpKind
	Steps []Step
}

// Name returns the generated method name.
func (o *Op) Name() string { return o.Kind.String() }

// planOps derives the step lists of all operations of t.
func planOps(t *Type) []*Op {
	links := t.Links()

	create := &Op{Kind: OpCreate}
	for _, f := range links {
		kind := StepCascadeOne
		if f.Many() {
			kind = StepCascadeMany
		}
		create.Steps = append(create.Steps, Step{Kind: kind, Field: f})
	}
	create.Steps = append(create.Steps, Step{Kind: StepEncode}, Step{Kind: StepInsert})

	createFetch := &Op{Kind: OpCreateAndFetch, Steps: []Step{
		{Kind: StepCreate},
		{Kind: StepRefetch},
	}}

	update := &Op{Kind: OpUpdate, Steps: []Step{
		{Kind: StepToPayload},
		{Kind: StepEncode},
		{Kind: StepOverwrite},
	}}

	fetch := &Op{Kind: OpFetch, Steps: []Step{{Kind: StepSelect}}}
	for _, f := range links {
		var kind StepKind
		switch {
		case f.Eager() && f.Many():
			kind = StepEagerMany
		case f.Eager():
			kind = StepEagerOne
		case f.Many():
			kind = StepLazyMany
		default:
			kind = StepLazyOne
		}
		fetch.Steps = append(fetch.Steps, Step{Kind: kind, Field: f})
	}
	fetch.Steps = append(fetch.Steps, Step{Kind: StepAssemble})

	ident := &Op{Kind: OpCollectionIdentity, Steps: []Step{{Kind: StepConstant}}}

	return []*Op{create, createFetch, update, fetch, ident}
}

// planShapes derives the four shapes of t.
func planShapes(t *Type) (identity, view, payload, wire Shape) {
	identity = Shape{Kind: ShapeIdentity, Name: t.IdentityName()}
	view = Shape{Kind: ShapeView, Name: t.ViewName()}
	payload = Shape{Kind: ShapePayload, Name: t.PayloadName()}
	wire = Shape{Kind: ShapeWire, Name: t.WireName()}
	for _, f := range t.Fields {
		view.Members = append(view.Members, Member{Field: f, Repr: f.Repr(ShapeView)})
		payload.Members = append(payload.Members, Member{Field: f, Repr: f.Repr(ShapePayload)})
		wire.Members = append(wire.Members, Member{Field: f, Repr: f.Repr(ShapeWire)})
	}
	return identity, view, payload, wire
}
