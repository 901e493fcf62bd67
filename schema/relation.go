package schema

// Cardinality is the number of rows one end of a relation links to.
type Cardinality uint8

// Relation end cardinalities.
const (
	One Cardinality = iota + 1
	Many
)

// String returns the cardinality name.
func (c Cardinality) String() string {
	if c == Many {
		return "many"
	}
	return "one"
}

// kind returns the link field kind for the cardinality.
func (c Cardinality) kind() FieldKind {
	if c == Many {
		return KindLinkMany
	}
	return KindLinkSingle
}

// RelationEnd describes the field a relation synthesizes on one class.
type RelationEnd struct {
	Class       ClassID
	Name        string
	Cardinality Cardinality
}

// Relation is a bidirectional link declaration between two classes.
// Relations are values: they are built with [ForClass] and have no effect
// until applied with [Manager.RegisterRelation].
type Relation struct {
	left, right RelationEnd
	prefetch    bool
}

// Left returns the declaring end of the relation.
func (r Relation) Left() RelationEnd { return r.left }

// Right returns the reverse end of the relation.
func (r Relation) Right() RelationEnd { return r.right }

// Prefetch reports if the left end is eagerly resolved on fetch.
func (r Relation) Prefetch() bool { return r.prefetch }

// The builder stages below expose only the next legal step, so a relation
// cannot be built without a target or without a reverse name.

// ClassStage is the first builder stage: the declaring class is fixed.
type ClassStage struct {
	class ClassID
}

// ForClass starts a relation declared on the given class.
func ForClass(id ClassID) ClassStage {
	return ClassStage{class: id}
}

// LinksOne declares a single-valued link named name to the target class.
func (s ClassStage) LinksOne(name string, target ClassID) TargetStage {
	return s.links(name, target, One)
}

// LinksMany declares a multi-valued link named name to the target class.
func (s ClassStage) LinksMany(name string, target ClassID) TargetStage {
	return s.links(name, target, Many)
}

func (s ClassStage) links(name string, target ClassID, c Cardinality) TargetStage {
	return TargetStage{
		left:   RelationEnd{Class: s.class, Name: name, Cardinality: c},
		target: target,
	}
}

// TargetStage is the second builder stage: the left end and target are fixed.
type TargetStage struct {
	left   RelationEnd
	target ClassID
}

// ReverseOne names the single-valued reverse field on the target class.
func (s TargetStage) ReverseOne(name string) ReverseStage {
	return s.reverse(name, One)
}

// ReverseMany names the multi-valued reverse field on the target class.
func (s TargetStage) ReverseMany(name string) ReverseStage {
	return s.reverse(name, Many)
}

func (s TargetStage) reverse(name string, c Cardinality) ReverseStage {
	return ReverseStage{
		left:  s.left,
		right: RelationEnd{Class: s.target, Name: name, Cardinality: c},
	}
}

// ReverseStage is the final builder stage.
type ReverseStage struct {
	left, right RelationEnd
}

// Build returns a relation whose left end holds bare references.
func (s ReverseStage) Build() Relation {
	return Relation{left: s.left, right: s.right}
}

// BuildPrefetch returns a relation whose left end is eagerly resolved.
func (s ReverseStage) BuildPrefetch() Relation {
	return Relation{left: s.left, right: s.right, prefetch: true}
}
