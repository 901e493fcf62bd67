package schema

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"regexp"
	"slices"
	"strings"

	"github.com/syssam/relgen/schema/field"
)

var (
	classNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	fieldNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// reservedFields are field names taken by the generated identity.
var reservedFields = map[string]struct{}{
	"id": {},
}

// Manager owns the class registry of a schema. Classes live in an arena
// indexed by their ClassID; relations append link fields in place.
//
// A Manager is not safe for concurrent use. It is meant to be populated once,
// during schema declaration, and then handed to the code generator.
type Manager struct {
	classes []*Class
	byName  map[string]ClassID
	errs    []error
}

// NewManager returns an empty schema manager.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]ClassID)}
}

// RegisterClass registers a class with the given scalar fields and returns
// its handle. Class names must be exported Go identifiers ("User",
// "OrderItem"); field names must be snake_case identifiers.
func (m *Manager) RegisterClass(name string, fields ...Field) (ClassID, error) {
	if !classNameRe.MatchString(name) {
		return ClassID{}, m.fail(newError(name, "", ErrInvalidName, "class names must match "+classNameRe.String()))
	}
	if _, ok := m.byName[name]; ok {
		return ClassID{}, m.fail(newError(name, "", ErrDuplicateClass, ""))
	}
	c := &Class{
		id:    ClassID{n: len(m.classes) + 1},
		name:  name,
		index: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.IsLink() {
			return ClassID{}, m.fail(newError(name, f.Name, ErrInvalidType, "link fields are declared through relations"))
		}
		if err := checkScalar(c, f); err != nil {
			return ClassID{}, m.fail(err)
		}
		c.add(f)
	}
	m.classes = append(m.classes, c)
	m.byName[name] = c.id
	return c.id, nil
}

// AddScalarField appends a scalar field to a registered class.
func (m *Manager) AddScalarField(id ClassID, name string, typ field.Type) error {
	c, err := m.lookup(id)
	if err != nil {
		return m.fail(newError("", name, ErrUnknownClass, err.Error()))
	}
	f := Scalar(name, typ)
	if err := checkScalar(c, f); err != nil {
		return m.fail(err)
	}
	c.add(f)
	return nil
}

// RegisterRelation applies the relation by synthesizing one link field on
// each participant:
//
//   - on the left class, a field named after the left end, of the left
//     cardinality, targeting the right class and carrying the relation's
//     prefetch flag;
//   - on the right class, a field named after the right end, of the right
//     cardinality, targeting the left class, never prefetched.
//
// The participants must be distinct classes. Both participants and field
// names are validated before any field is added, so a failed application
// leaves the registry unchanged.
func (m *Manager) RegisterRelation(r Relation) error {
	left, err := m.lookup(r.left.Class)
	if err != nil {
		return m.fail(newError("", r.left.Name, ErrUnknownClass, "left end: "+err.Error()))
	}
	right, err := m.lookup(r.right.Class)
	if err != nil {
		return m.fail(newError(left.name, r.right.Name, ErrUnknownClass, "right end: "+err.Error()))
	}
	if left == right {
		return m.fail(newError(left.name, r.left.Name, ErrSelfRelation, "both ends of a relation must be distinct classes"))
	}
	lf := Field{Name: r.left.Name, Kind: r.left.Cardinality.kind(), Target: right.id, Prefetch: r.prefetch}
	rf := Field{Name: r.right.Name, Kind: r.right.Cardinality.kind(), Target: left.id}
	if err := checkName(left, lf.Name); err != nil {
		return m.fail(err)
	}
	if err := checkName(right, rf.Name); err != nil {
		return m.fail(err)
	}
	left.add(lf)
	right.add(rf)
	return nil
}

// ApplyRelation is an alias of RegisterRelation.
func (m *Manager) ApplyRelation(r Relation) error {
	return m.RegisterRelation(r)
}

// Class returns the class registered under the given handle.
func (m *Manager) Class(id ClassID) (*Class, bool) {
	c, err := m.lookup(id)
	return c, err == nil
}

// Lookup returns the handle of the class with the given name.
func (m *Manager) Lookup(name string) (ClassID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// Classes returns all classes in registration order.
func (m *Manager) Classes() []*Class {
	return slices.Clone(m.classes)
}

// Err returns all declaration errors recorded by the manager, joined, or
// nil if the schema is valid. Errors are recorded even when the caller
// ignored the error returned at declaration time.
func (m *Manager) Err() error {
	return errors.Join(m.errs...)
}

// CollectionIdentity returns the storage collection token of the class: the
// hex SHA-256 of its name and its fields sorted by name, each field encoded
// as (name, kind, scalar type or target class name). The prefetch flag is not
// part of the shape since it does not change what is stored.
//
// The token must be computed after all relations were applied.
func (m *Manager) CollectionIdentity(id ClassID) (string, error) {
	c, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	writeString(h, c.name)
	fields := c.Fields()
	slices.SortFunc(fields, func(a, b Field) int { return strings.Compare(a.Name, b.Name) })
	writeUvarint(h, uint64(len(fields)))
	for _, f := range fields {
		writeString(h, f.Name)
		writeString(h, f.Kind.String())
		if f.IsLink() {
			writeString(h, m.classes[f.Target.index()].name)
		} else {
			writeString(h, f.Type.String())
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (m *Manager) lookup(id ClassID) (*Class, error) {
	if !id.Valid() || id.index() >= len(m.classes) {
		return nil, fmt.Errorf("class handle %d is not registered", id.n)
	}
	return m.classes[id.index()], nil
}

func (m *Manager) fail(err error) error {
	m.errs = append(m.errs, err)
	return err
}

func checkScalar(c *Class, f Field) error {
	if !f.Type.Valid() {
		return newError(c.name, f.Name, ErrInvalidType, "")
	}
	return checkName(c, f.Name)
}

func checkName(c *Class, name string) error {
	switch {
	case !fieldNameRe.MatchString(name):
		return newError(c.name, name, ErrInvalidName, "field names must match "+fieldNameRe.String())
	case isReserved(name):
		return newError(c.name, name, ErrReservedField, "")
	case c.has(name):
		return newError(c.name, name, ErrDuplicateField, "")
	}
	return nil
}

func isReserved(name string) bool {
	_, ok := reservedFields[name]
	return ok
}

// writeString writes a length-prefixed string, so that adjacent values
// cannot be confused ("ab"+"c" vs "a"+"bc").
func writeString(h hash.Hash, s string) {
	writeUvarint(h, uint64(len(s)))
	h.Write([]byte(s))
}

func writeUvarint(h hash.Hash, v uint64) {
	h.Write(binary.AppendUvarint(nil, v))
}
