package load

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/syssam/relgen/schema"
	"github.com/syssam/relgen/schema/field"
)

// ErrInvalidRelation is returned for relations whose cardinalities are
// neither "one" nor "many".
var ErrInvalidRelation = errors.New("load: invalid relation")

// Error is a schema file error located at a line.
type Error struct {
	File string
	Line int
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += strconv.Itoa(e.Line)
	}
	if loc == "" {
		return e.Err.Error()
	}
	return loc + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func withFile(path string, err error) error {
	var le *Error
	if errors.As(err, &le) && le.File == "" {
		le.File = path
		return err
	}
	return &Error{File: path, Err: err}
}

// Build registers the classes and applies the relations of the schema on a
// new manager. Every failure is reported, each with its line; the manager
// is returned along with the joined errors so callers can inspect what
// was declared.
func (s *Schema) Build() (*schema.Manager, error) {
	m := schema.NewManager()
	var errs []error
	fail := func(line int, err error) {
		errs = append(errs, &Error{Line: line, Err: err})
	}
	for _, c := range s.Classes {
		fields := make([]schema.Field, 0, len(c.Fields))
		ok := true
		for _, f := range c.Fields {
			typ, err := field.ParseType(f.Type)
			if err != nil {
				fail(f.Line, fmt.Errorf("class %q field %q: %w", c.Name, f.Name, err))
				ok = false
				continue
			}
			fields = append(fields, schema.Scalar(f.Name, typ))
		}
		if !ok {
			continue
		}
		if _, err := m.RegisterClass(c.Name, fields...); err != nil {
			fail(c.Line, err)
		}
	}
	for _, r := range s.Relations {
		rel, err := r.relation(m)
		if err != nil {
			fail(r.Line, err)
			continue
		}
		if err := m.RegisterRelation(rel); err != nil {
			fail(r.Line, err)
		}
	}
	return m, errors.Join(errs...)
}

// relation builds the relation between two registered classes.
func (r *Relation) relation(m *schema.Manager) (schema.Relation, error) {
	if !cardinality(r.Links) {
		return schema.Relation{}, fmt.Errorf("%w %q: links must be one or many, got %q", ErrInvalidRelation, r.Name, r.Links)
	}
	if !cardinality(r.Reverse) {
		return schema.Relation{}, fmt.Errorf("%w %q: reverse must be one or many, got %q", ErrInvalidRelation, r.Name, r.Reverse)
	}
	from, ok := m.Lookup(r.From)
	if !ok {
		return schema.Relation{}, fmt.Errorf("relation %q: %w %q", r.Name, schema.ErrUnknownClass, r.From)
	}
	to, ok := m.Lookup(r.To)
	if !ok {
		return schema.Relation{}, fmt.Errorf("relation %q: %w %q", r.Name, schema.ErrUnknownClass, r.To)
	}
	target := schema.ForClass(from).LinksOne(r.Name, to)
	if r.Links == "many" {
		target = schema.ForClass(from).LinksMany(r.Name, to)
	}
	reverse := target.ReverseOne(r.ReverseName)
	if r.Reverse == "many" {
		reverse = target.ReverseMany(r.ReverseName)
	}
	if r.Prefetch {
		return reverse.BuildPrefetch(), nil
	}
	return reverse.Build(), nil
}

func cardinality(s string) bool {
	return s == "one" || s == "many"
}

// Load reads the schema file at path and builds its manager. Errors carry
// the file name and line.
func Load(path string) (*schema.Manager, error) {
	s, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := s.Build()
	if err != nil {
		var errs []error
		for _, e := range unjoin(err) {
			errs = append(errs, withFile(path, e))
		}
		return nil, errors.Join(errs...)
	}
	return m, nil
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
