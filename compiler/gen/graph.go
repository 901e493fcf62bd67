package gen

import (
	"fmt"

	"github.com/syssam/relgen/schema"
)

// Graph holds the generation plans of all classes of a schema.
type Graph struct {
	*Config
	// Nodes are the class plans, in registration order.
	Nodes []*Type
	byID  map[schema.ClassID]*Type
}

// NewGraph plans every class of the manager. It must be called after all
// relations were applied: collection tokens are derived from the final class
// shapes. A manager that recorded declaration errors is refused, so nothing
// is generated from an invalid schema.
func NewGraph(c *Config, m *schema.Manager) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if m == nil {
		return nil, NewSchemaError("", "", "schema manager cannot be nil", nil)
	}
	if err := m.Err(); err != nil {
		return nil, NewSchemaError("", "", "schema has declaration errors", err)
	}
	g := &Graph{Config: c, byID: make(map[schema.ClassID]*Type)}
	for _, class := range m.Classes() {
		collection, err := m.CollectionIdentity(class.ID())
		if err != nil {
			return nil, NewSchemaError(class.Name(), "", "collection identity", err)
		}
		t, err := newType(c, class, collection)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, t)
		g.byID[class.ID()] = t
	}
	if err := g.resolve(); err != nil {
		return nil, err
	}
	if err := g.checkNames(); err != nil {
		return nil, err
	}
	for _, t := range g.Nodes {
		t.plan()
	}
	return g, nil
}

// Type returns the plan of the class with the given name.
func (g *Graph) Type(name string) (*Type, bool) {
	for _, t := range g.Nodes {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Gen generates the assets of the graph with the given base generator,
// wrapped by the configured hooks.
func (g *Graph) Gen(base Generator) error {
	gen := base
	for i := len(g.Hooks) - 1; i >= 0; i-- {
		gen = g.Hooks[i](gen)
	}
	return gen.Generate(g)
}

// resolve sets the target of every link field.
func (g *Graph) resolve() error {
	for _, t := range g.Nodes {
		for _, f := range t.Fields {
			if !f.IsLink() {
				continue
			}
			sf, _ := t.class.Field(f.Name)
			target, ok := g.byID[sf.Target]
			if !ok {
				return NewSchemaError(t.Name, f.Name, "link target is not a registered class", nil)
			}
			f.Target = target
		}
	}
	return nil
}

// checkNames fails if two package level identifiers collide, such as the
// payload of class User and a class named UserCreate.
func (g *Graph) checkNames() error {
	seen := make(map[string]string)
	for _, t := range g.Nodes {
		for _, name := range t.names() {
			if owner, ok := seen[name]; ok {
				return NewSchemaError(t.Name, "", fmt.Sprintf("generated name %s conflicts with class %s", name, owner), nil)
			}
			seen[name] = t.Name
		}
	}
	return nil
}
