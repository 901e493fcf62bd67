package schema

// ClassID is the handle of a registered class. It is minted by
// [Manager.RegisterClass] and stays valid for the lifetime of the manager.
// The zero value never identifies a class.
type ClassID struct {
	n int // 1-based arena index.
}

// Valid reports if the id was minted by a manager.
func (id ClassID) Valid() bool { return id.n > 0 }

func (id ClassID) index() int { return id.n - 1 }

// Class is a named entity type with an ordered set of fields.
// Classes are mutated only by their manager.
type Class struct {
	id     ClassID
	name   string
	fields []Field
	index  map[string]int
}

// ID returns the class handle.
func (c *Class) ID() ClassID { return c.id }

// Name returns the declared class name.
func (c *Class) Name() string { return c.name }

// Fields returns the fields in declaration order. Link fields synthesized by
// relations follow the scalars, in relation order.
func (c *Class) Fields() []Field {
	fields := make([]Field, len(c.fields))
	copy(fields, c.fields)
	return fields
}

// Field returns the field with the given name.
func (c *Class) Field(name string) (Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

// Links returns the link fields of the class.
func (c *Class) Links() []Field {
	var links []Field
	for _, f := range c.fields {
		if f.IsLink() {
			links = append(links, f)
		}
	}
	return links
}

func (c *Class) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *Class) add(f Field) {
	c.index[f.Name] = len(c.fields)
	c.fields = append(c.fields, f)
}
