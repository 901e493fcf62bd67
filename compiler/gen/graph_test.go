package gen

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/schema"
	"github.com/syssam/relgen/schema/field"
)

// userPet declares User with an eager many link "pets" to Pet, and the
// lazy reverse link Pet.owner.
func userPet(t *testing.T) (*schema.Manager, schema.ClassID, schema.ClassID) {
	t.Helper()
	m := schema.NewManager()
	user, err := m.RegisterClass("User",
		schema.Scalar("name", field.TypeString),
		schema.Scalar("age", field.TypeInt),
	)
	require.NoError(t, err)
	pet, err := m.RegisterClass("Pet", schema.Scalar("name", field.TypeString))
	require.NoError(t, err)
	require.NoError(t, m.RegisterRelation(schema.ForClass(user).LinksMany("pets", pet).ReverseOne("owner").BuildPrefetch()))
	return m, user, pet
}

func userPetGraph(t *testing.T) *Graph {
	t.Helper()
	m, _, _ := userPet(t)
	g, err := NewGraph(&Config{}, m)
	require.NoError(t, err)
	return g
}

func steps(op *Op) []string {
	return lo.Map(op.Steps, func(s Step, _ int) string { return s.String() })
}

func reprs(s Shape) []Repr {
	return lo.Map(s.Members, func(m Member, _ int) Repr { return m.Repr })
}

func TestNewGraph(t *testing.T) {
	m, user, pet := userPet(t)
	g, err := NewGraph(&Config{}, m)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "User", g.Nodes[0].Name)
	assert.Equal(t, "Pet", g.Nodes[1].Name)

	u, ok := g.Type("User")
	require.True(t, ok)
	p, ok := g.Type("Pet")
	require.True(t, ok)
	_, ok = g.Type("Dog")
	assert.False(t, ok)

	assert.Equal(t, user, u.ClassID())
	assert.Equal(t, pet, p.ClassID())
	collection, err := m.CollectionIdentity(user)
	require.NoError(t, err)
	assert.Equal(t, collection, u.Collection)

	assert.Equal(t, []string{"name", "age", "pets"}, lo.Map(u.Fields, func(f *Field, _ int) string { return f.Name }))
	pets, ok := u.Field("pets")
	require.True(t, ok)
	assert.Same(t, p, pets.Target)
	assert.Same(t, u, pets.Owner())
	assert.True(t, pets.Eager())
	assert.True(t, pets.Many())
	owner, ok := p.Field("owner")
	require.True(t, ok)
	assert.Same(t, u, owner.Target)
	assert.True(t, owner.Lazy())
	assert.False(t, owner.Many())

	assert.Len(t, u.Scalars(), 2)
	assert.Len(t, u.Links(), 1)
	assert.Len(t, u.EagerLinks(), 1)
	assert.Empty(t, p.EagerLinks())
	assert.Equal(t, []*Type{p}, u.RelatedTypes())
}

func TestPlanOps(t *testing.T) {
	g := userPetGraph(t)
	u, _ := g.Type("User")
	p, _ := g.Type("Pet")

	assert.Equal(t, []string{"cascade_many(pets)", "encode", "insert"}, steps(u.Op(OpCreate)))
	assert.Equal(t, []string{"create", "refetch"}, steps(u.Op(OpCreateAndFetch)))
	assert.Equal(t, []string{"to_payload", "encode", "overwrite"}, steps(u.Op(OpUpdate)))
	assert.Equal(t, []string{"select", "eager_many(pets)", "assemble"}, steps(u.Op(OpFetch)))
	assert.Equal(t, []string{"constant"}, steps(u.Op(OpCollectionIdentity)))

	assert.Equal(t, []string{"cascade_one(owner)", "encode", "insert"}, steps(p.Op(OpCreate)))
	assert.Equal(t, []string{"select", "lazy_one(owner)", "assemble"}, steps(p.Op(OpFetch)))

	assert.Equal(t, "CreateAndFetch", u.Op(OpCreateAndFetch).Name())
	assert.Equal(t, ShapePayload, OpCreate.Receiver())
	assert.Equal(t, ShapeView, OpUpdate.Receiver())
	assert.Equal(t, ShapeIdentity, OpFetch.Receiver())
}

func TestPlanShapes(t *testing.T) {
	g := userPetGraph(t)
	u, _ := g.Type("User")
	p, _ := g.Type("Pet")

	assert.Empty(t, u.Identity.Members)
	assert.Equal(t, "UserID", u.Shape(ShapeIdentity).Name)
	assert.Equal(t, []Repr{ReprScalar, ReprScalar, ReprViewList}, reprs(u.View))
	assert.Equal(t, []Repr{ReprScalar, ReprScalar, ReprLinkList}, reprs(u.Payload))
	assert.Equal(t, []Repr{ReprScalar, ReprScalar, ReprRefList}, reprs(u.Shape(ShapeWire)))

	assert.Equal(t, []Repr{ReprScalar, ReprIdentity}, reprs(p.View))
	assert.Equal(t, []Repr{ReprScalar, ReprLink}, reprs(p.Payload))
	assert.Equal(t, []Repr{ReprScalar, ReprRef}, reprs(p.Wire))
}

func TestTypeNames(t *testing.T) {
	g := userPetGraph(t)
	u, _ := g.Type("User")

	assert.Equal(t, "UserID", u.IdentityName())
	assert.Equal(t, "User", u.ViewName())
	assert.Equal(t, "UserCreate", u.PayloadName())
	assert.Equal(t, "userWire", u.WireName())
	assert.Equal(t, "UserLink", u.LinkName())
	assert.Equal(t, "LinkUser", u.LinkFunc())
	assert.Equal(t, "UserCollection", u.CollectionConst())
	assert.Equal(t, "user.go", u.FileName())

	assert.Equal(t, "ui", u.Receiver(ShapeIdentity))
	assert.Equal(t, "u", u.Receiver(ShapeView))
	assert.Equal(t, "uc", u.Receiver(ShapePayload))
	assert.Equal(t, "uw", u.Receiver(ShapeWire))

	pets, _ := u.Field("pets")
	assert.Equal(t, "Pets", pets.StructField())
	assert.Equal(t, "pets", pets.Tag())
	assert.Equal(t, "pets", pets.Local())
	assert.Equal(t, "pet", pets.Var())
}

func TestTypeString(t *testing.T) {
	g := userPetGraph(t)
	u, _ := g.Type("User")
	s := u.String()
	assert.Contains(t, s, "User ("+u.Collection+")")
	assert.Contains(t, s, "view User { name:scalar, age:scalar, pets:view_list }")
	assert.Contains(t, s, "Create: cascade_many(pets) -> encode -> insert")
}

func TestGeneratedLocals(t *testing.T) {
	m := schema.NewManager()
	doctor, err := m.RegisterClass("Doctor")
	require.NoError(t, err)
	okKind, err := m.RegisterClass("OkKind")
	require.NoError(t, err)
	require.NoError(t, m.RegisterRelation(schema.ForClass(doctor).LinksOne("store", okKind).ReverseMany("keys").Build()))
	require.NoError(t, m.RegisterRelation(schema.ForClass(doctor).LinksOne("type", okKind).ReverseMany("d").Build()))
	require.NoError(t, m.RegisterRelation(schema.ForClass(doctor).LinksOne("dc", okKind).ReverseMany("patients").Build()))

	g, err := NewGraph(&Config{}, m)
	require.NoError(t, err)
	d, _ := g.Type("Doctor")
	o, _ := g.Type("OkKind")

	assert.Equal(t, "ok_", o.Receiver(ShapeView))
	assert.Equal(t, "dc", d.Receiver(ShapePayload))

	tests := []struct {
		typ   *Type
		field string
		local string
		v     string
	}{
		{d, "store", "storeValue", "storeItem"},
		{d, "type", "typeValue", "typeItem"},
		{d, "dc", "dcValue", "dcItem"},
		{o, "keys", "keys", "keyItem"},
		{o, "patients", "patients", "patient"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := tt.typ.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.local, f.Local())
			assert.Equal(t, tt.v, f.Var())
		})
	}
}

func TestBuiltinLocals(t *testing.T) {
	m := schema.NewManager()
	car, err := m.RegisterClass("Car")
	require.NoError(t, err)
	brand, err := m.RegisterClass("Brand")
	require.NoError(t, err)
	driver, err := m.RegisterClass("Driver")
	require.NoError(t, err)
	require.NoError(t, m.RegisterRelation(schema.ForClass(car).LinksOne("make", brand).ReverseMany("cars").Build()))
	require.NoError(t, m.RegisterRelation(schema.ForClass(car).LinksMany("drivers", driver).ReverseMany("cars").Build()))
	require.NoError(t, m.RegisterRelation(schema.ForClass(car).LinksOne("nil", driver).ReverseOne("len").BuildPrefetch()))

	g, err := NewGraph(&Config{}, m)
	require.NoError(t, err)
	c, _ := g.Type("Car")
	d, _ := g.Type("Driver")

	tests := []struct {
		typ   *Type
		field string
		local string
	}{
		{c, "make", "makeValue"},
		{c, "drivers", "drivers"},
		{c, "nil", "nilValue"},
		{d, "len", "lenValue"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := tt.typ.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.local, f.Local())
			assert.False(t, isPredeclared(f.Var()))
		})
	}
}

func TestNewGraphErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewGraph(nil, schema.NewManager())
		assert.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("nil manager", func(t *testing.T) {
		_, err := NewGraph(&Config{}, nil)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("declaration errors", func(t *testing.T) {
		m := schema.NewManager()
		_, err := m.RegisterClass("user")
		require.Error(t, err)
		_, err = m.RegisterClass("Pet")
		require.NoError(t, err)

		_, err = NewGraph(&Config{}, m)
		assert.ErrorIs(t, err, ErrInvalidSchema)
		assert.ErrorIs(t, err, schema.ErrInvalidName)
	})

	t.Run("generated name collision", func(t *testing.T) {
		m := schema.NewManager()
		_, err := m.RegisterClass("User")
		require.NoError(t, err)
		_, err = m.RegisterClass("UserCreate")
		require.NoError(t, err)

		_, err = NewGraph(&Config{}, m)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Contains(t, err.Error(), "UserCreate")
	})

	t.Run("generated member collision", func(t *testing.T) {
		m := schema.NewManager()
		_, err := m.RegisterClass("User", schema.Scalar("payload", field.TypeString))
		require.NoError(t, err)

		_, err = NewGraph(&Config{}, m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Payload")
	})

	t.Run("struct field collision", func(t *testing.T) {
		m := schema.NewManager()
		_, err := m.RegisterClass("User",
			schema.Scalar("ab", field.TypeString),
			schema.Scalar("ab_", field.TypeString),
		)
		require.NoError(t, err)

		_, err = NewGraph(&Config{}, m)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("reserved class name", func(t *testing.T) {
		m := schema.NewManager()
		_, err := m.RegisterClass("Store")
		require.NoError(t, err)

		_, err = NewGraph(&Config{}, m)
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})
}

func TestGraphGenHooks(t *testing.T) {
	var calls []string
	hook := func(name string) Hook {
		return func(next Generator) Generator {
			return GenerateFunc(func(g *Graph) error {
				calls = append(calls, name)
				return next.Generate(g)
			})
		}
	}
	g := userPetGraph(t)
	g.Hooks = []Hook{hook("first"), hook("second")}

	err := g.Gen(GenerateFunc(func(*Graph) error {
		calls = append(calls, "base")
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "base"}, calls)

	boom := errors.New("boom")
	err = g.Gen(GenerateFunc(func(*Graph) error { return boom }))
	assert.ErrorIs(t, err, boom)
}
