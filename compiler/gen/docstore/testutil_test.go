package docstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/compiler/gen"
	"github.com/syssam/relgen/schema"
	"github.com/syssam/relgen/schema/field"
)

// newTestGraph plans User{name, age, pets} and Pet{name, owner}, where
// User.pets is an eager many link and Pet.owner its lazy reverse.
func newTestGraph(t *testing.T, opts ...gen.Option) *gen.Graph {
	t.Helper()
	m := schema.NewManager()
	user, err := m.RegisterClass("User",
		schema.Scalar("name", field.TypeString),
		schema.Scalar("age", field.TypeInt),
	)
	require.NoError(t, err)
	pet, err := m.RegisterClass("Pet",
		schema.Scalar("name", field.TypeString),
		schema.Scalar("born", field.TypeTime),
	)
	require.NoError(t, err)
	require.NoError(t, m.RegisterRelation(schema.ForClass(user).LinksMany("pets", pet).ReverseOne("owner").BuildPrefetch()))

	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	g, err := gen.NewGraph(c, m)
	require.NoError(t, err)
	return g
}

// newTestHelper returns a generator over the test graph writing to a
// temporary package named model.
func newTestHelper(t *testing.T) (*gen.JenniferGenerator, *gen.Graph) {
	t.Helper()
	g := newTestGraph(t, gen.WithPackage("example.com/app/model"))
	return gen.NewJenniferGenerator(g, t.TempDir()), g
}

func mustType(t *testing.T, g *gen.Graph, name string) *gen.Type {
	t.Helper()
	typ, ok := g.Type(name)
	require.True(t, ok)
	return typ
}
