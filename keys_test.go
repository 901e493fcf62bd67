package relgen_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/examples/petstore/model"
	"github.com/syssam/relgen/store/memstore"
)

func TestUUIDKeys(t *testing.T) {
	a, b := relgen.UUIDKeys(), relgen.UUIDKeys()
	assert.NotEqual(t, a, b)
	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestULIDKeys(t *testing.T) {
	keys := relgen.ULIDKeys()
	prev := keys()
	_, err := ulid.ParseStrict(prev)
	require.NoError(t, err)
	for range 100 {
		next := keys()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestMintKey(t *testing.T) {
	t.Cleanup(func() { relgen.SetKeyFunc(nil) })

	relgen.SetKeyFunc(func() string { return "fixed" })
	assert.Equal(t, "fixed", relgen.MintKey(memstore.New(), model.UserCollection))

	s := &mintingStore{Store: memstore.New()}
	assert.Equal(t, model.UserCollection[:4]+"-1", relgen.MintKey(s, model.UserCollection))

	relgen.SetKeyFunc(nil)
	_, err := uuid.Parse(relgen.MintKey(memstore.New(), model.UserCollection))
	assert.NoError(t, err)
}
