package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen"
	"github.com/syssam/relgen/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(*testing.T) relgen.Store { return New() })
}

func TestCopiesContent(t *testing.T) {
	s := New()
	ctx := context.Background()
	buf := []byte("ann")
	_, err := s.Create(ctx, storetest.Users, "k1", buf)
	require.NoError(t, err)
	buf[0] = 'x'

	content, ok, err := s.Select(ctx, storetest.Users, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ann", string(content))
	content[0] = 'y'

	again, _, err := s.Select(ctx, storetest.Users, "k1")
	require.NoError(t, err)
	assert.Equal(t, "ann", string(again))
}

func TestDuplicateKey(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Create(ctx, storetest.Users, "k1", nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, storetest.Users, "k1", nil)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLenCollections(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.Empty(t, s.Collections())

	_, err := s.Create(ctx, storetest.Pets, "k1", nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, storetest.Users, "k1", nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, storetest.Users, "k2", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len(storetest.Users))
	assert.Equal(t, 0, s.Len("unknown"))
	assert.Equal(t, []string{storetest.Users, storetest.Pets}, s.Collections())
}

func TestCanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Create(ctx, storetest.Users, "k1", nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = s.Select(ctx, storetest.Users, "k1")
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = s.Update(ctx, storetest.Users, "k1", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Len(storetest.Users))
}
