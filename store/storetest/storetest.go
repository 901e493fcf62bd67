// Package storetest checks that a relgen.Store implementation honors the
// store contract shared by all backends.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen"
)

// Collections used by Run. They have the shape of real collection tokens.
const (
	Users = "5f1c3a7e9b2d4c6a8e0f1a3b5c7d9e1f2a4b6c8d0e2f4a6b8c0d2e4f6a8b0c2d"
	Pets  = "a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1"
)

// Run runs the contract against the store returned by newStore. Every
// subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) relgen.Store) {
	t.Run("CreateSelect", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := relgen.UUIDKeys()

		ref, err := s.Create(ctx, Users, key, []byte("ann"))
		require.NoError(t, err)
		assert.Equal(t, Users, ref.Collection)
		require.NotEmpty(t, ref.Key)

		content, ok, err := s.Select(ctx, Users, ref.Key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("ann"), content)
	})

	t.Run("SelectAbsent", func(t *testing.T) {
		s := newStore(t)
		content, ok, err := s.Select(context.Background(), Users, relgen.UUIDKeys())
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, content)
	})

	t.Run("CollectionsAreDisjoint", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := relgen.UUIDKeys()

		_, err := s.Create(ctx, Users, key, []byte("user"))
		require.NoError(t, err)
		_, ok, err := s.Select(ctx, Pets, key)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.Create(ctx, Pets, key, []byte("pet"))
		require.NoError(t, err)
		content, ok, err := s.Select(ctx, Users, key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("user"), content)
	})

	t.Run("Update", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		ref, err := s.Create(ctx, Users, relgen.UUIDKeys(), []byte("v1"))
		require.NoError(t, err)

		content, ok, err := s.Update(ctx, Users, ref.Key, []byte("v2"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("v2"), content)

		content, ok, err = s.Select(ctx, Users, ref.Key)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("v2"), content)
	})

	t.Run("UpdateAbsentDoesNotWrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		key := relgen.UUIDKeys()

		_, ok, err := s.Update(ctx, Users, key, []byte("ghost"))
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.Select(ctx, Users, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ConcurrentCreate", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const n = 16
		keys := make([]string, n)
		var wg sync.WaitGroup
		for i := range n {
			keys[i] = relgen.UUIDKeys()
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.Create(ctx, Pets, keys[i], fmt.Appendf(nil, "pet-%d", i))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		for i, key := range keys {
			content, ok, err := s.Select(ctx, Pets, key)
			require.NoError(t, err)
			require.True(t, ok, key)
			assert.Equal(t, fmt.Sprintf("pet-%d", i), string(content))
		}
	})
}
