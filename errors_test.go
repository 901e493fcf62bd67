package relgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/relgen"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, "relgen: User not found", relgen.NewNotFoundError("User").Error())
		assert.Equal(t, "relgen: User not found (id=k1)", relgen.NewNotFoundErrorWithID("User", "k1").Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := relgen.NewNotFoundError("Pet")
		assert.True(t, errors.Is(err, relgen.ErrNotFound))
		assert.False(t, errors.Is(err, relgen.ErrUnresolvedLink))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := relgen.NewNotFoundErrorWithID("Pet", "k1")
		assert.True(t, relgen.IsNotFound(err))
		assert.True(t, relgen.IsNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.True(t, relgen.IsNotFound(relgen.ErrNotFound))
		assert.False(t, relgen.IsNotFound(errors.New("other")))
		assert.False(t, relgen.IsNotFound(nil))
	})

	t.Run("Accessors", func(t *testing.T) {
		err := relgen.NewNotFoundErrorWithID("Pet", "k1")
		assert.Equal(t, "Pet", err.Label())
		assert.Equal(t, "k1", err.ID())
		assert.Nil(t, relgen.NewNotFoundError("Pet").ID())
	})
}

func TestStorageError(t *testing.T) {
	boom := errors.New("disk full")
	collection := "5f1c3a7e9b2d4c6a8e0f1a3b5c7d9e1f2a4b6c8d0e2f4a6b8c0d2e4f6a8b0c2d"

	tests := []struct {
		name string
		err  *relgen.StorageError
		want string
	}{
		{"with key", relgen.NewStorageError("update", collection, "k1", boom), "relgen: update 5f1c3a7e9b2d/k1: disk full"},
		{"without key", relgen.NewStorageError("encode", collection, "", boom), "relgen: encode 5f1c3a7e9b2d: disk full"},
		{"short collection", relgen.NewStorageError("select", "users", "k1", boom), "relgen: select users/k1: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, boom)
			assert.True(t, relgen.IsStorageError(fmt.Errorf("op: %w", tt.err)))
		})
	}
	assert.False(t, relgen.IsStorageError(boom))
	assert.False(t, relgen.IsStorageError(nil))
}

func TestLinkError(t *testing.T) {
	err := &relgen.LinkError{Field: "owner", Err: relgen.ErrUnresolvedLink}
	assert.Equal(t, `relgen: link "owner": relgen: unresolved inline link`, err.Error())
	assert.ErrorIs(t, err, relgen.ErrUnresolvedLink)
	assert.True(t, relgen.IsLinkError(fmt.Errorf("wrap: %w", err)))
	assert.False(t, relgen.IsLinkError(relgen.ErrUnresolvedLink))
	assert.False(t, relgen.IsLinkError(nil))
}
