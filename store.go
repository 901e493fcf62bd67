package relgen

import "context"

// Store is a document store holding named collections of key to content
// entries. Content is opaque to the store.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Create stores content under collection/key and returns its reference.
	Create(ctx context.Context, collection, key string, content []byte) (Ref, error)
	// Select returns the content stored under collection/key. The boolean is
	// false if no such entry exists.
	Select(ctx context.Context, collection, key string) ([]byte, bool, error)
	// Update replaces the content stored under collection/key and returns
	// the new content. The boolean is false, and nothing is written, if no
	// such entry exists.
	Update(ctx context.Context, collection, key string, content []byte) ([]byte, bool, error)
}

// KeyMinter is implemented by stores that choose their own keys. Stores
// that do not implement it get keys from the package key function.
type KeyMinter interface {
	MintKey(collection string) string
}

// Ref references one entry of a store.
type Ref struct {
	Collection string `msgpack:"c"`
	Key        string `msgpack:"k"`
}

// String returns the reference as collection/key.
func (r Ref) String() string {
	return r.Collection + "/" + r.Key
}

// IsZero reports if the reference is unset.
func (r Ref) IsZero() bool {
	return r == Ref{}
}

// Identity is implemented by every generated identity type.
type Identity interface {
	// Ref returns the store reference of the identified row.
	Ref() Ref
}
