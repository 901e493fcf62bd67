package relgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// KeyFunc returns a fresh row key.
type KeyFunc func() string

// UUIDKeys mints time-ordered UUIDv7 keys.
func UUIDKeys() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ULIDKeys returns a KeyFunc minting monotonic ULIDs. Keys minted by the
// same function within one millisecond are strictly increasing.
func ULIDKeys() KeyFunc {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}
}

var (
	keysMu  sync.RWMutex
	keyFunc KeyFunc = UUIDKeys
)

// SetKeyFunc replaces the package key function used for stores that do not
// implement KeyMinter. A nil f restores UUIDKeys.
func SetKeyFunc(f KeyFunc) {
	if f == nil {
		f = UUIDKeys
	}
	keysMu.Lock()
	keyFunc = f
	keysMu.Unlock()
}

// MintKey returns a fresh key for a row of the collection, asking the store
// first.
func MintKey(s Store, collection string) string {
	if m, ok := s.(KeyMinter); ok {
		return m.MintKey(collection)
	}
	keysMu.RLock()
	f := keyFunc
	keysMu.RUnlock()
	return f()
}
