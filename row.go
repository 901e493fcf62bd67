package relgen

import (
	"context"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode returns the wire encoding of a row.
func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode decodes the wire encoding of a row into v.
func Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// CreateRow encodes wire and stores it in the collection under a fresh key.
// It returns the key the store recorded.
func CreateRow(ctx context.Context, s Store, collection string, wire any) (string, error) {
	content, err := Encode(wire)
	if err != nil {
		return "", NewStorageError("encode", collection, "", err)
	}
	key := MintKey(s, collection)
	ref, err := s.Create(ctx, collection, key, content)
	if err != nil {
		return "", NewStorageError("create", collection, key, err)
	}
	if ref.Key != "" {
		key = ref.Key
	}
	return key, nil
}

// SelectRow reads and decodes the row stored under collection/key. The
// boolean is false if no such row exists.
func SelectRow[W any](ctx context.Context, s Store, collection, key string) (*W, bool, error) {
	content, ok, err := s.Select(ctx, collection, key)
	if err != nil {
		return nil, false, NewStorageError("select", collection, key, err)
	}
	if !ok {
		return nil, false, nil
	}
	w := new(W)
	if err := Decode(content, w); err != nil {
		return nil, false, NewStorageError("decode", collection, key, err)
	}
	return w, true, nil
}

// UpdateRow encodes wire and overwrites the row stored under
// collection/key. The boolean is false, and nothing is written, if no such
// row exists.
func UpdateRow(ctx context.Context, s Store, collection, key string, wire any) (bool, error) {
	content, err := Encode(wire)
	if err != nil {
		return false, NewStorageError("encode", collection, key, err)
	}
	_, ok, err := s.Update(ctx, collection, key, content)
	if err != nil {
		return false, NewStorageError("update", collection, key, err)
	}
	return ok, nil
}
