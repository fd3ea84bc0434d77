package save

import (
	"errors"
	"fmt"
)

// BlobStore persists opaque save blobs by key.
type BlobStore interface {
	// LoadBlob returns ErrNotFound when the key has never been stored.
	LoadBlob(key string) ([]byte, error)
	StoreBlob(key string, data []byte) error
}

// ErrDefaultNotWritten reports that Load fell back to the defaults but could
// not write them back. The returned record is still valid.
var ErrDefaultNotWritten = errors.New("save: default record not written")

// Load reads the record under key. A missing or malformed record yields the
// defaults, which are written back as a fresh record. When the read itself
// fails the returned defaults must not be stored over the unread record.
func Load(store BlobStore, key string) (Record, error) {
	data, err := store.LoadBlob(key)
	switch {
	case errors.Is(err, ErrNotFound):
		return writeDefault(store, key)
	case err != nil:
		return Default(), fmt.Errorf("save: cannot load %q: %w", key, err)
	}

	var r Record
	if err := r.UnmarshalBinary(data); err != nil {
		return writeDefault(store, key)
	}
	return r, nil
}

func writeDefault(store BlobStore, key string) (Record, error) {
	r := Default()
	if err := Store(store, key, r); err != nil {
		return r, fmt.Errorf("%w: %w", ErrDefaultNotWritten, err)
	}
	return r, nil
}

// Store writes the record under key. It is idempotent and safe to retry.
func Store(store BlobStore, key string, r Record) error {
	data, err := r.MarshalBinary()
	if err != nil {
		return fmt.Errorf("save: cannot encode record: %w", err)
	}
	if err := store.StoreBlob(key, data); err != nil {
		return fmt.Errorf("save: cannot store %q: %w", key, err)
	}
	return nil
}

// MemoryStore is an in-process BlobStore.
type MemoryStore struct {
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// LoadBlob implements BlobStore.
func (m *MemoryStore) LoadBlob(key string) ([]byte, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// StoreBlob implements BlobStore.
func (m *MemoryStore) StoreBlob(key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.blobs[key] = buf
	return nil
}
