package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-hamster/internal/save"
)

// Ensure Store implements save.BlobStore
var _ save.BlobStore = (*Store)(nil)

// LoadBlob implements save.BlobStore.
func (s *Store) LoadBlob(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM saves WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, save.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load save %s: %w", key, err)
	}
	return data, nil
}

// StoreBlob implements save.BlobStore.
func (s *Store) StoreBlob(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot store save %s: %w", key, err)
	}
	return nil
}
