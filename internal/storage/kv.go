package storage

import (
	"database/sql"
	"fmt"
	"sync"
)

// Well-known storage keys. KeyAvatar is a prefix; the full key is
// AvatarKey(user).
const (
	KeyNotes        = "369_archive_notes"
	KeyVolume       = "369_archive_volume"
	KeyCurrentUser  = "currentUser"
	avatarKeySuffix = "_avatar"
)

// AvatarKey returns the storage key for a user's avatar image.
func AvatarKey(user string) string {
	return user + avatarKeySuffix
}

// KV is the persistence contract consumed by the note store and session
// manager. Get reports absence via ok; Set returns an error for logging only,
// callers must not fail their own operation on it.
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// SQLiteStore implements [KV] over a single archive_kv table.
type SQLiteStore struct {
	db *sql.DB
}

var _ KV = (*SQLiteStore)(nil)

// NewSQLiteStore creates a [SQLiteStore] with the given database connection.
// The archive_kv table must exist (see shared.RunMigrations).
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get retrieves the value stored under key, reporting absence via ok.
func (s *SQLiteStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM archive_kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value under key.
func (s *SQLiteStore) Set(key string, value []byte) error {
	query := `
		INSERT INTO archive_kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting an absent key is not an error.
func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM archive_kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// MemoryStore implements [KV] with an in-process map.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ KV = (*MemoryStore)(nil)

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
