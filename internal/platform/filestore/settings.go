package filestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/store"
)

// SettingsStore keeps all settings of a user in <dir>/<user id>/settings.json.
type SettingsStore struct {
	dir string
	mu  sync.Mutex
}

// NewSettingsStore creates a SettingsStore rooted at dir.
func NewSettingsStore(dir string) *SettingsStore {
	if dir == "" {
		panic("dir cannot be empty")
	}
	return &SettingsStore{dir: dir}
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get.
func (s *SettingsStore) Get(_ context.Context, userID uuid.UUID, deck string) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(userID)
	if err != nil {
		return domain.Settings{}, err
	}
	settings, ok := all[deck]
	if !ok {
		return domain.Settings{}, store.ErrSettingsNotFound
	}
	return settings, nil
}

// Put implements store.SettingsStore.Put.
func (s *SettingsStore) Put(_ context.Context, userID uuid.UUID, deck string, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(userID)
	if err != nil {
		return err
	}
	all[deck] = settings

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path(userID), data); err != nil {
		return store.NewStoreError("settings", "put", "write failed", err)
	}
	return nil
}

// WithTx returns the store itself; files have no transactions.
func (s *SettingsStore) WithTx(*sql.Tx) store.SettingsStore {
	return s
}

func (s *SettingsStore) path(userID uuid.UUID) string {
	return filepath.Join(s.dir, userID.String(), "settings.json")
}

// read returns the user's settings by deck. A missing or unreadable file
// yields an empty map.
func (s *SettingsStore) read(userID uuid.UUID) (map[string]domain.Settings, error) {
	all := map[string]domain.Settings{}

	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return all, nil
	}
	if err != nil {
		return nil, store.NewStoreError("settings", "get", "read failed", err)
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return map[string]domain.Settings{}, nil
	}
	return all, nil
}
