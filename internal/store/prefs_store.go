package store

import (
	"path/filepath"
	"sync"

	"clawdlink/internal/domain"
)

const prefsFilename = "preferences.json"

// PrefsFileStore persists the singleton preference profile.
type PrefsFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPrefsFileStore returns a PrefsFileStore rooted at dir.
func NewPrefsFileStore(dir string) *PrefsFileStore {
	return &PrefsFileStore{dir: dir}
}

// SavePreferences replaces the stored profile.
func (s *PrefsFileStore) SavePreferences(p domain.PreferenceProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(filepath.Join(s.dir, prefsFilename), p, 0o600)
}

// LoadPreferences returns the stored profile, or defaults when none exists.
func (s *PrefsFileStore) LoadPreferences() (domain.PreferenceProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, prefsFilename)
	b, err := readFile(path)
	if err != nil {
		return domain.PreferenceProfile{}, err
	}
	if b == nil {
		return DefaultPreferences(), nil
	}
	var p domain.PreferenceProfile
	if err := readJSON(path, &p); err != nil {
		return domain.PreferenceProfile{}, err
	}
	if p.Friends == nil {
		p.Friends = map[string]domain.FriendOverride{}
	}
	return p, nil
}

// DefaultPreferences is the profile used before any configuration call:
// everything delivered immediately.
func DefaultPreferences() domain.PreferenceProfile {
	return domain.PreferenceProfile{
		Friends: map[string]domain.FriendOverride{},
	}
}

// Compile-time assertion that PrefsFileStore implements domain.PrefsStore.
var _ domain.PrefsStore = (*PrefsFileStore)(nil)
