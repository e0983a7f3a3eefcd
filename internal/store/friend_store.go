package store

import (
	"path/filepath"
	"sync"

	"clawdlink/internal/domain"
)

const friendsFilename = "friends.json"

// FriendFileStore persists connected Friend records to disk, keyed by
// signing-key hex.
type FriendFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFriendFileStore returns a FriendFileStore rooted at dir.
func NewFriendFileStore(dir string) *FriendFileStore {
	return &FriendFileStore{dir: dir}
}

// SaveFriend writes or replaces the record for f's signing key.
func (s *FriendFileStore) SaveFriend(f domain.Friend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, friendsFilename)
	m := map[string]domain.Friend{}
	_ = readJSON(path, &m)
	m[f.SigningKey.Hex()] = f
	return writeJSON(path, m, 0o600)
}

// GetFriend retrieves the record for a signing-key hex.
func (s *FriendFileStore) GetFriend(signingKeyHex string) (domain.Friend, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, friendsFilename)
	m := map[string]domain.Friend{}
	if err := readJSON(path, &m); err != nil {
		return domain.Friend{}, false, err
	}
	f, ok := m[signingKeyHex]
	return f, ok, nil
}

// ListFriends returns all stored Friend records.
func (s *FriendFileStore) ListFriends() ([]domain.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, friendsFilename)
	m := map[string]domain.Friend{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	out := make([]domain.Friend, 0, len(m))
	for _, f := range m {
		out = append(out, f)
	}
	return out, nil
}

// Compile-time assertion that FriendFileStore implements domain.FriendStore.
var _ domain.FriendStore = (*FriendFileStore)(nil)
