package store

import (
	"path/filepath"
	"sync"

	"clawdlink/internal/domain"
)

const (
	seenFilename = "seen.json"

	// seenCap bounds the remembered id window. Polls re-serve at most a
	// relay queue's worth of envelopes, so a modest window is enough.
	seenCap = 512
)

// seenState is the on-disk shape: insertion-ordered ids plus a set view.
type seenState struct {
	Order []string `json:"order"`
}

// SeenFileStore remembers recently processed envelope and request ids so a
// repeated poll does not mutate local state twice.
type SeenFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSeenFileStore returns a SeenFileStore rooted at dir.
func NewSeenFileStore(dir string) *SeenFileStore {
	return &SeenFileStore{dir: dir}
}

// MarkSeen records id and reports whether this was its first sighting.
// Oldest ids are evicted once the window exceeds seenCap.
func (s *SeenFileStore) MarkSeen(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, seenFilename)
	var st seenState
	if err := readJSON(path, &st); err != nil {
		return false, err
	}
	for _, existing := range st.Order {
		if existing == id {
			return false, nil
		}
	}
	st.Order = append(st.Order, id)
	if len(st.Order) > seenCap {
		st.Order = st.Order[len(st.Order)-seenCap:]
	}
	if err := writeJSON(path, st, 0o600); err != nil {
		return false, err
	}
	return true, nil
}

// Compile-time assertion that SeenFileStore implements domain.SeenStore.
var _ domain.SeenStore = (*SeenFileStore)(nil)
