package store

import (
	"path/filepath"
	"sync"

	"clawdlink/internal/domain"
)

const heldFilename = "held.json"

// HeldFileStore queues messages the delivery engine deferred, in arrival
// order. The drain policy lives with the engine; this store only holds.
type HeldFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewHeldFileStore returns a HeldFileStore rooted at dir.
func NewHeldFileStore(dir string) *HeldFileStore {
	return &HeldFileStore{dir: dir}
}

// Enqueue appends a held message.
func (s *HeldFileStore) Enqueue(h domain.HeldMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, heldFilename)
	var q []domain.HeldMessage
	_ = readJSON(path, &q)
	q = append(q, h)
	return writeJSON(path, q, 0o600)
}

// List returns the queue in arrival order.
func (s *HeldFileStore) List() ([]domain.HeldMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var q []domain.HeldMessage
	if err := readJSON(filepath.Join(s.dir, heldFilename), &q); err != nil {
		return nil, err
	}
	return q, nil
}

// Remove deletes the held message with the given id.
func (s *HeldFileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, heldFilename)
	var q []domain.HeldMessage
	if err := readJSON(path, &q); err != nil {
		return err
	}
	out := q[:0]
	for _, h := range q {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return writeJSON(path, out, 0o600)
}

// Compile-time assertion that HeldFileStore implements domain.HeldStore.
var _ domain.HeldStore = (*HeldFileStore)(nil)
