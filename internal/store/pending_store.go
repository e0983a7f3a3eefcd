package store

import (
	"path/filepath"
	"sync"

	"clawdlink/internal/domain"
)

const (
	pendingOutFilename = "pending_out.json"
	pendingInFilename  = "pending_in.json"
)

// PendingFileStore persists the two pending-request tables: outgoing keyed
// by peer signing-key hex, incoming keyed by request id.
type PendingFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPendingFileStore returns a PendingFileStore rooted at dir.
func NewPendingFileStore(dir string) *PendingFileStore {
	return &PendingFileStore{dir: dir}
}

// SaveOutgoing records a sent friend request awaiting acceptance.
func (s *PendingFileStore) SaveOutgoing(p domain.PendingOutgoing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingOutFilename)
	m := map[string]domain.PendingOutgoing{}
	_ = readJSON(path, &m)
	m[p.SigningKey.Hex()] = p
	return writeJSON(path, m, 0o600)
}

// GetOutgoing retrieves the outgoing entry for a peer signing-key hex.
func (s *PendingFileStore) GetOutgoing(signingKeyHex string) (domain.PendingOutgoing, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingOutFilename)
	m := map[string]domain.PendingOutgoing{}
	if err := readJSON(path, &m); err != nil {
		return domain.PendingOutgoing{}, false, err
	}
	p, ok := m[signingKeyHex]
	return p, ok, nil
}

// RemoveOutgoing deletes the outgoing entry for a peer signing-key hex.
func (s *PendingFileStore) RemoveOutgoing(signingKeyHex string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingOutFilename)
	m := map[string]domain.PendingOutgoing{}
	if err := readJSON(path, &m); err != nil {
		return err
	}
	delete(m, signingKeyHex)
	return writeJSON(path, m, 0o600)
}

// ListOutgoing returns all outgoing pending entries.
func (s *PendingFileStore) ListOutgoing() ([]domain.PendingOutgoing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingOutFilename)
	m := map[string]domain.PendingOutgoing{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	out := make([]domain.PendingOutgoing, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out, nil
}

// SaveIncoming records a received friend request.
func (s *PendingFileStore) SaveIncoming(p domain.PendingIncoming) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingInFilename)
	m := map[domain.RequestID]domain.PendingIncoming{}
	_ = readJSON(path, &m)
	m[p.ID] = p
	return writeJSON(path, m, 0o600)
}

// GetIncoming retrieves an incoming entry by request id.
func (s *PendingFileStore) GetIncoming(id domain.RequestID) (domain.PendingIncoming, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingInFilename)
	m := map[domain.RequestID]domain.PendingIncoming{}
	if err := readJSON(path, &m); err != nil {
		return domain.PendingIncoming{}, false, err
	}
	p, ok := m[id]
	return p, ok, nil
}

// RemoveIncoming deletes an incoming entry by request id.
func (s *PendingFileStore) RemoveIncoming(id domain.RequestID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingInFilename)
	m := map[domain.RequestID]domain.PendingIncoming{}
	if err := readJSON(path, &m); err != nil {
		return err
	}
	delete(m, id)
	return writeJSON(path, m, 0o600)
}

// ListIncoming returns all incoming pending entries.
func (s *PendingFileStore) ListIncoming() ([]domain.PendingIncoming, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, pendingInFilename)
	m := map[domain.RequestID]domain.PendingIncoming{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}
	out := make([]domain.PendingIncoming, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out, nil
}

// Compile-time assertion that PendingFileStore implements domain.PendingStore.
var _ domain.PendingStore = (*PendingFileStore)(nil)
