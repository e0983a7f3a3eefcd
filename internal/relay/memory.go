package relay

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
)

// MemoryRelay is an in-process implementation of domain.RelayClient with the
// same queue semantics as a real relay server: envelopes and friend requests
// are queued per recipient identity key, ids are relay-assigned, and
// signatures are verified the way the server would verify them.
//
// With AutoAck false, polls re-serve the same queue, which is exactly the
// repeated-delivery behavior callers must deduplicate against.
type MemoryRelay struct {
	mu       sync.Mutex
	messages map[string][]domain.Envelope
	requests map[string][]domain.FriendRequestWire

	// AutoAck drains a recipient's queue after a successful poll/fetch.
	AutoAck bool
	// Down simulates an unreachable relay; every call fails.
	Down bool
}

// NewMemory returns an empty in-process relay that acks on poll.
func NewMemory() *MemoryRelay {
	return &MemoryRelay{
		messages: map[string][]domain.Envelope{},
		requests: map[string][]domain.FriendRequestWire{},
		AutoAck:  true,
	}
}

func (r *MemoryRelay) SendEnvelope(ctx context.Context, from domain.Identity, to domain.Ed25519Public, ciphertext []byte, nonce domain.Nonce) (domain.EnvelopeID, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return "", 0, errRelayDown
	}

	sig := crypto.SignEd25519(from.EdPriv, ciphertext)
	if !crypto.VerifyEd25519(from.EdPub, ciphertext, sig) {
		return "", 0, errBadSignature
	}

	env := domain.Envelope{
		ID:         domain.EnvelopeID(uuid.NewString()),
		From:       from.EdPub.Hex(),
		To:         to.Hex(),
		Ciphertext: append([]byte(nil), ciphertext...),
		Nonce:      nonce.Slice(),
		Signature:  hex.EncodeToString(sig),
		Timestamp:  time.Now().Unix(),
	}
	r.messages[env.To] = append(r.messages[env.To], env)
	return env.ID, env.Timestamp, nil
}

func (r *MemoryRelay) PollMessages(ctx context.Context, id domain.Identity) ([]domain.Envelope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return nil, errRelayDown
	}
	key := id.EdPub.Hex()
	out := append([]domain.Envelope(nil), r.messages[key]...)
	if r.AutoAck {
		delete(r.messages, key)
	}
	return out, nil
}

func (r *MemoryRelay) SendFriendRequest(ctx context.Context, from domain.Identity, fromName string, to domain.Ed25519Public, message string) (domain.RequestID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return "", errRelayDown
	}

	fromHex := from.EdPub.Hex()
	toHex := to.Hex()
	sig := crypto.SignEd25519(from.EdPriv, RequestSigningPayload(fromHex, toHex, fromName, message))

	req := domain.FriendRequestWire{
		ID:                 domain.RequestID(uuid.NewString()),
		From:               fromHex,
		To:                 toHex,
		FromName:           fromName,
		FromExchangePublic: from.ExchangePub.Hex(),
		Message:            message,
		Signature:          hex.EncodeToString(sig),
		Timestamp:          time.Now().Unix(),
	}
	r.requests[toHex] = append(r.requests[toHex], req)
	return req.ID, nil
}

func (r *MemoryRelay) FetchFriendRequests(ctx context.Context, id domain.Identity) ([]domain.FriendRequestWire, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return nil, errRelayDown
	}
	key := id.EdPub.Hex()
	out := append([]domain.FriendRequestWire(nil), r.requests[key]...)
	if r.AutoAck {
		delete(r.requests, key)
	}
	return out, nil
}

func (r *MemoryRelay) CheckHealth(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Down {
		return "", errRelayDown
	}
	return "ok", nil
}

var (
	errRelayDown    = errString("relay unreachable")
	errBadSignature = errString("signature verification failed")
)

type errString string

func (e errString) Error() string { return string(e) }

// Compile-time assertion that MemoryRelay implements domain.RelayClient.
var _ domain.RelayClient = (*MemoryRelay)(nil)
