package interfaces

import (
	"context"

	types "clawdlink/internal/domain/types"
)

// RelayClient is how we talk to the untrusted store-and-forward relay.
//
// Every operation may fail with a transport or relay-rejection error; callers
// treat those as "try later", never as protocol-level denial. Poll-style
// operations authenticate with a signed freshness token so the relay can
// verify the request without any pre-shared secret.
type RelayClient interface {
	// SendEnvelope signs ciphertext with from's signing key and submits the
	// envelope. Returns the relay-assigned id and timestamp.
	SendEnvelope(ctx context.Context, from types.Identity, to types.Ed25519Public, ciphertext []byte, nonce types.Nonce) (types.EnvelopeID, int64, error)

	// PollMessages returns pending envelopes addressed to id. Delivery is not
	// at-most-once; callers must deduplicate by envelope id.
	PollMessages(ctx context.Context, id types.Identity) ([]types.Envelope, error)

	// SendFriendRequest submits a plaintext-but-signed friend request.
	SendFriendRequest(ctx context.Context, from types.Identity, fromName string, to types.Ed25519Public, message string) (types.RequestID, error)

	// FetchFriendRequests returns pending friend requests addressed to id.
	FetchFriendRequests(ctx context.Context, id types.Identity) ([]types.FriendRequestWire, error)

	// CheckHealth probes relay liveness. A failure means "relay offline".
	CheckHealth(ctx context.Context) (string, error)
}
