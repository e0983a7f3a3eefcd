package interfaces

import (
	"context"

	types "clawdlink/internal/domain/types"
)

// IdentityService manages the local identity keys.
type IdentityService interface {
	Generate(passphrase string) (types.Identity, types.Fingerprint, error)
	Load(passphrase string) (types.Identity, error)
	Fingerprint(passphrase string) (types.Fingerprint, error)
	// Link renders the out-of-band friend link for the local identity.
	Link(passphrase, displayName string) (string, error)
}

// FriendService runs the friend-request handshake and peer messaging on top
// of the relay primitives.
type FriendService interface {
	// SendRequest sends a friend request to the peer a link names, announcing
	// the local agent as fromName.
	SendRequest(ctx context.Context, passphrase, fromName, link, message string) error
	ProcessIncoming(ctx context.Context, passphrase string) (types.Inbox, error)
	AcceptRequest(ctx context.Context, passphrase, idOrName string) (types.Friend, error)
	SendMessage(ctx context.Context, passphrase, peer, body string, urgency types.Urgency, msgContext string) error

	Friends() ([]types.Friend, error)
	IncomingRequests() ([]types.PendingIncoming, error)
	OutgoingRequests() ([]types.PendingOutgoing, error)
}
