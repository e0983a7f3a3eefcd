package interfaces

import types "clawdlink/internal/domain/types"

// IdentityStore persists the local identity, encrypted under a passphrase.
type IdentityStore interface {
	SaveIdentity(passphrase string, id types.Identity) error
	LoadIdentity(passphrase string) (types.Identity, error)
}

// FriendStore persists connected Friend records, keyed by signing-key hex.
type FriendStore interface {
	SaveFriend(f types.Friend) error
	GetFriend(signingKeyHex string) (types.Friend, bool, error)
	ListFriends() ([]types.Friend, error)
}

// PendingStore persists the two pending-request tables.
type PendingStore interface {
	// Outgoing, keyed by peer signing-key hex.
	SaveOutgoing(p types.PendingOutgoing) error
	GetOutgoing(signingKeyHex string) (types.PendingOutgoing, bool, error)
	RemoveOutgoing(signingKeyHex string) error
	ListOutgoing() ([]types.PendingOutgoing, error)

	// Incoming, keyed by request id.
	SaveIncoming(p types.PendingIncoming) error
	GetIncoming(id types.RequestID) (types.PendingIncoming, bool, error)
	RemoveIncoming(id types.RequestID) error
	ListIncoming() ([]types.PendingIncoming, error)
}

// SeenStore remembers recently processed envelope and request ids so that
// repeated polls do not mutate local state twice.
type SeenStore interface {
	// MarkSeen records id and reports whether this was its first sighting.
	MarkSeen(id string) (first bool, err error)
}

// PrefsStore persists the singleton preference profile.
type PrefsStore interface {
	SavePreferences(p types.PreferenceProfile) error
	LoadPreferences() (types.PreferenceProfile, error)
}

// HeldStore queues messages the delivery engine deferred.
type HeldStore interface {
	Enqueue(h types.HeldMessage) error
	List() ([]types.HeldMessage, error)
	Remove(id string) error
}
