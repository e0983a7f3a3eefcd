package types

// FriendStatus is the connection state of a Friend record.
type FriendStatus string

const (
	// StatusConnected is the only terminal state a Friend record reaches.
	// Records still in negotiation live in the pending tables instead.
	StatusConnected FriendStatus = "connected"
)

// Friend is a remote peer the local agent has exchanged keys with.
// A Friend row exists only after a shared secret has been derived.
type Friend struct {
	Name         string        `json:"name"`
	SigningKey   Ed25519Public `json:"signing_key"`
	ExchangeKey  X25519Public  `json:"exchange_key"`
	SharedSecret SharedSecret  `json:"shared_secret"`
	Status       FriendStatus  `json:"status"`
	AddedUTC     int64         `json:"added_utc"`
}

// PendingOutgoing records a friend request we sent and are awaiting an
// acceptance for. The peer's exchange key from the link is kept so the
// eventual friend_accept envelope can be decrypted.
type PendingOutgoing struct {
	Name        string        `json:"name"`
	SigningKey  Ed25519Public `json:"signing_key"`
	ExchangeKey X25519Public  `json:"exchange_key"`
	Message     string        `json:"message"`
	SentUTC     int64         `json:"sent_utc"`
}

// PendingIncoming records a friend request received from an unknown peer,
// deduplicated by request id. Removed on accept; otherwise it simply remains.
type PendingIncoming struct {
	ID          RequestID     `json:"id"`
	Name        string        `json:"name"`
	SigningKey  Ed25519Public `json:"signing_key"`
	ExchangeKey X25519Public  `json:"exchange_key"`
	Message     string        `json:"message"`
	ReceivedUTC int64         `json:"received_utc"`
}
