package types

// Identity holds the local agent's long-term signing keys and the exchange
// keys derived from them. Created once and immutable thereafter.
type Identity struct {
	EdPub        Ed25519Public  `json:"edpub"`
	EdPriv       Ed25519Private `json:"edpriv"`
	ExchangePub  X25519Public   `json:"xpub"`
	ExchangePriv X25519Private  `json:"xpriv"`
	CreatedUTC   int64          `json:"created_utc"`
}

// FriendLink is the out-of-band published contact card for an identity:
// both public keys plus a display name.
type FriendLink struct {
	SigningKey  Ed25519Public
	ExchangeKey X25519Public
	DisplayName string
}
