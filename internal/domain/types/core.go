package types

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// RequestID identifies a friend request on the relay.
type RequestID string

// String returns the string form of the identifier.
func (id RequestID) String() string { return string(id) }

// EnvelopeID is the relay-assigned identifier of a queued envelope.
type EnvelopeID string

// String returns the string form of the identifier.
func (id EnvelopeID) String() string { return string(id) }
