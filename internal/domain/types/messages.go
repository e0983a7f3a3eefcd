package types

// Urgency marks how a message should be treated by delivery preferences.
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

// ContentType tags the payload carried inside an encrypted envelope.
type ContentType string

const (
	ContentMessage      ContentType = "message"
	ContentFriendAccept ContentType = "friend_accept"
)

// Content is the structured plaintext carried inside an envelope. The type
// tag selects which fields are meaningful; unrecognized tags are preserved
// so newer peers do not break older ones.
type Content struct {
	Type    ContentType `json:"type"`
	Body    string      `json:"body,omitempty"`
	Urgency Urgency     `json:"urgency,omitempty"`
	Context string      `json:"context,omitempty"`
}

// Known reports whether the content type is one this version understands.
func (c Content) Known() bool {
	return c.Type == ContentMessage || c.Type == ContentFriendAccept
}

// Envelope is the wire-format record posted to and fetched from the relay.
// Sender and recipient identity keys travel as plaintext hex identifiers;
// only the payload is encrypted.
type Envelope struct {
	ID         EnvelopeID `json:"id,omitempty"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Ciphertext []byte     `json:"ciphertext"`
	Nonce      []byte     `json:"nonce"`
	Signature  string     `json:"signature"`
	Timestamp  int64      `json:"timestamp,omitempty"`
}

// FriendRequestWire is the plaintext-but-signed friend request record.
// No shared secret exists yet, so the signature is the only authenticity
// binding over (from, to, name, message).
type FriendRequestWire struct {
	ID                 RequestID `json:"id,omitempty"`
	From               string    `json:"from"`
	To                 string    `json:"to"`
	FromName           string    `json:"fromName"`
	FromExchangePublic string    `json:"fromExchangePublic"`
	Message            string    `json:"message"`
	Signature          string    `json:"signature"`
	Timestamp          int64     `json:"timestamp,omitempty"`
}

// DecryptedMessage is an envelope after attribution and decryption,
// ready for the delivery preference engine.
type DecryptedMessage struct {
	ID             EnvelopeID    `json:"id"`
	SenderName     string        `json:"sender_name"`
	SenderKey      Ed25519Public `json:"sender_key"`
	Content        Content       `json:"content"`
	RelayTimestamp int64         `json:"relay_timestamp"`
	ReceivedUTC    int64         `json:"received_utc"`
}

// Inbox is the partial-result outcome of one ProcessIncoming pass.
type Inbox struct {
	Requests []PendingIncoming  // newly recorded incoming friend requests
	Accepted []Friend           // outgoing requests that converged this pass
	Messages []DecryptedMessage // plain messages from connected friends
	Skipped  int                // envelopes dropped (unattributable or undecryptable)
}
