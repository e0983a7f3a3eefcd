package relay

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
)

// Header names for signed-freshness-token authentication on poll-style
// endpoints. The relay verifies the signature against the identity key, so
// no per-friend shared state is needed.
const (
	HeaderIdentityKey = "X-Identity-Key"
	HeaderTimestamp   = "X-Timestamp"
	HeaderSignature   = "X-Signature"
)

// PollToken is the freshness token signed for poll-style requests.
func PollToken(unixTS int64) []byte {
	return []byte("poll:" + strconv.FormatInt(unixTS, 10))
}

// RequestSigningPayload is the byte string a friend request's signature
// binds: sender, recipient, display name and message.
func RequestSigningPayload(fromHex, toHex, fromName, message string) []byte {
	return []byte(fmt.Sprintf("request:%s:%s:%s:%s", fromHex, toHex, fromName, message))
}

// VerifyPollAuth checks a signed freshness token against the claimed
// identity key. Used by the in-memory relay; a real relay server performs
// the same check.
func VerifyPollAuth(identityKeyHex, timestamp, signatureHex string) (domain.Ed25519Public, error) {
	pub, err := domain.ParseEd25519PublicHex(identityKeyHex)
	if err != nil {
		return domain.Ed25519Public{}, err
	}
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return domain.Ed25519Public{}, fmt.Errorf("poll timestamp: %w", err)
	}
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return domain.Ed25519Public{}, fmt.Errorf("poll signature: %w", err)
	}
	if !crypto.VerifyEd25519(pub, PollToken(ts), sig) {
		return domain.Ed25519Public{}, fmt.Errorf("poll signature verification failed")
	}
	return pub, nil
}
