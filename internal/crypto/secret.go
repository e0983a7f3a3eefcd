package crypto

import (
	"crypto/rand"
	"crypto/sha256"

	"golang.org/x/crypto/nacl/secretbox"

	"clawdlink/internal/domain"
)

// DeriveSharedSecret computes the pairwise symmetric key for a friend:
// X25519 Diffie–Hellman followed by SHA-256 to produce a uniformly
// distributed key.
//
// The operation is commutative: (A's private, B's public) and
// (B's private, A's public) yield identical output. The entire friend
// protocol depends on this.
func DeriveSharedSecret(ownPriv domain.X25519Private, peerPub domain.X25519Public) (domain.SharedSecret, error) {
	raw, err := DH(ownPriv, peerPub)
	if err != nil {
		return domain.SharedSecret{}, err
	}
	return domain.SharedSecret(sha256.Sum256(raw[:])), nil
}

// GenerateNonce returns a fresh random 24-byte nonce. A nonce must never
// repeat for a given key.
func GenerateNonce() (domain.Nonce, error) {
	var nonce domain.Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		return domain.Nonce{}, err
	}
	return nonce, nil
}

// EncryptSymmetric seals plaintext with the shared secret using NaCl
// secretbox (XSalsa20-Poly1305).
func EncryptSymmetric(plaintext []byte, nonce domain.Nonce, key domain.SharedSecret) []byte {
	return secretbox.Seal(nil, plaintext, (*[24]byte)(&nonce), (*[32]byte)(&key))
}

// DecryptSymmetric opens a secretbox ciphertext. A failed authentication tag
// check (wrong key, tampered ciphertext, or nonce/key mismatch) returns
// domain.ErrDecryptionFailed; this is an expected, non-fatal outcome when an
// envelope cannot be attributed to a known friend.
func DecryptSymmetric(ciphertext []byte, nonce domain.Nonce, key domain.SharedSecret) ([]byte, error) {
	out, ok := secretbox.Open(nil, ciphertext, (*[24]byte)(&nonce), (*[32]byte)(&key))
	if !ok {
		return nil, domain.ErrDecryptionFailed
	}
	return out, nil
}
