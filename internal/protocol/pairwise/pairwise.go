package pairwise

import (
	"encoding/json"
	"fmt"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
)

// Derive computes the pairwise shared secret with a peer. Commutative:
// both sides derive the identical key from their own exchange private and
// the other's exchange public.
func Derive(ownPriv domain.X25519Private, peerPub domain.X25519Public) (domain.SharedSecret, error) {
	return crypto.DeriveSharedSecret(ownPriv, peerPub)
}

// Seal marshals content and encrypts it under the pairwise secret with a
// fresh random nonce.
func Seal(content domain.Content, secret domain.SharedSecret) (ciphertext []byte, nonce domain.Nonce, err error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, nonce, fmt.Errorf("marshal content: %w", err)
	}
	nonce, err = crypto.GenerateNonce()
	if err != nil {
		return nil, nonce, err
	}
	return crypto.EncryptSymmetric(raw, nonce, secret), nonce, nil
}

// Open decrypts and decodes content. An authentication failure surfaces as
// domain.ErrDecryptionFailed. Content with an unrecognized type tag is
// returned as-is so callers can treat it as an unknown variant.
func Open(ciphertext []byte, nonce domain.Nonce, secret domain.SharedSecret) (domain.Content, error) {
	raw, err := crypto.DecryptSymmetric(ciphertext, nonce, secret)
	if err != nil {
		return domain.Content{}, err
	}
	var content domain.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return domain.Content{}, fmt.Errorf("decode content: %w", err)
	}
	return content, nil
}
