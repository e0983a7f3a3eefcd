package crypto

import (
	"crypto/sha512"

	"golang.org/x/crypto/curve25519"

	"clawdlink/internal/domain"
	"clawdlink/internal/util/memzero"
)

// DeriveExchangeKeypair deterministically derives the X25519 exchange key
// pair bound to an Ed25519 signing key.
//
// This is the standard conversion (libsodium's
// crypto_sign_ed25519_sk_to_curve25519): SHA-512 of the 32-byte seed, first
// 32 bytes, clamped per RFC 7748. The same signing key always yields the
// same exchange key.
func DeriveExchangeKeypair(signing domain.Ed25519Private) (priv domain.X25519Private, pub domain.X25519Public, err error) {
	h := sha512.Sum512(signing.Seed())
	copy(priv[:], h[:32])
	memzero.Zero(h[:])
	clamp(&priv)

	pb, err := curve25519.X25519(priv.Slice(), curve25519.Basepoint)
	if err != nil {
		return priv, pub, err
	}
	copy(pub[:], pb)
	return priv, pub, nil
}

// DH computes X25519 Diffie–Hellman.
func DH(priv domain.X25519Private, pub domain.X25519Public) (out [32]byte, err error) {
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	memzero.Zero(secret)
	return out, nil
}

func clamp(k *domain.X25519Private) {
	kb := k[:]
	kb[0] &= 248
	kb[31] &= 127
	kb[31] |= 64
}
