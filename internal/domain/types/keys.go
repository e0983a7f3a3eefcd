package types

import (
	"encoding/hex"
	"fmt"
)

// Ed25519Public is an Ed25519 signing public key.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// Hex returns the lowercase hex encoding of the key.
func (p Ed25519Public) Hex() string { return hex.EncodeToString(p[:]) }

// Ed25519Private is an Ed25519 signing private key (seed plus public half).
type Ed25519Private [64]byte

// Slice returns the key as a []byte.
func (k Ed25519Private) Slice() []byte { return k[:] }

// Seed returns the 32-byte seed half of the private key.
func (k Ed25519Private) Seed() []byte { return k[:32] }

// X25519Public is a Curve25519 key-exchange public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// Hex returns the lowercase hex encoding of the key.
func (p X25519Public) Hex() string { return hex.EncodeToString(p[:]) }

// X25519Private is a Curve25519 key-exchange private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// SharedSecret is a pairwise symmetric key derived via key agreement.
type SharedSecret [32]byte

// Slice returns the secret as a []byte.
func (s SharedSecret) Slice() []byte { return s[:] }

// Nonce is the 24-byte value used for authenticated symmetric encryption.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// ParseEd25519PublicHex decodes a hex-encoded signing public key.
func ParseEd25519PublicHex(s string) (Ed25519Public, error) {
	var out Ed25519Public
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("signing public key: %w", err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("signing public key: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}

// ParseX25519PublicHex decodes a hex-encoded exchange public key.
func ParseX25519PublicHex(s string) (X25519Public, error) {
	var out X25519Public
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("exchange public key: %w", err)
	}
	if len(b) != len(out) {
		return out, fmt.Errorf("exchange public key: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}

// NonceFromSlice copies b into a Nonce.
func NonceFromSlice(b []byte) (Nonce, error) {
	var out Nonce
	if len(b) != len(out) {
		return out, fmt.Errorf("nonce: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
