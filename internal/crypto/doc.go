// Package crypto exposes the primitives used by ClawdLink.
//
// Contents
//
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Deterministic Ed25519 to X25519 exchange-key conversion
//     (DeriveExchangeKeypair) and Diffie–Hellman (DH)
//   - Pairwise shared-secret derivation (DeriveSharedSecret)
//   - Authenticated symmetric encryption with 24-byte nonces
//     (GenerateNonce, EncryptSymmetric, DecryptSymmetric)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// All functions operate on fixed-size array types defined in internal/domain
// to avoid accidental reallocations. Callers should treat returned secrets as
// sensitive and rely on memzero when practical to reduce lifetime in memory.
package crypto
