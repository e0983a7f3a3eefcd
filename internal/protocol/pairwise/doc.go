// Package pairwise implements the per-friend symmetric channel: shared-secret
// derivation via X25519 plus a hash step, and authenticated seal/open of
// structured message content.
package pairwise
