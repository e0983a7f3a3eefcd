// Package identity manages the local identity: key generation with a
// passphrase strength gate, encrypted persistence, fingerprints, and
// friend-link rendering.
package identity
