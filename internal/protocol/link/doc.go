// Package link formats and parses the out-of-band friend link URI that
// carries a peer's signing public key, exchange public key and display name.
package link
