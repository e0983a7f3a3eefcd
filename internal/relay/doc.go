// Package relay provides clients for the untrusted store-and-forward relay.
//
// The relay is a dumb message queue: it stores encrypted envelopes and
// plaintext-but-signed friend requests per recipient identity key. It cannot
// read message content but can observe who is talking to whom.
//
// Supported operations:
//   - Sending an encrypted envelope to a peer.
//   - Polling for pending envelopes.
//   - Sending and fetching friend requests.
//   - A liveness probe.
//
// Poll-style endpoints authenticate with a signed freshness token
// ("poll:" + unix timestamp signed with the identity key), so the relay can
// verify callers without any pre-shared secret. All requests are JSON over
// HTTP, accept a context, and carry a bounded timeout; any failure is a
// "try later" transport error, never a protocol-level denial.
package relay
