// Package friends implements the friend-request handshake state machine and
// encrypted peer messaging: sending and accepting requests, polling the relay
// with idempotent classification of everything that arrives, and resolving
// friends by name or key for outbound messages.
package friends
