package domain

import "errors"

// Protocol-state and cryptographic errors surfaced to callers. These are
// actionable outcomes, not session-aborting failures; match with errors.Is.
var (
	// ErrAlreadyFriends is returned when sending a request to a peer that
	// already has a connected Friend record.
	ErrAlreadyFriends = errors.New("already friends with this peer")

	// ErrFriendNotFound is returned when no Friend matches a name or key.
	ErrFriendNotFound = errors.New("friend not found")

	// ErrFriendNotConnected is returned when a Friend record exists but is
	// not in the connected state.
	ErrFriendNotConnected = errors.New("friend is not connected")

	// ErrRequestNotFound is returned when no pending incoming request
	// matches the given id or name.
	ErrRequestNotFound = errors.New("friend request not found")

	// ErrDecryptionFailed is returned when an authentication tag check
	// fails: wrong key, tampered ciphertext, or nonce/key mismatch. Expected
	// in normal operation during batch processing and never fatal.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidFriendLink is returned for malformed friend links, before
	// any network call is made.
	ErrInvalidFriendLink = errors.New("invalid friend link")
)
