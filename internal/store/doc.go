// Package store provides file-based persistence for ClawdLink's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. All methods are concurrency-safe via
// internal locking, and writes go through a temp-file-then-rename step so a
// crash mid-write cannot corrupt the target. Stored files live under the
// user's configured home directory.
//
// The package includes stores for:
//   - Identity keys, encrypted under a passphrase (IdentityFileStore)
//   - Connected friends (FriendFileStore)
//   - Pending friend requests, both directions (PendingFileStore)
//   - Recently seen envelope/request ids (SeenFileStore)
//   - The delivery preference profile (PrefsFileStore)
//   - Held messages awaiting their delivery trigger (HeldFileStore)
package store
