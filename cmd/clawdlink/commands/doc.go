// Package commands defines the clawdlink CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init         Create the local identity
//   - fingerprint  Print the identity fingerprint
//   - link         Print your friend link for sharing
//   - add          Send a friend request using a peer's link
//   - requests     List pending friend requests
//   - accept       Accept a pending friend request
//   - friends      List connected friends
//   - send         Encrypt and send a message
//   - recv         Poll the relay and deliver per preferences
//   - held         List messages waiting on a delivery trigger
//   - prefs        View and edit delivery preferences
//   - health       Check relay reachability
//
// # Implementation
//
// The root command builds a dependency graph (stores, services, relay client)
// before any subcommand runs, so handlers share one app context.
package commands
