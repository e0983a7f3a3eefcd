package domain

import (
	interfaces "clawdlink/internal/domain/interfaces"
	types "clawdlink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Fingerprint       = types.Fingerprint
	RequestID         = types.RequestID
	EnvelopeID        = types.EnvelopeID
	Identity          = types.Identity
	FriendLink        = types.FriendLink
	Friend            = types.Friend
	FriendStatus      = types.FriendStatus
	PendingOutgoing   = types.PendingOutgoing
	PendingIncoming   = types.PendingIncoming
	Envelope          = types.Envelope
	FriendRequestWire = types.FriendRequestWire
	Content           = types.Content
	ContentType       = types.ContentType
	Urgency           = types.Urgency
	DecryptedMessage  = types.DecryptedMessage
	Inbox             = types.Inbox
	ClockTime         = types.ClockTime
	QuietHours        = types.QuietHours
	BatchDelivery     = types.BatchDelivery
	Priority          = types.Priority
	FriendOverride    = types.FriendOverride
	PreferenceProfile = types.PreferenceProfile
	HoldReason        = types.HoldReason
	Decision          = types.Decision
	HeldMessage       = types.HeldMessage
	Ed25519Public     = types.Ed25519Public
	Ed25519Private    = types.Ed25519Private
	X25519Public      = types.X25519Public
	X25519Private     = types.X25519Private
	SharedSecret      = types.SharedSecret
	Nonce             = types.Nonce
)

// Constant re-exports for the tagged values used across packages.
const (
	StatusConnected = types.StatusConnected

	ContentMessage      = types.ContentMessage
	ContentFriendAccept = types.ContentFriendAccept

	UrgencyNormal = types.UrgencyNormal
	UrgencyUrgent = types.UrgencyUrgent

	PriorityNormal = types.PriorityNormal
	PriorityHigh   = types.PriorityHigh

	HoldQuietEnd  = types.HoldQuietEnd
	HoldBatchTime = types.HoldBatchTime
)

// Function re-exports for wire-format parsing helpers.
var (
	ParseEd25519PublicHex = types.ParseEd25519PublicHex
	ParseX25519PublicHex  = types.ParseX25519PublicHex
	NonceFromSlice        = types.NonceFromSlice
	ParseClockTime        = types.ParseClockTime
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	IdentityService = interfaces.IdentityService
	FriendService   = interfaces.FriendService
	RelayClient     = interfaces.RelayClient
	IdentityStore   = interfaces.IdentityStore
	FriendStore     = interfaces.FriendStore
	PendingStore    = interfaces.PendingStore
	SeenStore       = interfaces.SeenStore
	PrefsStore      = interfaces.PrefsStore
	HeldStore       = interfaces.HeldStore
)
