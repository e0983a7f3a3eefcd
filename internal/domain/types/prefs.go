package types

import (
	"encoding/json"
	"fmt"
)

// ClockTime is a wall-clock time of day, serialized as "HH:MM".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" into a ClockTime.
func ParseClockTime(s string) (ClockTime, error) {
	var t ClockTime
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return t, fmt.Errorf("clock time %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return t, fmt.Errorf("clock time %q: out of range", s)
	}
	return t, nil
}

// String returns the "HH:MM" form.
func (t ClockTime) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// MinuteOfDay returns minutes since midnight.
func (t ClockTime) MinuteOfDay() int { return t.Hour*60 + t.Minute }

// MarshalJSON encodes the time as its "HH:MM" string form.
func (t ClockTime) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

// UnmarshalJSON decodes an "HH:MM" string.
func (t *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// QuietHours is a time-of-day window during which non-urgent deliveries are
// deferred. Start > End means the window wraps past midnight.
type QuietHours struct {
	Enabled     bool      `json:"enabled"`
	Start       ClockTime `json:"start"`
	End         ClockTime `json:"end"`
	AllowUrgent bool      `json:"allow_urgent"`
}

// BatchDelivery defers non-urgent messages until one of a configured set of
// times of day.
type BatchDelivery struct {
	Enabled bool        `json:"enabled"`
	Times   []ClockTime `json:"times"`
}

// Priority is a per-friend delivery priority.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// FriendOverride carries per-friend delivery preferences.
type FriendOverride struct {
	Priority      Priority `json:"priority,omitempty"`
	AlwaysDeliver bool     `json:"always_deliver,omitempty"`
	Tone          string   `json:"tone,omitempty"`
}

// PreferenceProfile is the singleton delivery-preference state for the local
// agent. Read on every incoming message.
type PreferenceProfile struct {
	QuietHours      QuietHours                `json:"quiet_hours"`
	BatchDelivery   BatchDelivery             `json:"batch_delivery"`
	Friends         map[string]FriendOverride `json:"friends,omitempty"` // keyed by display name
	AllowedContexts []string                  `json:"allowed_contexts,omitempty"`
	MutedContexts   []string                  `json:"muted_contexts,omitempty"`
	Timezone        string                    `json:"timezone,omitempty"`
}

// HoldReason is the re-check trigger attached to a deferred delivery.
type HoldReason string

const (
	HoldQuietEnd  HoldReason = "quiet_end"
	HoldBatchTime HoldReason = "batch_time"
)

// Decision is the outcome of the delivery preference engine for one message.
type Decision struct {
	Deliver   bool       `json:"deliver"`
	Reason    string     `json:"reason"`
	HoldUntil HoldReason `json:"hold_until,omitempty"`
}

// HeldMessage is a decrypted message the engine deferred, queued until its
// trigger condition becomes true.
type HeldMessage struct {
	ID      string           `json:"id"`
	Message DecryptedMessage `json:"message"`
	Reason  string           `json:"reason"`
	Trigger HoldReason       `json:"trigger"`
	HeldUTC int64            `json:"held_utc"`
}
