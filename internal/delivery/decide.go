package delivery

import (
	"slices"
	"time"

	"clawdlink/internal/domain"
)

// batchToleranceMinutes is how close to a configured batch time "now" must
// be, on either side, for immediate delivery.
const batchToleranceMinutes = 5

// minutesPerDay is the modulus for circular time-of-day arithmetic.
const minutesPerDay = 24 * 60

// Decision reasons surfaced to callers. BatchWindow and BatchHold are part
// of the observable contract; the rest are informational.
const (
	ReasonAlwaysDeliver = "Friend override: always deliver"
	ReasonUrgentQuiet   = "Urgent message during quiet hours"
	ReasonQuietHours    = "Quiet hours"
	ReasonHighPriority  = "High priority friend"
	ReasonBatchWindow   = "Batch delivery time"
	ReasonContextMuted  = "Context muted"
	ReasonBatchHold     = "Batch delivery enabled"
	ReasonDefault       = "Default delivery"
)

// ShouldDeliverNow decides whether a decrypted message is surfaced
// immediately or held. It is a total function: any input yields a Decision,
// never an error.
//
// Rule order, first match wins:
//  1. per-friend always-deliver override
//  2. quiet hours (overnight wrap supported; urgent messages pass if the
//     profile allows urgent during quiet)
//  3. batch delivery (high-priority friends and allowed contexts pass;
//     near a batch time passes; muted contexts and non-urgent messages hold)
//  4. default: deliver
func ShouldDeliverNow(msg domain.DecryptedMessage, prefs domain.PreferenceProfile, now time.Time) domain.Decision {
	now = inProfileZone(now, prefs.Timezone)

	override := prefs.Friends[msg.SenderName]
	if override.AlwaysDeliver {
		return domain.Decision{Deliver: true, Reason: ReasonAlwaysDeliver}
	}

	if prefs.QuietHours.Enabled && inQuietWindow(prefs.QuietHours, now) {
		if msg.Content.Urgency == domain.UrgencyUrgent && prefs.QuietHours.AllowUrgent {
			return domain.Decision{Deliver: true, Reason: ReasonUrgentQuiet}
		}
		return domain.Decision{Deliver: false, Reason: ReasonQuietHours, HoldUntil: domain.HoldQuietEnd}
	}

	if prefs.BatchDelivery.Enabled {
		if override.Priority == domain.PriorityHigh {
			return domain.Decision{Deliver: true, Reason: ReasonHighPriority}
		}
		if msg.Content.Context != "" && slices.Contains(prefs.AllowedContexts, msg.Content.Context) {
			return domain.Decision{Deliver: true, Reason: ReasonDefault}
		}
		if nearBatchTime(prefs.BatchDelivery.Times, now) {
			return domain.Decision{Deliver: true, Reason: ReasonBatchWindow}
		}
		if msg.Content.Context != "" && slices.Contains(prefs.MutedContexts, msg.Content.Context) {
			return domain.Decision{Deliver: false, Reason: ReasonContextMuted, HoldUntil: domain.HoldBatchTime}
		}
		if msg.Content.Urgency != domain.UrgencyUrgent {
			return domain.Decision{Deliver: false, Reason: ReasonBatchHold, HoldUntil: domain.HoldBatchTime}
		}
	}

	return domain.Decision{Deliver: true, Reason: ReasonDefault}
}

// inQuietWindow reports whether now's time of day falls inside the quiet
// window. Start > End means the window spans midnight.
func inQuietWindow(q domain.QuietHours, now time.Time) bool {
	cur := now.Hour()*60 + now.Minute()
	start := q.Start.MinuteOfDay()
	end := q.End.MinuteOfDay()

	if start == end {
		return false
	}
	if start < end {
		return cur >= start && cur < end
	}
	// Overnight wrap, e.g. 22:00-08:00.
	return cur >= start || cur < end
}

// nearBatchTime reports whether now is within the tolerance of any
// configured batch time. Distance is circular so times straddling midnight
// compare correctly (23:58 vs 00:02 is 4 minutes, not 1436).
func nearBatchTime(times []domain.ClockTime, now time.Time) bool {
	cur := now.Hour()*60 + now.Minute()
	for _, t := range times {
		if circularMinuteDistance(cur, t.MinuteOfDay()) <= batchToleranceMinutes {
			return true
		}
	}
	return false
}

func circularMinuteDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if minutesPerDay-d < d {
		d = minutesPerDay - d
	}
	return d
}

// inProfileZone shifts now into the profile's timezone when one is set and
// loadable; otherwise the caller's location is used as-is.
func inProfileZone(now time.Time, tz string) time.Time {
	if tz == "" {
		return now
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return now
	}
	return now.In(loc)
}
