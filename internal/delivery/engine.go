package delivery

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"clawdlink/internal/domain"
)

// Engine routes decrypted messages through the preference decision and owns
// the held queue. The decision itself stays a pure function; the engine only
// adds the queue side effects around it.
type Engine struct {
	prefs domain.PrefsStore
	held  domain.HeldStore
}

// NewEngine returns an Engine over the given stores.
func NewEngine(prefs domain.PrefsStore, held domain.HeldStore) *Engine {
	return &Engine{prefs: prefs, held: held}
}

// Evaluate decides delivery for msg at now. A hold decision queues the
// message with its re-check trigger before returning.
func (e *Engine) Evaluate(msg domain.DecryptedMessage, now time.Time) (domain.Decision, error) {
	prefs, err := e.prefs.LoadPreferences()
	if err != nil {
		return domain.Decision{}, fmt.Errorf("load preferences: %w", err)
	}

	d := ShouldDeliverNow(msg, prefs, now)
	if !d.Deliver {
		h := domain.HeldMessage{
			ID:      uuid.NewString(),
			Message: msg,
			Reason:  d.Reason,
			Trigger: d.HoldUntil,
			HeldUTC: now.Unix(),
		}
		if err := e.held.Enqueue(h); err != nil {
			return d, fmt.Errorf("queue held message: %w", err)
		}
	}
	return d, nil
}

// Drain removes and returns held messages whose trigger condition is true at
// now: quiet_end holds once the quiet window no longer covers now, and
// batch_time holds once a batch time is reached (or batching was disabled).
func (e *Engine) Drain(now time.Time) ([]domain.DecryptedMessage, error) {
	prefs, err := e.prefs.LoadPreferences()
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	queue, err := e.held.List()
	if err != nil {
		return nil, fmt.Errorf("list held messages: %w", err)
	}

	local := inProfileZone(now, prefs.Timezone)
	var out []domain.DecryptedMessage
	for _, h := range queue {
		if !triggerFired(h.Trigger, prefs, local) {
			continue
		}
		if err := e.held.Remove(h.ID); err != nil {
			return out, fmt.Errorf("remove held message %s: %w", h.ID, err)
		}
		out = append(out, h.Message)
	}
	return out, nil
}

// Held lists the queue without draining it.
func (e *Engine) Held() ([]domain.HeldMessage, error) {
	return e.held.List()
}

func triggerFired(trigger domain.HoldReason, prefs domain.PreferenceProfile, now time.Time) bool {
	switch trigger {
	case domain.HoldQuietEnd:
		return !prefs.QuietHours.Enabled || !inQuietWindow(prefs.QuietHours, now)
	case domain.HoldBatchTime:
		return !prefs.BatchDelivery.Enabled || nearBatchTime(prefs.BatchDelivery.Times, now)
	default:
		// Unknown trigger from a newer version: release rather than strand.
		return true
	}
}
