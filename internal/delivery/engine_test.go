package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clawdlink/internal/delivery"
	"clawdlink/internal/domain"
	"clawdlink/internal/store"
)

func newEngine(t *testing.T) (*delivery.Engine, domain.PrefsStore) {
	t.Helper()
	home := t.TempDir()
	prefs := store.NewPrefsFileStore(home)
	held := store.NewHeldFileStore(home)
	return delivery.NewEngine(prefs, held), prefs
}

func TestEngine_HoldThenDrainAtBatchTime(t *testing.T) {
	eng, prefsStore := newEngine(t)

	require.NoError(t, prefsStore.SavePreferences(domain.PreferenceProfile{
		BatchDelivery: domain.BatchDelivery{
			Enabled: true,
			Times:   []domain.ClockTime{{Hour: 9}},
		},
	}))

	m := msg("bob", domain.UrgencyNormal, "")
	d, err := eng.Evaluate(m, at(14, 0))
	require.NoError(t, err)
	require.False(t, d.Deliver)
	require.Equal(t, domain.HoldBatchTime, d.HoldUntil)

	held, err := eng.Held()
	require.NoError(t, err)
	require.Len(t, held, 1)

	// Still mid-afternoon: nothing fires.
	out, err := eng.Drain(at(15, 0))
	require.NoError(t, err)
	require.Empty(t, out)

	// Next batch window: the hold releases and the queue empties.
	out, err = eng.Drain(at(9, 1))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "bob", out[0].SenderName)

	held, err = eng.Held()
	require.NoError(t, err)
	require.Empty(t, held)
}

func TestEngine_QuietHoldReleasesAfterWindow(t *testing.T) {
	eng, prefsStore := newEngine(t)

	require.NoError(t, prefsStore.SavePreferences(domain.PreferenceProfile{
		QuietHours: domain.QuietHours{
			Enabled: true,
			Start:   domain.ClockTime{Hour: 22},
			End:     domain.ClockTime{Hour: 8},
		},
	}))

	d, err := eng.Evaluate(msg("alice", domain.UrgencyNormal, ""), at(23, 30))
	require.NoError(t, err)
	require.False(t, d.Deliver)
	require.Equal(t, domain.HoldQuietEnd, d.HoldUntil)

	// Still inside the overnight window.
	out, err := eng.Drain(at(6, 0))
	require.NoError(t, err)
	require.Empty(t, out)

	// Window over.
	out, err = eng.Drain(at(8, 5))
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestEngine_DeliverNowLeavesQueueEmpty(t *testing.T) {
	eng, _ := newEngine(t)

	d, err := eng.Evaluate(msg("bob", domain.UrgencyNormal, ""), at(12, 0))
	require.NoError(t, err)
	require.True(t, d.Deliver)

	held, err := eng.Held()
	require.NoError(t, err)
	require.Empty(t, held)
}
