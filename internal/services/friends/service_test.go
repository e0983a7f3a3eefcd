package friends_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"clawdlink/internal/domain"
	"clawdlink/internal/relay"
	"clawdlink/internal/services/friends"
	"clawdlink/internal/services/identity"
	"clawdlink/internal/store"
)

const passphrase = "Tr0ub4dor&3-horse"

type peer struct {
	name string
	ids  *identity.Service
	svc  *friends.Service
	id   domain.Identity
}

func newPeer(t *testing.T, name string, rc domain.RelayClient) *peer {
	t.Helper()
	home := t.TempDir()
	ids := identity.New(store.NewIdentityFileStore(home))
	id, _, err := ids.Generate(passphrase)
	require.NoError(t, err)

	svc := friends.New(
		ids,
		store.NewFriendFileStore(home),
		store.NewPendingFileStore(home),
		store.NewSeenFileStore(home),
		rc,
	)
	return &peer{name: name, ids: ids, svc: svc, id: id}
}

func (p *peer) link(t *testing.T) string {
	t.Helper()
	raw, err := p.ids.Link(passphrase, p.name)
	require.NoError(t, err)
	return raw
}

// connect runs the full handshake between two peers and returns once both
// sides hold a connected Friend record.
func connect(t *testing.T, ctx context.Context, a, b *peer) {
	t.Helper()

	require.NoError(t, a.svc.SendRequest(ctx, passphrase, a.name, b.link(t), "hello"))

	inbox, err := b.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Len(t, inbox.Requests, 1)
	require.Equal(t, a.name, inbox.Requests[0].Name)

	_, err = b.svc.AcceptRequest(ctx, passphrase, a.name)
	require.NoError(t, err)

	inbox, err = a.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Len(t, inbox.Accepted, 1)
}

func TestHandshake_Converges(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)

	connect(t, ctx, alice, bob)

	af, err := alice.svc.Friends()
	require.NoError(t, err)
	bf, err := bob.svc.Friends()
	require.NoError(t, err)
	require.Len(t, af, 1)
	require.Len(t, bf, 1)

	require.Equal(t, domain.StatusConnected, af[0].Status)
	require.Equal(t, domain.StatusConnected, bf[0].Status)
	require.Equal(t, af[0].SharedSecret, bf[0].SharedSecret)

	// Both pending tables are clear.
	out, err := alice.svc.OutgoingRequests()
	require.NoError(t, err)
	require.Empty(t, out)
	in, err := bob.svc.IncomingRequests()
	require.NoError(t, err)
	require.Empty(t, in)
}

func TestMessage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)
	connect(t, ctx, alice, bob)

	require.NoError(t, alice.svc.SendMessage(ctx, passphrase, "bob", "lunch?", domain.UrgencyUrgent, "food"))

	inbox, err := bob.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 1)

	m := inbox.Messages[0]
	require.Equal(t, "alice", m.SenderName)
	require.Equal(t, "lunch?", m.Content.Body)
	require.Equal(t, domain.UrgencyUrgent, m.Content.Urgency)
	require.Equal(t, "food", m.Content.Context)
	require.Equal(t, alice.id.EdPub, m.SenderKey)
}

func TestProcessIncoming_IdempotentAgainstRedelivery(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	rc.AutoAck = false // the relay re-serves its queue on every poll
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)

	require.NoError(t, alice.svc.SendRequest(ctx, passphrase, "alice", bob.link(t), "hi"))

	inbox, err := bob.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Len(t, inbox.Requests, 1)

	// The same request arrives again; nothing new is recorded.
	inbox, err = bob.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Empty(t, inbox.Requests)

	in, err := bob.svc.IncomingRequests()
	require.NoError(t, err)
	require.Len(t, in, 1)
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)
	connect(t, ctx, alice, bob)

	err := alice.svc.SendRequest(ctx, passphrase, "alice", bob.link(t), "again")
	require.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestSendRequest_RejectsBadLink(t *testing.T) {
	ctx := context.Background()
	alice := newPeer(t, "alice", relay.NewMemory())

	err := alice.svc.SendRequest(ctx, passphrase, "alice", "https://example.com/?key=x", "hi")
	require.ErrorIs(t, err, domain.ErrInvalidFriendLink)
}

func TestSendRequest_RejectsOwnLink(t *testing.T) {
	ctx := context.Background()
	alice := newPeer(t, "alice", relay.NewMemory())

	err := alice.svc.SendRequest(ctx, passphrase, "alice", alice.link(t), "hi")
	require.ErrorIs(t, err, domain.ErrInvalidFriendLink)
}

func TestAcceptRequest_NotFound(t *testing.T) {
	ctx := context.Background()
	bob := newPeer(t, "bob", relay.NewMemory())

	_, err := bob.svc.AcceptRequest(ctx, passphrase, "nobody")
	require.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestAcceptRequest_RelayDownKeepsPending(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)

	require.NoError(t, alice.svc.SendRequest(ctx, passphrase, "alice", bob.link(t), "hi"))
	_, err := bob.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)

	rc.Down = true
	_, err = bob.svc.AcceptRequest(ctx, passphrase, "alice")
	require.Error(t, err)

	// Still pending, no Friend recorded; accept succeeds once the relay is back.
	in, err := bob.svc.IncomingRequests()
	require.NoError(t, err)
	require.Len(t, in, 1)
	bf, err := bob.svc.Friends()
	require.NoError(t, err)
	require.Empty(t, bf)

	rc.Down = false
	_, err = bob.svc.AcceptRequest(ctx, passphrase, "alice")
	require.NoError(t, err)
}

func TestSendMessage_Resolution(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)
	bob := newPeer(t, "bob", rc)
	connect(t, ctx, alice, bob)

	// Exact signing-key hex.
	require.NoError(t, alice.svc.SendMessage(ctx, passphrase, bob.id.EdPub.Hex(), "by key", domain.UrgencyNormal, ""))
	// Case-insensitive name.
	require.NoError(t, alice.svc.SendMessage(ctx, passphrase, "BOB", "by name", domain.UrgencyNormal, ""))
	// Unique substring.
	require.NoError(t, alice.svc.SendMessage(ctx, passphrase, "bo", "by prefix", domain.UrgencyNormal, ""))

	err := alice.svc.SendMessage(ctx, passphrase, "charlie", "?", domain.UrgencyNormal, "")
	require.ErrorIs(t, err, domain.ErrFriendNotFound)

	inbox, err := bob.svc.ProcessIncoming(ctx, passphrase)
	require.NoError(t, err)
	require.Len(t, inbox.Messages, 3)
}

func TestProcessIncoming_PartialOnRelayFailure(t *testing.T) {
	ctx := context.Background()
	rc := relay.NewMemory()
	alice := newPeer(t, "alice", rc)

	rc.Down = true
	inbox, err := alice.svc.ProcessIncoming(ctx, passphrase)
	require.Error(t, err)
	require.Empty(t, inbox.Requests)
	require.Empty(t, inbox.Messages)
}
