package relay_test

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
	"clawdlink/internal/relay"
)

func testIdentity(t *testing.T) domain.Identity {
	t.Helper()
	edPriv, edPub, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	xPriv, xPub, err := crypto.DeriveExchangeKeypair(edPriv)
	require.NoError(t, err)
	return domain.Identity{
		EdPub:        edPub,
		EdPriv:       edPriv,
		ExchangePub:  xPub,
		ExchangePriv: xPriv,
		CreatedUTC:   time.Now().Unix(),
	}
}

func TestSendEnvelope_SignsCiphertext(t *testing.T) {
	from := testIdentity(t)
	to := testIdentity(t)

	ciphertext := []byte("opaque bytes")
	var got domain.Envelope

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "env-1", "timestamp": int64(1700000000)})
	}))
	defer srv.Close()

	c := relay.NewHTTP(srv.URL, srv.Client())
	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)

	id, ts, err := c.SendEnvelope(context.Background(), from, to.EdPub, ciphertext, nonce)
	require.NoError(t, err)
	require.Equal(t, domain.EnvelopeID("env-1"), id)
	require.Equal(t, int64(1700000000), ts)

	require.Equal(t, from.EdPub.Hex(), got.From)
	require.Equal(t, to.EdPub.Hex(), got.To)
	require.Equal(t, ciphertext, got.Ciphertext)
	require.Equal(t, nonce.Slice(), got.Nonce)

	sig, err := hex.DecodeString(got.Signature)
	require.NoError(t, err)
	require.True(t, crypto.VerifyEd25519(from.EdPub, got.Ciphertext, sig),
		"envelope signature must verify against the sender's signing key")
}

func TestPollMessages_SignedFreshnessToken(t *testing.T) {
	me := testIdentity(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/poll", r.URL.Path)
		pub, err := relay.VerifyPollAuth(
			r.Header.Get(relay.HeaderIdentityKey),
			r.Header.Get(relay.HeaderTimestamp),
			r.Header.Get(relay.HeaderSignature),
		)
		require.NoError(t, err, "poll auth headers must verify")
		require.Equal(t, me.EdPub, pub)

		_ = json.NewEncoder(w).Encode(map[string]any{"messages": []domain.Envelope{
			{ID: "e1", From: "aa", To: me.EdPub.Hex()},
		}})
	}))
	defer srv.Close()

	c := relay.NewHTTP(srv.URL, srv.Client())
	envs, err := c.PollMessages(context.Background(), me)
	require.NoError(t, err)
	require.Len(t, envs, 1)
	require.Equal(t, domain.EnvelopeID("e1"), envs[0].ID)
}

func TestSendFriendRequest_SignatureBindsFields(t *testing.T) {
	from := testIdentity(t)
	to := testIdentity(t)

	var got domain.FriendRequestWire
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/request", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "req-1"})
	}))
	defer srv.Close()

	c := relay.NewHTTP(srv.URL, srv.Client())
	id, err := c.SendFriendRequest(context.Background(), from, "Alice", to.EdPub, "hello there")
	require.NoError(t, err)
	require.Equal(t, domain.RequestID("req-1"), id)

	require.Equal(t, from.ExchangePub.Hex(), got.FromExchangePublic)

	sig, err := hex.DecodeString(got.Signature)
	require.NoError(t, err)
	payload := relay.RequestSigningPayload(got.From, got.To, got.FromName, got.Message)
	require.True(t, crypto.VerifyEd25519(from.EdPub, payload, sig))

	// The binding must break when any bound field changes.
	tampered := relay.RequestSigningPayload(got.From, got.To, "Mallory", got.Message)
	require.False(t, crypto.VerifyEd25519(from.EdPub, tampered, sig))
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := relay.NewHTTP(srv.URL, srv.Client())
	status, err := c.CheckHealth(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", status)
}

func TestNon2xx_IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "queue full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := relay.NewHTTP(srv.URL, srv.Client())
	_, err := c.CheckHealth(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
}
