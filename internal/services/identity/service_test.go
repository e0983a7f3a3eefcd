package identity_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clawdlink/internal/protocol/link"
	"clawdlink/internal/services/identity"
	"clawdlink/internal/store"
)

const passphrase = "Tr0ub4dor&3-horse"

func newService(t *testing.T) *identity.Service {
	t.Helper()
	return identity.New(store.NewIdentityFileStore(t.TempDir()))
}

func TestGenerateAndLoad(t *testing.T) {
	svc := newService(t)

	id, fp, err := svc.Generate(passphrase)
	require.NoError(t, err)
	require.NotEmpty(t, fp)
	require.NotZero(t, id.CreatedUTC)

	loaded, err := svc.Load(passphrase)
	require.NoError(t, err)
	require.Equal(t, id.EdPub, loaded.EdPub)
	require.Equal(t, id.ExchangePriv, loaded.ExchangePriv)

	fp2, err := svc.Fingerprint(passphrase)
	require.NoError(t, err)
	require.Equal(t, fp, fp2)
}

func TestGenerate_WeakPassphrase(t *testing.T) {
	svc := newService(t)

	for _, weak := range []string{
		"",
		"short1!A",
		"alllowercaseandlong1!",
		"NOLOWERCASE1!",
		"NoDigitsHere!!",
		"NoSymbols1234",
	} {
		_, _, err := svc.Generate(weak)
		require.ErrorIs(t, err, identity.ErrWeakPassphrase, "passphrase %q", weak)
	}
}

func TestLink_RoundTrip(t *testing.T) {
	svc := newService(t)

	id, _, err := svc.Generate(passphrase)
	require.NoError(t, err)

	raw, err := svc.Link(passphrase, "alice")
	require.NoError(t, err)

	parsed, err := link.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, id.EdPub, parsed.SigningKey)
	require.Equal(t, id.ExchangePub, parsed.ExchangeKey)
	require.Equal(t, "alice", parsed.DisplayName)
}

func TestLink_RequiresName(t *testing.T) {
	svc := newService(t)
	_, _, err := svc.Generate(passphrase)
	require.NoError(t, err)

	_, err = svc.Link(passphrase, "")
	require.Error(t, err)
}
