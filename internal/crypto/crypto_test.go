package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
)

func TestDeriveExchangeKeypair_Deterministic(t *testing.T) {
	priv, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	xPriv1, xPub1, err := crypto.DeriveExchangeKeypair(priv)
	require.NoError(t, err)
	xPriv2, xPub2, err := crypto.DeriveExchangeKeypair(priv)
	require.NoError(t, err)

	require.Equal(t, xPriv1, xPriv2, "exchange private must be a pure function of the signing secret")
	require.Equal(t, xPub1, xPub2)
}

func TestDeriveSharedSecret_Symmetry(t *testing.T) {
	aSign, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)
	bSign, _, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	aPriv, aPub, err := crypto.DeriveExchangeKeypair(aSign)
	require.NoError(t, err)
	bPriv, bPub, err := crypto.DeriveExchangeKeypair(bSign)
	require.NoError(t, err)

	ab, err := crypto.DeriveSharedSecret(aPriv, bPub)
	require.NoError(t, err)
	ba, err := crypto.DeriveSharedSecret(bPriv, aPub)
	require.NoError(t, err)

	require.Equal(t, ab, ba, "shared secrets must be bit-identical on both sides")
	require.NotEqual(t, domain.SharedSecret{}, ab)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	var key domain.SharedSecret
	key[0] = 7

	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)

	plaintext := []byte(`{"type":"message","body":"hello"}`)
	ct := crypto.EncryptSymmetric(plaintext, nonce, key)

	got, err := crypto.DecryptSymmetric(ct, nonce, key)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	var key domain.SharedSecret
	key[3] = 42

	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)
	ct := crypto.EncryptSymmetric([]byte("payload"), nonce, key)

	for i := range ct {
		flipped := append([]byte(nil), ct...)
		flipped[i] ^= 0x01
		_, err := crypto.DecryptSymmetric(flipped, nonce, key)
		require.ErrorIs(t, err, domain.ErrDecryptionFailed, "flipping ciphertext byte %d must fail", i)
	}
}

func TestDecrypt_TamperedNonce(t *testing.T) {
	var key domain.SharedSecret
	key[9] = 1

	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)
	ct := crypto.EncryptSymmetric([]byte("payload"), nonce, key)

	for i := range nonce {
		bad := nonce
		bad[i] ^= 0x80
		_, err := crypto.DecryptSymmetric(ct, bad, key)
		require.ErrorIs(t, err, domain.ErrDecryptionFailed, "flipping nonce byte %d must fail", i)
	}
}

func TestDecrypt_WrongPeerSecret(t *testing.T) {
	// Three identities. A encrypts for B; the secret A shares with C must
	// not open it, and must fail cleanly rather than return garbage.
	aSign, _, _ := crypto.GenerateEd25519()
	bSign, _, _ := crypto.GenerateEd25519()
	cSign, _, _ := crypto.GenerateEd25519()

	aPriv, _, err := crypto.DeriveExchangeKeypair(aSign)
	require.NoError(t, err)
	_, bPub, err := crypto.DeriveExchangeKeypair(bSign)
	require.NoError(t, err)
	_, cPub, err := crypto.DeriveExchangeKeypair(cSign)
	require.NoError(t, err)

	abSecret, err := crypto.DeriveSharedSecret(aPriv, bPub)
	require.NoError(t, err)
	acSecret, err := crypto.DeriveSharedSecret(aPriv, cPub)
	require.NoError(t, err)

	nonce, err := crypto.GenerateNonce()
	require.NoError(t, err)
	ct := crypto.EncryptSymmetric([]byte("for b only"), nonce, abSecret)

	_, err = crypto.DecryptSymmetric(ct, nonce, acSecret)
	require.ErrorIs(t, err, domain.ErrDecryptionFailed)
}

func TestSignVerify(t *testing.T) {
	priv, pub, err := crypto.GenerateEd25519()
	require.NoError(t, err)

	msg := []byte("poll:1700000000")
	sig := crypto.SignEd25519(priv, msg)
	require.True(t, crypto.VerifyEd25519(pub, msg, sig))
	require.False(t, crypto.VerifyEd25519(pub, []byte("poll:1700000001"), sig))

	sig[0] ^= 0xff
	require.False(t, crypto.VerifyEd25519(pub, msg, sig))
}
