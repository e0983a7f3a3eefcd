package identity

import (
	"fmt"
	"time"
	"unicode"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
	"clawdlink/internal/protocol/link"
)

const (
	// minPassphraseLength defines the minimum number of characters required
	// for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service manages identity key creation and access using a backing store.
//
// The identity contains:
//   - Ed25519 key pair for signing (envelopes, friend requests, poll tokens).
//   - X25519 exchange key pair derived from the signing key, used only for
//     Diffie-Hellman with friends.
type Service struct {
	store domain.IdentityStore
}

// New returns an identity service backed by the given store.
func New(s domain.IdentityStore) *Service { return &Service{store: s} }

// Generate creates a new identity, saves it encrypted with the passphrase,
// and returns the identity plus a short fingerprint of the signing public key.
func (s *Service) Generate(passphrase string) (domain.Identity, domain.Fingerprint, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.Identity{}, "", ErrWeakPassphrase
	}

	signingPrivateKey, signingPublicKey, err := crypto.GenerateEd25519()
	if err != nil {
		return domain.Identity{}, "", err
	}
	// The exchange pair is a pure function of the signing key, so it never
	// needs separate rotation or backup.
	exchangePrivateKey, exchangePublicKey, err := crypto.DeriveExchangeKeypair(signingPrivateKey)
	if err != nil {
		return domain.Identity{}, "", err
	}

	id := domain.Identity{
		EdPub:        signingPublicKey,
		EdPriv:       signingPrivateKey,
		ExchangePub:  exchangePublicKey,
		ExchangePriv: exchangePrivateKey,
		CreatedUTC:   time.Now().Unix(),
	}
	if err := s.store.SaveIdentity(passphrase, id); err != nil {
		return domain.Identity{}, "", err
	}
	return id, domain.Fingerprint(crypto.Fingerprint(id.EdPub.Slice())), nil
}

// Load decrypts and returns the local identity.
func (s *Service) Load(passphrase string) (domain.Identity, error) {
	return s.store.LoadIdentity(passphrase)
}

// Fingerprint returns a short fingerprint of the local signing public key.
func (s *Service) Fingerprint(passphrase string) (domain.Fingerprint, error) {
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return domain.Fingerprint(crypto.Fingerprint(id.EdPub.Slice())), nil
}

// Link renders the out-of-band friend link for the local identity.
func (s *Service) Link(passphrase, displayName string) (string, error) {
	if displayName == "" {
		return "", fmt.Errorf("display name required")
	}
	id, err := s.store.LoadIdentity(passphrase)
	if err != nil {
		return "", err
	}
	return link.Format(id, displayName), nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
