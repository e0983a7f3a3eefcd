package link

import (
	"fmt"
	"net/url"
	"strings"

	"clawdlink/internal/domain"
)

const (
	// Scheme is the URI scheme for friend links.
	Scheme = "clawdlink"

	// signingKeyTag prefixes the signing key so the algorithm is explicit
	// in the link itself.
	signingKeyTag = "ed25519:"

	host = "add"
)

// Format renders the out-of-band friend link for an identity:
//
//	clawdlink://add?key=ed25519:<hex>&exchange=<hex>&name=<display name>
func Format(id domain.Identity, displayName string) string {
	q := url.Values{}
	q.Set("key", signingKeyTag+id.EdPub.Hex())
	q.Set("exchange", id.ExchangePub.Hex())
	q.Set("name", displayName)
	return fmt.Sprintf("%s://%s?%s", Scheme, host, q.Encode())
}

// Parse validates and decodes a friend link. All failures wrap
// domain.ErrInvalidFriendLink and occur before any network call.
func Parse(raw string) (domain.FriendLink, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return domain.FriendLink{}, fmt.Errorf("%w: %v", domain.ErrInvalidFriendLink, err)
	}
	if u.Scheme != Scheme {
		return domain.FriendLink{}, fmt.Errorf("%w: scheme %q", domain.ErrInvalidFriendLink, u.Scheme)
	}

	q := u.Query()
	keyParam := q.Get("key")
	if !strings.HasPrefix(keyParam, signingKeyTag) {
		return domain.FriendLink{}, fmt.Errorf("%w: missing %q algorithm tag", domain.ErrInvalidFriendLink, signingKeyTag)
	}
	signing, err := domain.ParseEd25519PublicHex(strings.TrimPrefix(keyParam, signingKeyTag))
	if err != nil {
		return domain.FriendLink{}, fmt.Errorf("%w: %v", domain.ErrInvalidFriendLink, err)
	}
	exchange, err := domain.ParseX25519PublicHex(q.Get("exchange"))
	if err != nil {
		return domain.FriendLink{}, fmt.Errorf("%w: %v", domain.ErrInvalidFriendLink, err)
	}
	name := q.Get("name")
	if name == "" {
		return domain.FriendLink{}, fmt.Errorf("%w: missing name", domain.ErrInvalidFriendLink)
	}

	return domain.FriendLink{
		SigningKey:  signing,
		ExchangeKey: exchange,
		DisplayName: name,
	}, nil
}
