package friends

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
	"clawdlink/internal/protocol/link"
	"clawdlink/internal/protocol/pairwise"
	"clawdlink/internal/relay"
)

// Service runs the friend-request handshake and peer messaging on top of the
// relay primitives. All mutating operations take the lock so a poll and an
// accept cannot interleave on the pending tables.
type Service struct {
	ids     domain.IdentityService
	friends domain.FriendStore
	pending domain.PendingStore
	seen    domain.SeenStore
	relay   domain.RelayClient

	now func() time.Time
	mu  sync.Mutex
}

// New returns a friend service over the given stores and relay.
func New(
	ids domain.IdentityService,
	friends domain.FriendStore,
	pending domain.PendingStore,
	seen domain.SeenStore,
	rc domain.RelayClient,
) *Service {
	return &Service{
		ids:     ids,
		friends: friends,
		pending: pending,
		seen:    seen,
		relay:   rc,
		now:     time.Now,
	}
}

// SendRequest parses a friend link, submits a signed friend request through
// the relay announcing the local agent as fromName, and records the outgoing
// pending entry. The link is validated in full before any network call.
func (s *Service) SendRequest(ctx context.Context, passphrase, fromName, rawLink, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fl, err := link.Parse(rawLink)
	if err != nil {
		return err
	}

	id, err := s.ids.Load(passphrase)
	if err != nil {
		return err
	}
	if fl.SigningKey == id.EdPub {
		return fmt.Errorf("%w: link points at the local identity", domain.ErrInvalidFriendLink)
	}

	if _, ok, err := s.friends.GetFriend(fl.SigningKey.Hex()); err != nil {
		return err
	} else if ok {
		return domain.ErrAlreadyFriends
	}

	if fromName == "" {
		return fmt.Errorf("sender display name required")
	}
	if _, err := s.relay.SendFriendRequest(ctx, id, fromName, fl.SigningKey, message); err != nil {
		return fmt.Errorf("send friend request: %w", err)
	}

	// Resending to the same peer just refreshes the pending entry; the peer
	// side deduplicates by request id, not by sender.
	return s.pending.SaveOutgoing(domain.PendingOutgoing{
		Name:        fl.DisplayName,
		SigningKey:  fl.SigningKey,
		ExchangeKey: fl.ExchangeKey,
		Message:     message,
		SentUTC:     s.now().Unix(),
	})
}

// ProcessIncoming performs one poll pass: it fetches pending friend requests
// and envelopes, verifies and classifies each, and updates local state.
//
// The pass is idempotent. Requests and envelopes already seen are skipped,
// so polling twice against a relay that re-serves its queue changes nothing.
// Verification failures never abort the pass; the offending item is skipped
// and counted, while store and transport errors are joined into the returned
// error alongside the partial Inbox.
func (s *Service) ProcessIncoming(ctx context.Context, passphrase string) (domain.Inbox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var inbox domain.Inbox

	id, err := s.ids.Load(passphrase)
	if err != nil {
		return inbox, err
	}

	var errs []error

	reqs, err := s.relay.FetchFriendRequests(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("fetch friend requests: %w", err))
	}
	for _, req := range reqs {
		if err := s.processRequest(id, req, &inbox); err != nil {
			errs = append(errs, err)
		}
	}

	envs, err := s.relay.PollMessages(ctx, id)
	if err != nil {
		errs = append(errs, fmt.Errorf("poll messages: %w", err))
	}
	for _, env := range envs {
		if err := s.processEnvelope(id, env, &inbox); err != nil {
			errs = append(errs, err)
		}
	}

	return inbox, errors.Join(errs...)
}

// processRequest validates one friend request and records it as pending
// incoming. Returns an error only for store failures; protocol-level
// rejections are logged and counted as skipped.
func (s *Service) processRequest(id domain.Identity, req domain.FriendRequestWire, inbox *domain.Inbox) error {
	first, err := s.seen.MarkSeen("req:" + string(req.ID))
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	from, err := domain.ParseEd25519PublicHex(req.From)
	if err != nil {
		log.WithField("request", req.ID).Warn("friend request with malformed sender key")
		inbox.Skipped++
		return nil
	}
	sig, err := hex.DecodeString(req.Signature)
	if err != nil || !crypto.VerifyEd25519(from, relay.RequestSigningPayload(req.From, req.To, req.FromName, req.Message), sig) {
		log.WithField("request", req.ID).Warn("friend request signature rejected")
		inbox.Skipped++
		return nil
	}
	if req.To != id.EdPub.Hex() {
		log.WithField("request", req.ID).Warn("friend request addressed to a different identity")
		inbox.Skipped++
		return nil
	}
	exchange, err := domain.ParseX25519PublicHex(req.FromExchangePublic)
	if err != nil {
		log.WithField("request", req.ID).Warn("friend request with malformed exchange key")
		inbox.Skipped++
		return nil
	}

	// A request from an existing friend carries no new information.
	if _, ok, err := s.friends.GetFriend(req.From); err != nil {
		return err
	} else if ok {
		return nil
	}

	p := domain.PendingIncoming{
		ID:          req.ID,
		Name:        req.FromName,
		SigningKey:  from,
		ExchangeKey: exchange,
		Message:     req.Message,
		ReceivedUTC: s.now().Unix(),
	}
	if err := s.pending.SaveIncoming(p); err != nil {
		return err
	}
	inbox.Requests = append(inbox.Requests, p)
	return nil
}

// processEnvelope attributes, verifies, and decrypts one envelope. The
// pairwise secret comes from the Friend record when one exists, or is derived
// from the outgoing pending entry when the envelope is the peer's acceptance.
func (s *Service) processEnvelope(id domain.Identity, env domain.Envelope, inbox *domain.Inbox) error {
	first, err := s.seen.MarkSeen("env:" + string(env.ID))
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	from, err := domain.ParseEd25519PublicHex(env.From)
	if err != nil {
		log.WithField("envelope", env.ID).Warn("envelope with malformed sender key")
		inbox.Skipped++
		return nil
	}
	sig, err := hex.DecodeString(env.Signature)
	if err != nil || !crypto.VerifyEd25519(from, env.Ciphertext, sig) {
		log.WithField("envelope", env.ID).Warn("envelope signature rejected")
		inbox.Skipped++
		return nil
	}
	nonce, err := domain.NonceFromSlice(env.Nonce)
	if err != nil {
		log.WithField("envelope", env.ID).Warn("envelope with malformed nonce")
		inbox.Skipped++
		return nil
	}

	if friend, ok, err := s.friends.GetFriend(env.From); err != nil {
		return err
	} else if ok {
		return s.openFromFriend(friend, from, env, nonce, inbox)
	}

	if out, ok, err := s.pending.GetOutgoing(env.From); err != nil {
		return err
	} else if ok {
		return s.openFromPending(id, out, env, nonce, inbox)
	}

	log.WithField("envelope", env.ID).Warn("envelope from unknown sender")
	inbox.Skipped++
	return nil
}

// openFromFriend decrypts an envelope from a connected friend.
func (s *Service) openFromFriend(friend domain.Friend, from domain.Ed25519Public, env domain.Envelope, nonce domain.Nonce, inbox *domain.Inbox) error {
	content, err := pairwise.Open(env.Ciphertext, nonce, friend.SharedSecret)
	if err != nil {
		log.WithField("envelope", env.ID).Warn("envelope failed to decrypt")
		inbox.Skipped++
		return nil
	}

	switch content.Type {
	case domain.ContentMessage:
		inbox.Messages = append(inbox.Messages, domain.DecryptedMessage{
			ID:             env.ID,
			SenderName:     friend.Name,
			SenderKey:      from,
			Content:        content,
			RelayTimestamp: env.Timestamp,
			ReceivedUTC:    s.now().Unix(),
		})
	case domain.ContentFriendAccept:
		// Duplicate acceptance from a friend that already converged.
	default:
		log.WithFields(log.Fields{"envelope": env.ID, "type": content.Type}).
			Warn("envelope with unknown content type")
		inbox.Skipped++
	}
	return nil
}

// openFromPending handles envelopes from a peer we sent a request to but
// have no Friend record for yet. Only a friend_accept converges the
// handshake; anything else from a non-friend is dropped.
func (s *Service) openFromPending(id domain.Identity, out domain.PendingOutgoing, env domain.Envelope, nonce domain.Nonce, inbox *domain.Inbox) error {
	secret, err := pairwise.Derive(id.ExchangePriv, out.ExchangeKey)
	if err != nil {
		return fmt.Errorf("derive secret for %s: %w", out.Name, err)
	}
	content, err := pairwise.Open(env.Ciphertext, nonce, secret)
	if err != nil {
		log.WithField("envelope", env.ID).Warn("envelope failed to decrypt")
		inbox.Skipped++
		return nil
	}
	if content.Type != domain.ContentFriendAccept {
		log.WithFields(log.Fields{"envelope": env.ID, "type": content.Type}).
			Warn("non-acceptance envelope from pending peer")
		inbox.Skipped++
		return nil
	}

	friend := domain.Friend{
		Name:         out.Name,
		SigningKey:   out.SigningKey,
		ExchangeKey:  out.ExchangeKey,
		SharedSecret: secret,
		Status:       domain.StatusConnected,
		AddedUTC:     s.now().Unix(),
	}
	if err := s.friends.SaveFriend(friend); err != nil {
		return err
	}
	if err := s.pending.RemoveOutgoing(env.From); err != nil {
		return err
	}
	inbox.Accepted = append(inbox.Accepted, friend)
	return nil
}

// AcceptRequest converges an incoming friend request: it derives the pairwise
// secret, sends the encrypted acceptance, and only then records the Friend
// and clears the pending entry. If the send fails the request stays pending
// and can be accepted again later.
func (s *Service) AcceptRequest(ctx context.Context, passphrase, idOrName string) (domain.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.ids.Load(passphrase)
	if err != nil {
		return domain.Friend{}, err
	}

	req, err := s.findIncoming(idOrName)
	if err != nil {
		return domain.Friend{}, err
	}

	secret, err := pairwise.Derive(id.ExchangePriv, req.ExchangeKey)
	if err != nil {
		return domain.Friend{}, fmt.Errorf("derive secret for %s: %w", req.Name, err)
	}

	ciphertext, nonce, err := pairwise.Seal(domain.Content{Type: domain.ContentFriendAccept}, secret)
	if err != nil {
		return domain.Friend{}, err
	}
	if _, _, err := s.relay.SendEnvelope(ctx, id, req.SigningKey, ciphertext, nonce); err != nil {
		return domain.Friend{}, fmt.Errorf("send acceptance: %w", err)
	}

	friend := domain.Friend{
		Name:         req.Name,
		SigningKey:   req.SigningKey,
		ExchangeKey:  req.ExchangeKey,
		SharedSecret: secret,
		Status:       domain.StatusConnected,
		AddedUTC:     s.now().Unix(),
	}
	if err := s.friends.SaveFriend(friend); err != nil {
		return domain.Friend{}, err
	}
	if err := s.pending.RemoveIncoming(req.ID); err != nil {
		return domain.Friend{}, err
	}
	return friend, nil
}

// findIncoming resolves a pending incoming request by exact id, then by
// case-insensitive sender name. Ambiguous names are an error rather than a
// guess.
func (s *Service) findIncoming(idOrName string) (domain.PendingIncoming, error) {
	if req, ok, err := s.pending.GetIncoming(domain.RequestID(idOrName)); err != nil {
		return domain.PendingIncoming{}, err
	} else if ok {
		return req, nil
	}

	all, err := s.pending.ListIncoming()
	if err != nil {
		return domain.PendingIncoming{}, err
	}
	var matches []domain.PendingIncoming
	for _, req := range all {
		if strings.EqualFold(req.Name, idOrName) {
			matches = append(matches, req)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.PendingIncoming{}, fmt.Errorf("%w: %q", domain.ErrRequestNotFound, idOrName)
	default:
		return domain.PendingIncoming{}, fmt.Errorf("%d pending requests match %q; accept by request id", len(matches), idOrName)
	}
}

// SendMessage encrypts body under the pairwise secret with the resolved
// friend and submits the signed envelope.
func (s *Service) SendMessage(ctx context.Context, passphrase, peer, body string, urgency domain.Urgency, msgContext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.ids.Load(passphrase)
	if err != nil {
		return err
	}
	friend, err := s.resolveFriend(peer)
	if err != nil {
		return err
	}
	if friend.Status != domain.StatusConnected {
		return fmt.Errorf("%w: %s", domain.ErrFriendNotConnected, friend.Name)
	}
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}

	ciphertext, nonce, err := pairwise.Seal(domain.Content{
		Type:    domain.ContentMessage,
		Body:    body,
		Urgency: urgency,
		Context: msgContext,
	}, friend.SharedSecret)
	if err != nil {
		return err
	}
	if _, _, err := s.relay.SendEnvelope(ctx, id, friend.SigningKey, ciphertext, nonce); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// resolveFriend matches peer against the friend list: exact signing-key hex
// first, then exact name (case-insensitive), then unique name substring.
func (s *Service) resolveFriend(peer string) (domain.Friend, error) {
	if f, ok, err := s.friends.GetFriend(peer); err != nil {
		return domain.Friend{}, err
	} else if ok {
		return f, nil
	}

	all, err := s.friends.ListFriends()
	if err != nil {
		return domain.Friend{}, err
	}
	for _, f := range all {
		if strings.EqualFold(f.Name, peer) {
			return f, nil
		}
	}

	var matches []domain.Friend
	lower := strings.ToLower(peer)
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Name), lower) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Friend{}, fmt.Errorf("%w: %q", domain.ErrFriendNotFound, peer)
	default:
		names := make([]string, len(matches))
		for i, f := range matches {
			names[i] = f.Name
		}
		return domain.Friend{}, fmt.Errorf("%q matches several friends (%s)", peer, strings.Join(names, ", "))
	}
}

// Friends lists connected friends.
func (s *Service) Friends() ([]domain.Friend, error) {
	return s.friends.ListFriends()
}

// IncomingRequests lists requests awaiting a local decision.
func (s *Service) IncomingRequests() ([]domain.PendingIncoming, error) {
	return s.pending.ListIncoming()
}

// OutgoingRequests lists requests awaiting the peer's acceptance.
func (s *Service) OutgoingRequests() ([]domain.PendingOutgoing, error) {
	return s.pending.ListOutgoing()
}

// Compile-time assertion that Service implements domain.FriendService.
var _ domain.FriendService = (*Service)(nil)
