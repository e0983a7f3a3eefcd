package relay

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"clawdlink/internal/crypto"
	"clawdlink/internal/domain"
)

// DefaultTimeout bounds each relay call. A timeout is the standard "relay
// unreachable" failure, not a protocol error.
const DefaultTimeout = 10 * time.Second

// HTTPClient talks JSON over HTTP to the untrusted relay.
type HTTPClient struct {
	Base string
	HTTP *http.Client

	now func() time.Time
}

// NewHTTP returns a relay client for base. A nil httpClient gets a client
// with DefaultTimeout.
func NewHTTP(base string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{Base: base, HTTP: httpClient, now: time.Now}
}

// SendEnvelope signs the ciphertext with the sender's signing key and posts
// the envelope. Sender and recipient keys travel as plaintext identifiers.
func (c *HTTPClient) SendEnvelope(ctx context.Context, from domain.Identity, to domain.Ed25519Public, ciphertext []byte, nonce domain.Nonce) (domain.EnvelopeID, int64, error) {
	sig := crypto.SignEd25519(from.EdPriv, ciphertext)
	env := domain.Envelope{
		From:       from.EdPub.Hex(),
		To:         to.Hex(),
		Ciphertext: ciphertext,
		Nonce:      nonce.Slice(),
		Signature:  hex.EncodeToString(sig),
	}

	var out struct {
		ID        domain.EnvelopeID `json:"id"`
		Timestamp int64             `json:"timestamp"`
	}
	if err := c.post(ctx, "/send", env, &out); err != nil {
		return "", 0, err
	}
	return out.ID, out.Timestamp, nil
}

// PollMessages fetches pending envelopes for id, authenticating with a
// signed freshness token.
func (c *HTTPClient) PollMessages(ctx context.Context, id domain.Identity) ([]domain.Envelope, error) {
	var out struct {
		Messages []domain.Envelope `json:"messages"`
	}
	if err := c.getSigned(ctx, "/poll", id, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// SendFriendRequest posts a plaintext-but-signed friend request. The
// signature binds (from, to, name, message) so the recipient can verify
// sender authenticity even though no shared secret exists yet.
func (c *HTTPClient) SendFriendRequest(ctx context.Context, from domain.Identity, fromName string, to domain.Ed25519Public, message string) (domain.RequestID, error) {
	fromHex := from.EdPub.Hex()
	toHex := to.Hex()
	sig := crypto.SignEd25519(from.EdPriv, RequestSigningPayload(fromHex, toHex, fromName, message))

	req := domain.FriendRequestWire{
		From:               fromHex,
		To:                 toHex,
		FromName:           fromName,
		FromExchangePublic: from.ExchangePub.Hex(),
		Message:            message,
		Signature:          hex.EncodeToString(sig),
	}

	var out struct {
		ID domain.RequestID `json:"id"`
	}
	if err := c.post(ctx, "/request", req, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// FetchFriendRequests fetches pending friend requests for id with the same
// signed-token auth as polling.
func (c *HTTPClient) FetchFriendRequests(ctx context.Context, id domain.Identity) ([]domain.FriendRequestWire, error) {
	var out struct {
		Requests []domain.FriendRequestWire `json:"requests"`
	}
	if err := c.getSigned(ctx, "/requests", id, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}

// CheckHealth probes the relay. Failures mean "relay offline", never a
// fatal condition for the local agent.
func (c *HTTPClient) CheckHealth(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// getSigned issues a GET carrying the signed freshness token headers.
func (c *HTTPClient) getSigned(ctx context.Context, path string, id domain.Identity, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	ts := c.now().Unix()
	sig := crypto.SignEd25519(id.EdPriv, PollToken(ts))
	req.Header.Set(HeaderIdentityKey, id.EdPub.Hex())
	req.Header.Set(HeaderTimestamp, fmt.Sprintf("%d", ts))
	req.Header.Set(HeaderSignature, hex.EncodeToString(sig))
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", req.URL.String()).Debug("relay call failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay %s %s: %s", req.Method, req.URL, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Compile-time assertion that HTTPClient implements domain.RelayClient.
var _ domain.RelayClient = (*HTTPClient)(nil)
