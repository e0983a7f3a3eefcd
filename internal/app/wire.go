package app

import (
	"net/http"

	"clawdlink/internal/delivery"
	"clawdlink/internal/domain"
	"clawdlink/internal/relay"
	friendsvc "clawdlink/internal/services/friends"
	identitysvc "clawdlink/internal/services/identity"
	"clawdlink/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	IDs     domain.IdentityService
	Friends domain.FriendService
	Engine  *delivery.Engine
	Prefs   domain.PrefsStore
	Relay   domain.RelayClient
	HTTP    *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// File-based stores
	identityStore := store.NewIdentityFileStore(cfg.Home)
	friendStore := store.NewFriendFileStore(cfg.Home)
	pendingStore := store.NewPendingFileStore(cfg.Home)
	seenStore := store.NewSeenFileStore(cfg.Home)
	prefsStore := store.NewPrefsFileStore(cfg.Home)
	heldStore := store.NewHeldFileStore(cfg.Home)

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: relay.DefaultTimeout}
	}

	rc := relay.NewHTTP(cfg.RelayURL, httpClient)

	// High-level services
	identitySvc := identitysvc.New(identityStore)
	friendSvc := friendsvc.New(identitySvc, friendStore, pendingStore, seenStore, rc)
	engine := delivery.NewEngine(prefsStore, heldStore)

	return &Wire{
		IDs:     identitySvc,
		Friends: friendSvc,
		Engine:  engine,
		Prefs:   prefsStore,
		Relay:   rc,
		HTTP:    httpClient,
	}, nil
}
