// Package session owns the client's authentication state: the persisted
// bearer token, the current identity, and the sign-in/sign-up/sign-out
// lifecycle. It is the only writer of the token store and the profile cache.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/circleapp/circle-client/client"
	"github.com/circleapp/circle-client/logging"
	"github.com/circleapp/circle-client/profile"
	"github.com/circleapp/circle-client/tokenstore"
)

// ErrNotAuthenticated is returned by operations that require an
// authenticated session.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Manager drives the session state machine
// Uninitialized → Initializing → Anonymous | Authenticated; the two ready
// states are re-enterable via sign-in and sign-out.
//
// A Manager lives for the whole process and is meant to be injected into
// whatever scope needs it; it is not safe for concurrent use, matching the
// single event-loop model of the consuming UI. Initialize must be called
// exactly once at startup; re-invocation is a caller error.
type Manager struct {
	store    tokenstore.Store
	api      client.Client
	profiles *profile.Cache
	log      logging.Logger

	state    State
	identity Identity
	demoMode bool
	now      func() time.Time
}

func NewManager(store tokenstore.Store, api client.Client, profiles *profile.Cache, log logging.Logger) *Manager {
	return &Manager{
		store:    store,
		api:      api,
		profiles: profiles,
		log:      log.With("component", "session"),
		state:    StateUninitialized,
		now:      time.Now,
	}
}

func (m *Manager) State() State       { return m.state }
func (m *Manager) Identity() Identity { return m.identity }
func (m *Manager) InDemoMode() bool   { return m.demoMode }

func (m *Manager) IsAuthenticated() bool {
	return m.state == StateAuthenticated && m.identity.IsReal()
}

// Initialize restores the persisted session, if any. Any failure resolves
// to the anonymous state and is logged only: an unauthenticated start is a
// valid outcome for the app shell, never a crash. With no stored token the
// method settles without any network call.
func (m *Manager) Initialize(ctx context.Context) {
	m.state = StateInitializing

	token, err := m.store.Load(ctx)
	if err != nil {
		// Storage failure reads as "no session".
		m.log.Warn(ctx, "token load failed", "error", err)
		m.becomeAnonymous()
		return
	}
	if token == "" {
		m.becomeAnonymous()
		return
	}

	if tokenExpired(token, m.now()) {
		m.log.Info(ctx, "stored token expired, skipping restore")
		_ = m.store.Clear(ctx)
		m.becomeAnonymous()
		return
	}

	m.api.SetToken(token)
	p, err := m.api.GetMe(ctx)
	if err != nil {
		// A rejected token can never succeed later; drop it. Transport
		// failures keep it so the next launch can retry.
		if errors.Is(err, client.ErrUnauthorized) {
			_ = m.store.Clear(ctx)
		}
		m.api.SetToken("")
		m.log.Warn(ctx, "session restore failed", "error", err)
		m.becomeAnonymous()
		return
	}

	m.identity = RealIdentity(p.ID(), p.Email())
	m.profiles.Put(p)
	m.state = StateAuthenticated
	m.log.Info(ctx, "session restored", "user_id", m.identity.ID())
}

// SignUp registers a new account and returns the created identity and
// token. It deliberately does not authenticate the current session: the
// user re-enters credentials on the login screen.
func (m *Manager) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*client.AuthResult, error) {
	res, err := m.api.Register(ctx, email, password, metadata)
	if err != nil {
		return nil, err
	}
	m.log.Info(ctx, "account registered", "user_id", res.User.ID())
	return res, nil
}

// SignIn authenticates, persists the token, and moves the session to the
// authenticated state. On failure the prior state is untouched.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	m.api.SetToken(res.Token)
	if err := m.store.Save(ctx, res.Token); err != nil {
		// The in-memory session stays valid; only restore-after-restart
		// is affected.
		m.log.Error(ctx, "token persist failed", "error", err)
	}

	m.identity = RealIdentity(res.User.ID(), res.User.Email())
	m.demoMode = false
	m.profiles.Put(res.User)
	m.state = StateAuthenticated
	m.log.Info(ctx, "signed in", "user_id", m.identity.ID())
	return nil
}

// SignOut ends the session. The remote logout is best effort: local
// cleanup proceeds unconditionally because the user-visible contract is
// "I am logged out" regardless of server reachability.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.Warn(ctx, "remote logout failed, clearing locally anyway", "error", err)
	}

	m.api.SetToken("")
	clearErr := m.store.Clear(ctx)
	m.profiles.Invalidate()
	m.becomeAnonymous()
	m.log.Info(ctx, "signed out")
	return clearErr
}

// UpdateProfile patches the authenticated user's profile and refreshes the
// cached copy.
func (m *Manager) UpdateProfile(ctx context.Context, patch client.Profile) (client.Profile, error) {
	if !m.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	updated, err := m.api.UpdateMe(ctx, patch)
	if err != nil {
		return nil, err
	}

	m.identity = RealIdentity(updated.ID(), updated.Email())
	m.profiles.Put(updated)
	return updated, nil
}

// EnterDemo switches an unauthenticated session to the demo identity so
// the user can browse with all mutations disabled.
func (m *Manager) EnterDemo() {
	m.identity = DemoIdentity()
	m.demoMode = true
	m.state = StateAnonymous
}

func (m *Manager) becomeAnonymous() {
	m.identity = Anonymous()
	m.demoMode = false
	m.state = StateAnonymous
}
