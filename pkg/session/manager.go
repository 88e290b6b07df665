package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jwill9999/authclient/pkg/apiclient"
	"github.com/jwill9999/authclient/pkg/credential"
)

// Manager owns the client-side session: the access token mirror, the user
// profile and the readiness flag. It restores the session on start from
// the long-lived refresh cookie, renews the token on a timer while a
// session is held, and drives the login, register, logout and
// provider-callback transitions.
//
// The credential store is only ever written by the API client (on renewal
// and login/register success) and by this manager (on every clearing
// transition); no other component mutates it.
type Manager struct {
	api    API
	creds  *credential.Store
	store  ProfileStore
	cfg    Config
	logger *slog.Logger

	mu          sync.Mutex
	token       string
	user        *apiclient.User
	ready       bool
	stopRefresh chan struct{}

	startOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a session manager driving the given API surface. The
// credential store must be the same instance the API client writes to.
func New(api API, creds *credential.Store, opts ...Option) *Manager {
	if api == nil || creds == nil {
		// Fail fast on misconfiguration: nothing works without these two
		panic("session: api and credential store are required")
	}

	m := &Manager{
		api:    api,
		creds:  creds,
		cfg:    DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore()
	}

	return m
}

// Start restores the session from the long-lived refresh cookie. It runs
// the restoration at most once per manager lifetime and always leaves the
// manager ready, whether or not a session could be restored.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.restore(ctx)
	})
}

func (m *Manager) restore(ctx context.Context) {
	defer m.markReady()

	res := m.api.RefreshDetailed(ctx)
	if res.Outcome != apiclient.OutcomeSuccess || res.Token == "" {
		m.logger.DebugContext(ctx, "no session to restore", "outcome", string(res.Outcome))
		return
	}

	user := m.loadStoredProfile(ctx)

	m.mu.Lock()
	m.token = res.Token
	m.user = user
	m.armRefreshLocked()
	m.mu.Unlock()
}

// loadStoredProfile reads the durable profile record. Malformed or
// incomplete records are discarded rather than blocking restoration.
func (m *Manager) loadStoredProfile(ctx context.Context) *apiclient.User {
	user, err := m.store.Load(ctx)
	switch {
	case err == nil && validProfile(user):
		return user
	case errors.Is(err, ErrProfileNotFound):
		return nil
	default:
		if err := m.store.Delete(ctx); err != nil {
			m.logger.WarnContext(ctx, "failed to remove malformed profile record", "error", err)
		}
		return nil
	}
}

func validProfile(user *apiclient.User) bool {
	return user != nil && user.Email != ""
}

// Login signs in with email and password. A nil return means the session
// is established; a non-nil error carries a message suitable for display.
// The login endpoint writes the credential store as a side effect; Login
// refuses to report success when no usable access token resulted.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	token, ok := m.creds.Get()
	if !ok {
		return ErrMissingAccessToken
	}

	user := resp.User
	if user == nil {
		user = &apiclient.User{Email: email}
	}

	m.adoptSession(ctx, token, user)
	return nil
}

// Register creates an account. Some backends also issue an access token on
// registration; when one is present the session is hydrated exactly as for
// Login, otherwise registration still succeeds and the user signs in
// separately.
func (m *Manager) Register(ctx context.Context, email, password, name string) error {
	resp, err := m.api.Register(ctx, email, password, name)
	if err != nil {
		return err
	}

	token, ok := m.creds.Get()
	if !ok {
		return nil
	}

	user := resp.User
	if user == nil {
		user = &apiclient.User{Email: email, Name: strings.TrimSpace(name)}
	}

	m.adoptSession(ctx, token, user)
	return nil
}

// adoptSession installs a credential-bearing session and persists the
// profile. Persistence is best effort: the in-memory session stands even
// when the durable write fails.
func (m *Manager) adoptSession(ctx context.Context, token string, user *apiclient.User) {
	m.mu.Lock()
	m.token = token
	m.user = user
	m.armRefreshLocked()
	m.mu.Unlock()

	if err := m.store.Save(ctx, user); err != nil {
		m.logger.WarnContext(ctx, "failed to persist profile record", "error", err)
	}
}

// Logout revokes the server session and clears all local session state.
// Revocation is best effort: a transport failure is logged, never surfaced.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to revoke server session during logout", "error", err)
	}
	m.clearSession(ctx)
}

// LogoutAll revokes every server session for the user, then clears local
// state the same way Logout does.
func (m *Manager) LogoutAll(ctx context.Context) {
	if err := m.api.LogoutAll(ctx); err != nil {
		m.logger.ErrorContext(ctx, "failed to revoke server sessions during logout-all", "error", err)
	}
	m.clearSession(ctx)
}

// CompleteProviderLogin finishes the external identity-provider flow after
// the browser returns to the callback entry point. providerErr is the
// error the provider appended to the redirect, blank when the upstream
// flow succeeded. The manager becomes ready either way.
func (m *Manager) CompleteProviderLogin(ctx context.Context, providerErr string) error {
	defer m.markReady()

	if providerErr != "" {
		m.logger.WarnContext(ctx, "identity provider reported an error", "error", providerErr)
		return ErrProviderLogin
	}

	res := m.api.RefreshDetailed(ctx)
	if res.Outcome != apiclient.OutcomeSuccess || res.Token == "" {
		return ErrProviderLogin
	}

	m.mu.Lock()
	m.token = res.Token
	m.armRefreshLocked()
	m.mu.Unlock()

	// Profile is best effort: the session stands even when the fetch fails.
	if user := m.fetchProfile(ctx); user != nil {
		m.mu.Lock()
		m.user = user
		m.mu.Unlock()
		if err := m.store.Save(ctx, user); err != nil {
			m.logger.WarnContext(ctx, "failed to persist profile record", "error", err)
		}
	}

	return nil
}

// fetchProfile pulls the profile through the authenticated gateway and
// keeps it only when well-formed. The endpoint returns an arbitrary JSON
// object; some backends nest the profile under a "user" field.
func (m *Manager) fetchProfile(ctx context.Context) *apiclient.User {
	data, err := m.api.GetProfile(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to fetch profile after provider login", "error", err)
		return nil
	}

	if nested, ok := data["user"].(map[string]any); ok {
		data = nested
	}

	user := &apiclient.User{}
	if v, ok := data["id"].(string); ok {
		user.ID = v
	}
	if v, ok := data["email"].(string); ok {
		user.Email = v
	}
	if v, ok := data["name"].(string); ok {
		user.Name = v
	}

	if !validProfile(user) {
		return nil
	}
	return user
}

// GoogleLoginURL returns the identity-provider entry URL. Navigating there
// is the consumer's concern, not a state transition of this manager.
func (m *Manager) GoogleLoginURL() string {
	return m.api.GoogleLoginURL()
}

// State returns a point-in-time snapshot of the session.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := State{Token: m.token, Ready: m.ready}
	if m.user != nil {
		userCopy := *m.user
		st.User = &userCopy
	}
	return st
}

// Ready reports whether the first restoration attempt has settled.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}

// Token returns the mirrored access token, empty when anonymous.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// CurrentUser returns a copy of the adopted profile, if any.
func (m *Manager) CurrentUser() *apiclient.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	userCopy := *m.user
	return &userCopy
}

// Close stops the periodic renewal loop. Session state is left untouched.
func (m *Manager) Close() {
	m.mu.Lock()
	m.disarmRefreshLocked()
	m.mu.Unlock()
	m.wg.Wait()
}

// markReady flips the monotonic readiness flag. It never reverts.
func (m *Manager) markReady() {
	m.mu.Lock()
	m.ready = true
	m.mu.Unlock()
}

// clearSession tears down the credential, profile, durable record and the
// renewal timer in one transition.
func (m *Manager) clearSession(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.disarmRefreshLocked()
	m.mu.Unlock()

	m.creds.Clear()
	if err := m.store.Delete(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to remove durable profile record", "error", err)
	}
}

// armRefreshLocked starts the periodic renewal loop if it is not already
// running. Callers must hold m.mu.
func (m *Manager) armRefreshLocked() {
	if m.stopRefresh != nil || m.cfg.RefreshInterval <= 0 {
		return
	}

	stop := make(chan struct{})
	m.stopRefresh = stop
	m.wg.Add(1)
	go m.refreshLoop(stop)
}

// disarmRefreshLocked stops the periodic renewal loop so no further ticks
// fire for a session that no longer exists. Callers must hold m.mu.
func (m *Manager) disarmRefreshLocked() {
	if m.stopRefresh == nil {
		return
	}
	close(m.stopRefresh)
	m.stopRefresh = nil
}

func (m *Manager) refreshLoop(stop chan struct{}) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.refreshTick()
		}
	}
}

// refreshTick runs one proactive renewal. Transient failures leave a valid
// session untouched; only an unauthorized outcome destroys it.
func (m *Manager) refreshTick() {
	ctx := context.Background()

	res := m.api.RefreshDetailed(ctx)
	switch res.Outcome {
	case apiclient.OutcomeSuccess:
		m.mu.Lock()
		m.token = res.Token
		m.mu.Unlock()
	case apiclient.OutcomeUnauthorized:
		m.logger.Warn("session renewal unauthorized, clearing session", "status", res.StatusCode)
		m.clearSession(ctx)
	default:
		m.logger.Debug("session renewal failed transiently",
			"outcome", string(res.Outcome), "status", res.StatusCode)
	}
}
