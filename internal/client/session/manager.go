package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/avesnin/inkpress-cli/internal/authx"
	"github.com/avesnin/inkpress-cli/internal/client/api"
	"github.com/avesnin/inkpress-cli/internal/client/models"
	"github.com/avesnin/inkpress-cli/internal/client/store"
	"github.com/avesnin/inkpress-cli/internal/logging"
)

// API is the slice of the backend client the Manager depends on.
// CurrentUser and UpdateProfile take the token explicitly because both run
// with a token that may not be persisted yet.
type API interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, username, email, password string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, token string, upd models.UserUpdate) (*models.User, error)
}

// Manager is the sole authority over session state.
//
// It hydrates synchronously from the store on construction, runs the
// login/register/logout/profile flows, and mirrors every successful
// mutation back to the store. Operations are not serialized against each
// other; each state commit is atomic, and when operations overlap the last
// one to finish wins.
type Manager struct {
	mu  sync.Mutex
	cur Session

	store store.Repository
	api   API
	log   logging.Logger
	now   func() time.Time
}

// NewManager builds a Manager and hydrates it from the store before
// returning. Hydration never touches the network: stored token and user
// both present (and the token not expired) means authenticated; anything
// else means anonymous.
func NewManager(ctx context.Context, repo store.Repository, backend API, log logging.Logger) *Manager {
	m := &Manager{store: repo, api: backend, log: log, now: time.Now}
	m.hydrate(ctx)
	return m
}

func (m *Manager) hydrate(ctx context.Context) {
	creds, err := m.store.Load(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to load stored credentials", "err", err)
		return
	}

	if creds.Token == "" && creds.User == nil {
		return
	}

	// Half-present credentials cannot become a valid session; resolve the
	// pair to both-absent.
	if creds.Token == "" || creds.User == nil {
		m.log.Warn(ctx, "incomplete stored credentials, clearing")
		m.clearStore(ctx)
		return
	}

	if authx.Expired(creds.Token, m.now()) {
		m.log.Info(ctx, "stored token has expired, starting anonymous")
		m.clearStore(ctx)
		return
	}

	m.mu.Lock()
	m.cur.Token = creds.Token
	m.cur.User = creds.User
	m.mu.Unlock()
	m.log.Info(ctx, "session hydrated", "username", creds.User.Username)
}

// Current returns a snapshot of the session. The snapshot is a copy; it
// does not change under the caller.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

func (m *Manager) begin() {
	m.mu.Lock()
	m.cur.Loading = true
	m.cur.Error = ""
	m.mu.Unlock()
}

// fail records err in the observable state and returns it, keeping the
// dual error channel: the field for passive display, the return value for
// active handling.
func (m *Manager) fail(err error) error {
	m.mu.Lock()
	m.cur.Loading = false
	m.cur.Error = err.Error()
	m.mu.Unlock()
	return err
}

func (m *Manager) commit(token string, user *models.User) {
	m.mu.Lock()
	m.cur = Session{User: user, Token: token}
	m.mu.Unlock()
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored credentials", "err", err)
	}
}

// Login authenticates with the backend and, on success, persists and
// exposes the new identity. On failure the session stays anonymous, the
// store is untouched, and the error is both recorded and returned.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.begin()
	if strings.TrimSpace(username) == "" || password == "" {
		return m.fail(ErrMissingCredentials)
	}

	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		return m.fail(err)
	}

	user := resp.User
	if user == nil {
		// Backend omitted the embedded record; fetch it with the fresh token.
		user, err = m.api.CurrentUser(ctx, resp.AccessToken)
		if err != nil {
			return m.fail(err)
		}
	}

	if err := m.store.Save(ctx, resp.AccessToken, user); err != nil {
		return m.fail(err)
	}

	m.commit(resp.AccessToken, user)
	m.log.Info(ctx, "login successful", "username", user.Username)
	return nil
}

// Register creates the account and then runs the full Login flow with the
// same credentials; registration by itself never authenticates.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	m.begin()
	if strings.TrimSpace(username) == "" || password == "" {
		return m.fail(ErrMissingCredentials)
	}
	if strings.TrimSpace(email) == "" {
		return m.fail(ErrMissingEmail)
	}

	if err := m.api.Register(ctx, username, email, password); err != nil {
		return m.fail(err)
	}

	return m.Login(ctx, username, password)
}

// Logout clears the store and the in-memory session. It cannot fail and is
// idempotent; a store error is logged and the in-memory reset proceeds.
func (m *Manager) Logout(ctx context.Context) {
	m.clearStore(ctx)
	m.mu.Lock()
	m.cur = Session{}
	m.mu.Unlock()
	m.log.Info(ctx, "logged out")
}

// UpdateProfile patches the signed-in user's profile and shallow-merges the
// backend's answer over the current record, so fields the backend omitted
// survive. On failure the user record is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, upd models.UserUpdate) error {
	snap := m.Current()
	if !snap.Authenticated() {
		return m.fail(ErrNotAuthenticated)
	}

	m.begin()
	updated, err := m.api.UpdateProfile(ctx, snap.User.ID, snap.Token, upd)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			m.expire(ctx)
		}
		return m.fail(err)
	}

	merged := models.Merge(*snap.User, *updated)
	if err := m.store.Save(ctx, snap.Token, &merged); err != nil {
		return m.fail(err)
	}

	m.commit(snap.Token, &merged)
	m.log.Info(ctx, "profile updated", "username", merged.Username)
	return nil
}

// HandleAuthError resets the session when err says the backend no longer
// accepts our token. Callers route errors from authenticated non-session
// calls (post mutations) through here so a revoked or expired token logs
// the user out everywhere. Returns true when the session was reset.
func (m *Manager) HandleAuthError(ctx context.Context, err error) bool {
	if err == nil || !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	if !m.Current().Authenticated() {
		return false
	}
	m.expire(ctx)
	return true
}

// expire is the forced Authenticated → Anonymous transition: storage and
// state are cleared together.
func (m *Manager) expire(ctx context.Context) {
	m.clearStore(ctx)
	m.mu.Lock()
	m.cur = Session{}
	m.mu.Unlock()
	m.log.Warn(ctx, "credential rejected by backend, session reset")
}
