package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/events"
	"github.com/gigit/web/internal/repository"
)

// ErrNotAuthenticated is returned when an operation needs a bearer token and
// the session holds none.
var ErrNotAuthenticated = errors.New("session not authenticated")

// Backend is the subset of the REST API the session manager drives.
type Backend interface {
	Login(ctx context.Context, creds domain.LoginData) (domain.AuthResult, error)
	Register(ctx context.Context, data domain.SignUpData) (domain.AuthResult, error)
	Profile(ctx context.Context, token string) (domain.User, error)
	VerifyEmail(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, patch domain.ProfilePatch) (*domain.User, error)
	DeleteProfile(ctx context.Context, token, id string) error
}

// Dependencies bundles collaborators shared by every Manager.
type Dependencies struct {
	Backend    Backend
	Tokens     repository.TokenStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// Manager holds the auth state of one browser session. Side effects happen
// in the exported methods; state changes only through Reduce.
type Manager struct {
	sessionID  string
	backend    Backend
	tokens     repository.TokenStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.Mutex
	state State
	token string
}

// NewManager builds a Manager for the given session id.
func NewManager(sessionID string, deps Dependencies) *Manager {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessionID:  sessionID,
		backend:    deps.Backend,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		logger:     logger.With(zap.String("session_id", sessionID)),
		now:        now,
	}
}

// SessionID returns the browser session this manager belongs to.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// State returns a snapshot of the current auth state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.User = cloneUser(s.User)
	return s
}

// Dispatch applies an action to the state.
func (m *Manager) Dispatch(action Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, action)
}

// Initialize hydrates the session from a persisted token. It never fails:
// problems are logged and the session stays signed out, and the state is
// always marked initialized on return.
func (m *Manager) Initialize(ctx context.Context) {
	defer m.Dispatch(Action{Type: ActionInitial})

	token, err := m.tokens.Get(ctx, m.sessionID, domain.TokenStorageKey)
	if err != nil {
		if !errors.Is(err, repository.ErrTokenNotFound) {
			m.logger.Warn("read persisted token", zap.Error(err))
		}
		return
	}

	if TokenExpired(token, m.now()) {
		m.logger.Debug("persisted token expired")
		m.dropToken(ctx)
		return
	}

	user, err := m.backend.Profile(ctx, token)
	if err != nil {
		m.logger.Warn("hydrate session profile", zap.Error(err))
		if backend.IsUnauthorized(err) {
			m.dropToken(ctx)
		}
		return
	}

	m.setToken(token)
	m.Dispatch(Login(user))
}

// Login authenticates with the backend and persists the returned token.
func (m *Manager) Login(ctx context.Context, creds domain.LoginData) error {
	res, err := m.backend.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := m.storeToken(ctx, res.Token); err != nil {
		return err
	}
	m.Dispatch(Login(res.User))
	m.publish(ctx, events.EventSessionLogin, res.User.ID, nil)
	return nil
}

// SignUp registers a new account and signs it in.
func (m *Manager) SignUp(ctx context.Context, data domain.SignUpData) error {
	res, err := m.backend.Register(ctx, data)
	if err != nil {
		return err
	}
	if err := m.storeToken(ctx, res.Token); err != nil {
		return err
	}
	m.Dispatch(SignUp(res.User))
	m.publish(ctx, events.EventSessionSignUp, res.User.ID, nil)
	return nil
}

// VerifyEmail confirms the emailed token, persists it and loads the profile.
func (m *Manager) VerifyEmail(ctx context.Context, token string) error {
	if err := m.backend.VerifyEmail(ctx, token); err != nil {
		return err
	}
	if err := m.storeToken(ctx, token); err != nil {
		return err
	}
	user, err := m.backend.Profile(ctx, token)
	if err != nil {
		return err
	}
	m.Dispatch(Login(user))
	m.publish(ctx, events.EventEmailVerified, user.ID, nil)
	return nil
}

// UpdateProfile sends the changed fields and merges them into the session
// user. It is a no-op when no user is loaded.
func (m *Manager) UpdateProfile(ctx context.Context, patch domain.ProfilePatch) error {
	current := m.State().User
	if current == nil {
		return nil
	}
	token, err := m.bearer(ctx)
	if err != nil {
		return err
	}
	if _, err := m.backend.UpdateProfile(ctx, token, patch); err != nil {
		return err
	}
	m.Dispatch(UpdateProfile(patch))
	m.publish(ctx, events.EventProfileUpdated, current.ID, events.ProfileUpdatedPayload{Fields: patch.Fields()})
	return nil
}

// DeleteProfile removes the freelancer profile and clears the session user.
func (m *Manager) DeleteProfile(ctx context.Context, userID string) error {
	token, err := m.bearer(ctx)
	if err != nil {
		return err
	}
	if err := m.backend.DeleteProfile(ctx, token, userID); err != nil {
		return err
	}
	m.Dispatch(Action{Type: ActionDeleteProfile})
	m.publish(ctx, events.EventProfileDeleted, userID, nil)
	return nil
}

// Logout forgets the persisted token and signs the session out.
func (m *Manager) Logout(ctx context.Context) error {
	var userID string
	if u := m.State().User; u != nil {
		userID = u.ID
	}
	if err := m.tokens.Delete(ctx, m.sessionID, domain.TokenStorageKey); err != nil {
		return err
	}
	m.setToken("")
	m.Dispatch(Action{Type: ActionLogout})
	m.publish(ctx, events.EventSessionLogout, userID, nil)
	return nil
}

func (m *Manager) storeToken(ctx context.Context, token string) error {
	if err := m.tokens.Set(ctx, m.sessionID, domain.TokenStorageKey, token); err != nil {
		return err
	}
	m.setToken(token)
	return nil
}

func (m *Manager) dropToken(ctx context.Context) {
	if err := m.tokens.Delete(ctx, m.sessionID, domain.TokenStorageKey); err != nil {
		m.logger.Warn("delete persisted token", zap.Error(err))
	}
}

func (m *Manager) setToken(token string) {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
}

func (m *Manager) bearer(ctx context.Context) (string, error) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token != "" {
		return token, nil
	}

	token, err := m.tokens.Get(ctx, m.sessionID, domain.TokenStorageKey)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return "", ErrNotAuthenticated
	}
	if err != nil {
		return "", err
	}
	m.setToken(token)
	return token, nil
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if m.dispatcher == nil {
		return
	}
	event := events.Event{
		Type:      eventType,
		SessionID: m.sessionID,
		UserID:    userID,
		Timestamp: m.now().UTC(),
		Payload:   payload,
	}
	if err := m.dispatcher.Publish(ctx, event); err != nil {
		m.logger.Warn("publish session event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
