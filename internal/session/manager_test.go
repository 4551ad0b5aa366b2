package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigit/web/internal/backend"
	"github.com/gigit/web/internal/domain"
	"github.com/gigit/web/internal/events"
	"github.com/gigit/web/internal/repository"
)

type fakeBackend struct {
	user       domain.User
	token      string
	loginErr   error
	profileErr error
	updateErr  error
	deleteErr  error

	mu        sync.Mutex
	patches   []domain.ProfilePatch
	deletedID string
	bearers   []string
}

func (f *fakeBackend) Login(_ context.Context, creds domain.LoginData) (domain.AuthResult, error) {
	if f.loginErr != nil {
		return domain.AuthResult{}, f.loginErr
	}
	return domain.AuthResult{Token: f.token, User: f.user}, nil
}

func (f *fakeBackend) Register(_ context.Context, data domain.SignUpData) (domain.AuthResult, error) {
	u := f.user
	u.Email = data.Email
	return domain.AuthResult{Token: f.token, User: u}, nil
}

func (f *fakeBackend) Profile(_ context.Context, token string) (domain.User, error) {
	f.mu.Lock()
	f.bearers = append(f.bearers, token)
	f.mu.Unlock()
	if f.profileErr != nil {
		return domain.User{}, f.profileErr
	}
	return f.user, nil
}

func (f *fakeBackend) VerifyEmail(_ context.Context, token string) error {
	return nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, token string, patch domain.ProfilePatch) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bearers = append(f.bearers, token)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.patches = append(f.patches, patch)
	return nil, nil
}

func (f *fakeBackend) DeleteProfile(_ context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bearers = append(f.bearers, token)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	backend *fakeBackend
	tokens  *repository.MemoryTokenStore
	events  *recorder
	deps    Dependencies
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fb := &fakeBackend{user: testUser(), token: "tok-1"}
	tokens := repository.NewMemoryTokenStore(time.Hour)
	rec := &recorder{}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{
		events.EventSessionLogin, events.EventSessionSignUp, events.EventSessionLogout,
		events.EventEmailVerified, events.EventProfileUpdated, events.EventProfileDeleted,
	} {
		dispatcher.Subscribe(et, rec.handle)
	}
	return &fixture{
		backend: fb,
		tokens:  tokens,
		events:  rec,
		deps:    Dependencies{Backend: fb, Tokens: tokens, Dispatcher: dispatcher},
	}
}

func (f *fixture) manager(sid string) *Manager {
	return NewManager(sid, f.deps)
}

func TestManager_InitializeWithoutToken(t *testing.T) {
	f := newFixture(t)
	m := f.manager("sid")

	m.Initialize(context.Background())

	s := m.State()
	assert.True(t, s.IsInitialized)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
}

func TestManager_InitializeHydratesFromStoredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.tokens.Set(ctx, "sid", domain.TokenStorageKey, "tok-1"))

	m := f.manager("sid")
	m.Initialize(ctx)

	s := m.State()
	assert.True(t, s.IsInitialized)
	assert.True(t, s.IsAuthenticated)
	require.NotNil(t, s.User)
	assert.Equal(t, "u1", s.User.ID)
	assert.Equal(t, []string{"tok-1"}, f.backend.bearers)
}

func TestManager_InitializeDropsExpiredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	expired := signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, f.tokens.Set(ctx, "sid", domain.TokenStorageKey, expired))

	m := f.manager("sid")
	m.Initialize(ctx)

	assert.True(t, m.State().IsInitialized)
	assert.False(t, m.State().IsAuthenticated)
	assert.Empty(t, f.backend.bearers)
	_, err := f.tokens.Get(ctx, "sid", domain.TokenStorageKey)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}

func TestManager_InitializeProfileFailure(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		keepToken bool
	}{
		{name: "unauthorized drops token", err: backend.APIError{Status: http.StatusUnauthorized, Message: "jwt expired"}},
		{name: "outage keeps token", err: backend.ErrUnavailable, keepToken: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.backend.profileErr = tc.err
			ctx := context.Background()
			require.NoError(t, f.tokens.Set(ctx, "sid", domain.TokenStorageKey, "tok-1"))

			m := f.manager("sid")
			m.Initialize(ctx)

			s := m.State()
			assert.True(t, s.IsInitialized)
			assert.False(t, s.IsAuthenticated)

			_, err := f.tokens.Get(ctx, "sid", domain.TokenStorageKey)
			if tc.keepToken {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, repository.ErrTokenNotFound)
			}
		})
	}
}

func TestManager_LoginPersistsTokenAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")
	m.Initialize(ctx)

	require.NoError(t, m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	s := m.State()
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "u1", s.User.ID)

	stored, err := f.tokens.Get(ctx, "sid", domain.TokenStorageKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", stored)
	assert.Equal(t, []events.EventType{events.EventSessionLogin}, f.events.types())
}

func TestManager_LoginFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.backend.loginErr = backend.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	ctx := context.Background()
	m := f.manager("sid")
	m.Initialize(ctx)

	err := m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "bad"})
	require.Error(t, err)

	var apiErr backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.False(t, m.State().IsAuthenticated)
	assert.Empty(t, f.events.types())
}

func TestManager_SignUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")

	require.NoError(t, m.SignUp(ctx, domain.SignUpData{Email: "new@example.com", Password: "secret1", AgreeTerms: true}))

	s := m.State()
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "new@example.com", s.User.Email)
	assert.Equal(t, []events.EventType{events.EventSessionSignUp}, f.events.types())
}

func TestManager_LogoutThenInitializeIsSignedOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")
	require.NoError(t, m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.State().IsAuthenticated)
	assert.Nil(t, m.State().User)

	next := f.manager("sid")
	next.Initialize(ctx)
	assert.True(t, next.State().IsInitialized)
	assert.False(t, next.State().IsAuthenticated)
	assert.Equal(t, []events.EventType{events.EventSessionLogin, events.EventSessionLogout}, f.events.types())
}

func TestManager_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")
	require.NoError(t, m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	patch := domain.ProfilePatch{Bio: strPtr("writes compilers")}
	require.NoError(t, m.UpdateProfile(ctx, patch))

	assert.Equal(t, "writes compilers", m.State().User.Bio)
	assert.Equal(t, "Ada", m.State().User.FirstName)
	require.Len(t, f.backend.patches, 1)
	assert.Equal(t, []string{"tok-1"}, f.backend.bearers)

	f.events.mu.Lock()
	last := f.events.events[len(f.events.events)-1]
	f.events.mu.Unlock()
	assert.Equal(t, events.EventProfileUpdated, last.Type)
	assert.Equal(t, events.ProfileUpdatedPayload{Fields: []string{"bio"}}, last.Payload)
}

func TestManager_UpdateProfileWithoutUserIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")
	m.Initialize(ctx)

	require.NoError(t, m.UpdateProfile(ctx, domain.ProfilePatch{Bio: strPtr("x")}))
	assert.Empty(t, f.backend.patches)
	assert.Nil(t, m.State().User)
}

func TestManager_UpdateProfileFailureKeepsUser(t *testing.T) {
	f := newFixture(t)
	f.backend.updateErr = backend.APIError{Status: http.StatusBadRequest, Message: "bad rate"}
	ctx := context.Background()
	m := f.manager("sid")
	require.NoError(t, m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	require.Error(t, m.UpdateProfile(ctx, domain.ProfilePatch{Bio: strPtr("x")}))
	assert.Equal(t, "old bio", m.State().User.Bio)
}

func TestManager_DeleteProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.manager("sid")
	require.NoError(t, m.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	require.NoError(t, m.DeleteProfile(ctx, "u1"))

	s := m.State()
	assert.Nil(t, s.User)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "u1", f.backend.deletedID)
}

func TestManager_DeleteProfileRequiresToken(t *testing.T) {
	f := newFixture(t)
	m := f.manager("sid")

	err := m.DeleteProfile(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.manager("a")
	require.NoError(t, a.Login(ctx, domain.LoginData{Email: "ada@example.com", Password: "secret"}))

	b := f.manager("b")
	b.Initialize(ctx)
	assert.False(t, b.State().IsAuthenticated)
}
