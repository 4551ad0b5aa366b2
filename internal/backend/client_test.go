package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigit/web/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	c, err := New("api.gigit.dev/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.gigit.dev", c.BaseURL())

	c, err = New("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestLogin_TokenEnvelopes(t *testing.T) {
	bodies := []string{
		`{"token":"t1","user":{"_id":"u1","first_name":"Ada"}}`,
		`{"accessToken":"t1","user":{"_id":"u1","first_name":"Ada"}}`,
		`{"user":{"_id":"u1","first_name":"Ada","token":"t1"}}`,
	}

	for _, body := range bodies {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)

			var creds domain.LoginData
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "ada@example.com", creds.Email)
			_, _ = w.Write([]byte(body))
		})

		res, err := c.Login(context.Background(), domain.LoginData{Email: "ada@example.com", Password: "secret"})
		require.NoError(t, err, body)
		assert.Equal(t, "t1", res.Token)
		assert.Equal(t, "u1", res.User.ID)
		assert.Equal(t, "Ada", res.User.FirstName)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"_id":"u1"}}`))
	})

	_, err := c.Login(context.Background(), domain.LoginData{})
	assert.ErrorIs(t, err, errMissingToken)
}

func TestErrorExtraction(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{body: `{"content":"Email already registered","message":"ignored"}`, want: "Email already registered"},
		{body: `{"message":"Invalid credentials"}`, want: "Invalid credentials"},
		{body: `{"error":"jwt expired"}`, want: "jwt expired"},
		{body: `{"error":{"message":"nested"}}`, want: "nested"},
		{body: `{}`, want: defaultErrorMessage},
		{body: ``, want: defaultErrorMessage},
		{body: `bad gateway`, want: "bad gateway"},
	}

	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(tc.body))
		})

		_, err := c.Profile(context.Background(), "tok")
		var apiErr APIError
		require.True(t, errors.As(err, &apiErr), tc.body)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, tc.want, apiErr.Message)
	}
}

func TestProfile_SendsBearerAndUnwrapsUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"user":{"id":"7","name":"Bob","role":"Designer"}}`))
	})

	u, err := c.Profile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "7", u.ID)
	assert.Equal(t, "Bob", u.FirstName)
	assert.Equal(t, "Designer", u.Specialization)
}

func TestUnauthorizedAndNotFound(t *testing.T) {
	assert.True(t, IsUnauthorized(APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(APIError{Status: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(APIError{Status: http.StatusNotFound}))
	assert.True(t, IsNotFound(APIError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(errors.New("x")))
}

func TestListUsers_AcceptsArrayAndEnvelope(t *testing.T) {
	for _, body := range []string{
		`[{"_id":"1"},{"_id":"2"}]`,
		`{"users":[{"_id":"1"},{"_id":"2"}]}`,
		`{"data":[{"_id":"1"},{"_id":"2"}]}`,
	} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users", r.URL.Path)
			_, _ = w.Write([]byte(body))
		})

		users, err := c.ListUsers(context.Background())
		require.NoError(t, err, body)
		require.Len(t, users, 2)
		assert.Equal(t, "2", users[1].ID)
	}
}

func TestListSpecializations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/specialization/specializations", r.URL.Path)
		_, _ = w.Write([]byte(`["Designer","Backend Developer"]`))
	})

	specs, err := c.ListSpecializations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Designer", "Backend Developer"}, specs)
}

func TestUpdateAndDeleteProfile(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.WriteHeader(http.StatusOK)
	})

	bio := "hello"
	u, err := c.UpdateProfile(context.Background(), "tok", domain.ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/freelancer/update", gotPath)
	assert.Equal(t, map[string]any{"bio": "hello"}, gotBody)

	require.NoError(t, c.DeleteProfile(context.Background(), "tok", "u1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/freelancer/delete/u1", gotPath)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.ListUsers(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
