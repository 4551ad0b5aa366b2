package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gigit/web/internal/domain"
)

// errMissingToken is returned when an auth response omits the bearer token.
var errMissingToken = errors.New("auth response carried no token")

// authEnvelope covers every auth response shape the backend has served:
// {token, user}, {accessToken, user} and {user: {token, ...}}.
type authEnvelope struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`
}

func (e authEnvelope) result() (domain.AuthResult, error) {
	token := e.Token
	if token == "" {
		token = e.AccessToken
	}
	if token == "" && len(e.User) > 0 {
		var nested struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(e.User, &nested); err == nil {
			token = nested.Token
		}
	}
	if token == "" {
		return domain.AuthResult{}, errMissingToken
	}

	var user domain.User
	if len(e.User) > 0 {
		if err := json.Unmarshal(e.User, &user); err != nil {
			return domain.AuthResult{}, fmt.Errorf("decode user: %w", err)
		}
	}
	return domain.AuthResult{Token: token, User: user}, nil
}

// Login posts credentials to /api/auth/login.
func (c *Client) Login(ctx context.Context, creds domain.LoginData) (domain.AuthResult, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, "", &env); err != nil {
		return domain.AuthResult{}, err
	}
	return env.result()
}

// Register posts a sign-up payload to /api/auth/register.
func (c *Client) Register(ctx context.Context, data domain.SignUpData) (domain.AuthResult, error) {
	var env authEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", data, "", &env); err != nil {
		return domain.AuthResult{}, err
	}
	return env.result()
}

// Profile fetches the user the token belongs to.
func (c *Client) Profile(ctx context.Context, token string) (domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, token, &raw); err != nil {
		return domain.User{}, err
	}
	return decodeUser(raw)
}

// VerifyEmail confirms the email address bound to token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/api/auth/verify-email", nil, token, nil)
}

// ForgotPassword asks the backend to send a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, "", nil)
}

// ResetPassword sets a new password using an emailed reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"token": resetToken, "password": password}
	path := "/api/auth/reset-password/" + url.PathEscape(resetToken)
	return c.do(ctx, http.MethodPost, path, body, "", nil)
}

// AdminLogin authenticates an administrator.
func (c *Client) AdminLogin(ctx context.Context, creds domain.LoginData) error {
	return c.do(ctx, http.MethodPost, "/api/admin/login", creds, "", nil)
}

// decodeUser accepts either a bare user object or a {"user": {...}} envelope.
func decodeUser(raw json.RawMessage) (domain.User, error) {
	raw = bytes.TrimSpace(raw)
	var env struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.User) > 0 && env.User[0] == '{' {
		raw = env.User
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}
