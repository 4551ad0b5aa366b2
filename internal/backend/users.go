package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gigit/web/internal/domain"
)

// ListUsers fetches every developer profile.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, "", &raw); err != nil {
		return nil, err
	}
	var users []domain.User
	if err := decodeList(raw, "users", &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// GetUser fetches a single developer profile.
func (c *Client) GetUser(ctx context.Context, id string) (domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, "", &raw); err != nil {
		return domain.User{}, err
	}
	return decodeUser(raw)
}

// ListSpecializations fetches the distinct specializations on offer.
func (c *Client) ListSpecializations(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/users/specialization/specializations", nil, "", &raw); err != nil {
		return nil, err
	}
	var specs []string
	if err := decodeList(raw, "specializations", &specs); err != nil {
		return nil, fmt.Errorf("decode specializations: %w", err)
	}
	return specs, nil
}

// UpdateProfile sends the changed profile fields. The returned user is nil
// when the backend answers without a body.
func (c *Client) UpdateProfile(ctx context.Context, token string, patch domain.ProfilePatch) (*domain.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, "/api/freelancer/update", patch, token, &raw); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	user, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteProfile removes the freelancer profile with the given id.
func (c *Client) DeleteProfile(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/freelancer/delete/"+url.PathEscape(id), nil, token, nil)
}

// decodeList accepts a bare JSON array or an object holding it under key.
func decodeList(raw json.RawMessage, key string, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return err
		}
		inner, ok := env[key]
		if !ok {
			inner, ok = env["data"]
		}
		if !ok {
			return fmt.Errorf("missing %q list", key)
		}
		raw = inner
	}
	return json.Unmarshal(raw, v)
}
