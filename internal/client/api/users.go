package api

import (
	"context"
	"errors"
	"fmt"
)

type tokenEnvelope struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is not installed
// automatically; callers decide when to adopt the new session.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenEnvelope
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/users/login")
	if err := c.check(resp, err); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: %w: empty token", ErrUnexpectedResponse)
	}
	return out.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.rc.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/users/register")
	if err := c.check(resp, err); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.rc.R().SetContext(ctx).Post("/api/users/logout")
	if err := c.check(resp, err); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CheckToken asks the server whether the installed bearer token is still
// valid. A 200 means valid; 401 means not; anything else is an error.
func (c *Client) CheckToken(ctx context.Context) (bool, error) {
	resp, err := c.rc.R().SetContext(ctx).Post("/api/token/check")
	if err := c.check(resp, err); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return false, nil
		}
		return false, fmt.Errorf("token check: %w", err)
	}
	return true, nil
}
