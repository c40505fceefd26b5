package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/metadata"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// AuthAPI is the slice of the API client the auth service uses.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	CheckToken(ctx context.Context) (bool, error)
	SetToken(token string)
}

// AuthService owns the session token. It keeps the token on the API client
// for the current process and in the metadata store across restarts.
type AuthService struct {
	api  AuthAPI
	meta metadata.Repository
	log  logging.Logger

	username string
	token    string
}

func NewAuthService(api AuthAPI, meta metadata.Repository, log logging.Logger) *AuthService {
	return &AuthService{api: api, meta: meta, log: log}
}

// Restore loads the persisted session, if any, and installs it on the API
// client. Returns the saved username, or "" when there is no session.
func (s *AuthService) Restore(ctx context.Context) string {
	token, err := s.meta.Get(ctx, metadata.KeyToken)
	if err != nil {
		s.log.Warn(ctx, "reading saved session failed", "err", err)
		return ""
	}
	if len(token) == 0 {
		return ""
	}
	username, err := s.meta.Get(ctx, metadata.KeyUsername)
	if err != nil || len(username) == 0 {
		return ""
	}
	s.token = string(token)
	s.username = string(username)
	s.api.SetToken(s.token)
	return s.username
}

// Login authenticates against the server and persists the session.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.token = token
	s.username = username
	s.api.SetToken(token)
	if err := s.meta.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
		s.log.Warn(ctx, "persisting session token failed", "err", err)
	}
	if err := s.meta.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
		s.log.Warn(ctx, "persisting username failed", "err", err)
	}
	return nil
}

// Register creates a new account. The caller logs in separately.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if err := s.api.Register(ctx, username, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout ends the session on the server (best effort) and forgets it locally.
func (s *AuthService) Logout(ctx context.Context) {
	if s.token == "" {
		return
	}
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed", "err", err)
	}
	s.token = ""
	s.username = ""
	s.api.SetToken("")
	if err := s.meta.Clear(ctx); err != nil {
		s.log.Warn(ctx, "clearing saved session failed", "err", err)
	}
}

// Username returns the name of the logged-in user, "" when logged out.
func (s *AuthService) Username() string { return s.username }

// LoggedIn reports whether a session token is installed.
func (s *AuthService) LoggedIn() bool { return s.token != "" }

// CheckSession is the navigation guard for authenticated views: it reports
// whether the current session is still usable. An expired token is rejected
// locally without a round trip; otherwise the server has the final word.
// Any failure counts as an invalid session.
func (s *AuthService) CheckSession(ctx context.Context) bool {
	if s.token == "" {
		return false
	}
	if tokenExpired(s.token, time.Now()) {
		s.log.Debug(ctx, "session token expired locally")
		return false
	}
	ok, err := s.api.CheckToken(ctx)
	if err != nil {
		s.log.Error(ctx, "token validation failed", "err", err)
		return false
	}
	return ok
}

// tokenExpired reports whether the token carries an exp claim in the past.
// Tokens that cannot be parsed or carry no expiry are left to the server.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
