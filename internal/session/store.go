// Package session owns the single source of truth for authentication state:
// whether a user is logged in, and the credential used to authorize requests.
//
// The current session is kept in memory behind a mutex and mirrored to a
// small TOML file so it survives process restarts until an explicit logout.
// Restoration at startup is trust-on-presence: a persisted token marks the
// session authenticated without a verification round-trip, and the first
// authorized call surfaces a stale token as a server error.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/fruitvision/fruitvision/internal/api"
)

// Session is the client's view of the authenticated user. Username is
// advisory and used only for display.
type Session struct {
	Token    string
	Username string
}

// Authenticated reports whether a session token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Authenticator is the subset of the API client the store delegates to.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
	Register(ctx context.Context, username, password, email string) error
}

// ErrEmailRequired rejects a registration attempt before transmission when no
// usable email address was provided.
var ErrEmailRequired = errors.New("a valid email address is required")

const defaultSessionPath = "~/.config/fruitvision/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Store coordinates session state and its persistence.
type Store struct {
	mu      sync.RWMutex
	path    string
	current Session
	auth    Authenticator
}

// NewStore builds a Store persisting to path (empty uses the default) and
// delegating credential exchanges to auth. The authenticator may be nil at
// construction and supplied later via SetAuthenticator; the API client reads
// its token from the store, so the two are built in that order.
func NewStore(path string, auth Authenticator) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session path: %w", err)
	}
	return &Store{path: resolved, auth: auth}, nil
}

// SetAuthenticator completes a store built before its API client existed.
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

type persisted struct {
	Token    string `toml:"token"`
	Username string `toml:"username"`
}

// Restore rehydrates the session from disk. It runs once at startup; a
// missing or unreadable file simply leaves the store unauthenticated.
func (s *Store) Restore() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := toml.Unmarshal(raw, &p); err != nil {
		return
	}
	if strings.TrimSpace(p.Token) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{Token: p.Token, Username: p.Username}
}

// Login exchanges credentials for a token. On success the token and username
// are persisted and the store transitions to authenticated as one step; any
// failure (including a failed persist) leaves the store unauthenticated with
// no partial state on disk.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	resp, err := s.authenticator().Login(ctx, username, password)
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := Session{Token: resp.Token, Username: username}
	if err := s.persist(persisted{Token: next.Token, Username: next.Username}); err != nil {
		return Session{}, fmt.Errorf("persist session: %w", err)
	}
	s.current = next
	return next, nil
}

// Register creates an account. Session state is unchanged on success; the
// caller must log in afterwards. Email is required and checked here so an
// obviously invalid address never reaches the network.
func (s *Store) Register(ctx context.Context, username, password, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrEmailRequired
	}
	return s.authenticator().Register(ctx, username, password, email)
}

func (s *Store) authenticator() Authenticator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth
}

// Logout clears the session and its persisted state unconditionally. It is
// idempotent and never fails; a missing session file is not an error.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	_ = os.Remove(s.path)
}

// Current returns a copy of the session as of this call.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current session token, or "" when unauthenticated. It
// satisfies api.TokenSource so the credential is read at request-preparation
// time rather than captured once.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

func (s *Store) persist(p persisted) error {
	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	// The file holds a live credential.
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
