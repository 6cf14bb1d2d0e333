// ABOUTME: Client-side session state for the catalog backend
// ABOUTME: Persists the logged-in identity, role, and token in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Role is the authorization role claimed by the backend at login
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole normalizes a server-provided role string.
// Anything unrecognized (including empty) maps to the least-privileged role.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Session is the client-held record of the authenticated identity
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// State is the session lifecycle state
type State int

const (
	// StateUnknown means the persisted session has not been read yet
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Store owns the process-wide session singleton.
// It starts in StateUnknown until Load reads the persisted record once.
type Store struct {
	mu        sync.Mutex
	configDir string
	state     State
	current   *Session
}

// NewStore creates a session store rooted at the given config directory
func NewStore(configDir string) *Store {
	return &Store{
		configDir: configDir,
		state:     StateUnknown,
	}
}

// sessionFile returns the path to the persisted session JSON
func (s *Store) sessionFile() string {
	return filepath.Join(s.configDir, "session.json")
}

// Load reads the persisted session from disk, resolving StateUnknown.
// A missing or corrupt file resolves to StateAnonymous.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.sessionFile())
	if os.IsNotExist(err) {
		s.state = StateAnonymous
		s.current = nil
		return nil
	}
	if err != nil {
		s.state = StateAnonymous
		s.current = nil
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		// Invalid record, start fresh
		s.state = StateAnonymous
		s.current = nil
		return nil
	}

	sess.Role = ParseRole(string(sess.Role))
	s.current = &sess
	s.state = StateAuthenticated
	return nil
}

// Login persists the session and transitions to StateAuthenticated.
// The role is taken verbatim from the server's login response.
func (s *Store) Login(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.Role = ParseRole(string(sess.Role))

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.sessionFile(), data, 0600); err != nil {
		return err
	}

	s.current = &sess
	s.state = StateAuthenticated
	return nil
}

// Clear removes the persisted session and transitions to StateAnonymous.
// Idempotent; this is the only mutation the HTTP layer performs on 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.state = StateAnonymous

	err := os.Remove(s.sessionFile())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// State returns the current lifecycle state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns a copy of the active session, or false when there is none
func (s *Store) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Token returns the bearer token, or empty when not authenticated
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated || s.current == nil {
		return ""
	}
	return s.current.Token
}

// IsAuthenticated reports whether an active session exists
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.current != nil
}

// IsAdmin reports whether the active session carries the admin role
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated && s.current != nil && s.current.Role == RoleAdmin
}
