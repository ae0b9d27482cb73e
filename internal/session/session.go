// Package session tracks who is logged in. There is exactly one session
// record and it is always replaced whole.
package session

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// ErrMissingCredentials is returned when the username or password is blank.
var ErrMissingCredentials = errors.New("username and password are required")

// Manager holds the current session for one store.
type Manager struct {
	store   store.Store
	current model.Session
	logger  *slog.Logger
}

// New loads the stored session. A nil logger means slog.Default().
func New(s store.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:   s,
		current: s.Load().User,
		logger:  logger,
	}
}

// Login accepts any non-blank username and password. There is no
// credential check: this is a local, single-user tool.
func (m *Manager) Login(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}
	if err := m.replace(model.Session{Username: username, IsAuthenticated: true}); err != nil {
		return err
	}
	m.logger.Debug("Logged in", slog.String("username", username))
	return nil
}

// Logout clears the session.
func (m *Manager) Logout() error {
	if err := m.replace(model.Session{}); err != nil {
		return err
	}
	m.logger.Debug("Logged out")
	return nil
}

// Current returns the session record.
func (m *Manager) Current() model.Session { return m.current }

// Authenticated reports whether someone is logged in.
func (m *Manager) Authenticated() bool { return m.current.IsAuthenticated }

func (m *Manager) replace(next model.Session) error {
	if err := store.PutSession(m.store, next); err != nil {
		return err
	}
	m.current = next
	return nil
}
