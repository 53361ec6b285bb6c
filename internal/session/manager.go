// Package session tracks the authenticated user and bearer token. The token
// survives restarts through a small state file; the user does not and is
// re-established on the next login.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/VanceeBassem/ecommerce-frontend/internal/api"
)

// Manager owns the login/logout lifecycle and the persisted token.
type Manager struct {
	client    *api.Client
	tokenPath string

	user  *api.User
	token string
}

// NewManager creates a manager that persists the token at tokenPath.
func NewManager(client *api.Client, tokenPath string) *Manager {
	return &Manager{client: client, tokenPath: tokenPath}
}

// Restore loads a previously persisted token, reporting whether one was
// found. Only the token is restored; User() stays empty until a fresh login.
func (m *Manager) Restore() bool {
	data, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return false
	}
	m.token = token
	return true
}

// Login authenticates, stores the user and token in memory and persists the
// token for the next run.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	user, token, err := m.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.user = &user
	m.token = token
	// The session is live either way; a failed write only costs the user a
	// fresh login on the next start.
	_ = m.persistToken(token)
	return nil
}

// Logout ends the server-side session and clears local state. Local state is
// cleared even when the server call fails, so the client never keeps using a
// token it asked the server to revoke.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.client.Logout(ctx, m.token)
	m.user = nil
	m.token = ""
	if clearErr := m.clearToken(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Token returns the current bearer token, empty when unauthenticated.
func (m *Manager) Token() string {
	return m.token
}

// Authenticated reports whether a token is available for requests.
func (m *Manager) Authenticated() bool {
	return m.token != ""
}

// User returns the logged-in user when one is known this run.
func (m *Manager) User() (api.User, bool) {
	if m.user == nil {
		return api.User{}, false
	}
	return *m.user, true
}

func (m *Manager) persistToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(m.tokenPath), 0o755); err != nil {
		return fmt.Errorf("session: ensure state dir: %w", err)
	}
	if err := os.WriteFile(m.tokenPath, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	return nil
}

func (m *Manager) clearToken() error {
	if err := os.Remove(m.tokenPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: clear token: %w", err)
	}
	return nil
}
