// Package session tracks login state across runs. Two states only:
// anonymous, or authenticated with a username and bearer token. The token is
// never validated or refreshed client-side; a stale one just makes
// authenticated calls fail individually.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"alexis-backoffice/internal/prefs"
	"alexis-backoffice/internal/store"
)

// Manager owns the credential pair and delegates all data loading to the
// store.
type Manager struct {
	store *store.Store
	prefs *prefs.Prefs

	mu       sync.RWMutex
	username string
	token    string
}

// NewManager builds the manager and rehydrates from the persisted session:
// when both a username and a token are present it transitions straight to
// authenticated, without asking the server, and kicks off the auth-gated
// bookings load.
func NewManager(ctx context.Context, st *store.Store, p *prefs.Prefs) *Manager {
	m := &Manager{store: st, prefs: p}

	if sess, ok := p.Session(); ok {
		m.username = sess.Username
		m.token = sess.Token
		m.loadBookings(ctx)
	}
	return m
}

// IsLoggedIn reports whether a credential pair is held.
func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username != "" && m.token != ""
}

// CurrentUser returns the logged-in username, or "" when anonymous.
func (m *Manager) CurrentUser() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.username
}

// Token returns the bearer token, or "" when anonymous. Satisfies
// api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Login exchanges credentials through the store (real endpoint, or the demo
// pair when demo mode is on). On success the pair is persisted in one write,
// the state flips to authenticated, and bookings load. On failure the state
// stays anonymous and the error goes back to the caller; nothing is retried.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	tok, err := m.store.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := m.prefs.SaveSession(tok.Username, tok.AccessToken); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	m.mu.Lock()
	m.username = tok.Username
	m.token = tok.AccessToken
	m.mu.Unlock()

	m.loadBookings(ctx)
	return nil
}

// Logout clears the pair immediately and unconditionally. Safe to call when
// already anonymous.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.username = ""
	m.token = ""
	m.mu.Unlock()

	return m.prefs.ClearSession()
}

// A bookings load failure is non-fatal; the signal keeps its previous value.
func (m *Manager) loadBookings(ctx context.Context) {
	if err := m.store.LoadBookings(ctx); err != nil {
		log.Printf("cannot load bookings: %v", err)
	}
}
