// Package prefs persists client-side state between runs: durable preferences
// (API URL override, theme, demo-mode flag) and the short-lived session
// credential pair. Two JSON files under the user config dir; reads of a
// missing or corrupt file behave as if nothing was stored.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	settingsFile = "settings.json"
	sessionFile  = "session.json"
)

// Theme values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings are the durable cross-session preferences.
type Settings struct {
	APIURL   string `json:"apiUrl,omitempty"`
	Theme    string `json:"theme,omitempty"`
	DemoMode bool   `json:"demoMode,omitempty"`
}

// Session is the credential pair. The two fields are always written and
// cleared together, never independently.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Prefs reads and writes the on-disk preference files.
type Prefs struct {
	dir string
}

// New stores preferences under the user config dir (~/.config/alexis on
// Linux).
func New() (*Prefs, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("locating user config dir: %w", err)
	}
	return NewAt(filepath.Join(base, "alexis")), nil
}

// NewAt stores preferences under an explicit directory. Used by tests.
func NewAt(dir string) *Prefs {
	return &Prefs{dir: dir}
}

// Settings returns the durable preferences, zero-valued when nothing has
// been saved.
func (p *Prefs) Settings() Settings {
	var s Settings
	p.read(settingsFile, &s)
	return s
}

// APIURL returns the saved override, or "" when none is set.
func (p *Prefs) APIURL() string { return p.Settings().APIURL }

// SetAPIURL saves or, with an empty string, clears the override.
func (p *Prefs) SetAPIURL(url string) error {
	s := p.Settings()
	s.APIURL = url
	return p.write(settingsFile, s)
}

// Theme returns the saved theme, or "" when none is set.
func (p *Prefs) Theme() string { return p.Settings().Theme }

// SetTheme saves the theme preference.
func (p *Prefs) SetTheme(theme string) error {
	s := p.Settings()
	s.Theme = theme
	return p.write(settingsFile, s)
}

// DemoMode reports the persisted demo flag.
func (p *Prefs) DemoMode() bool { return p.Settings().DemoMode }

// SetDemoMode persists the demo flag so it survives a restart.
func (p *Prefs) SetDemoMode(on bool) error {
	s := p.Settings()
	s.DemoMode = on
	return p.write(settingsFile, s)
}

// Session returns the stored credential pair. ok is false unless both the
// username and the token are present.
func (p *Prefs) Session() (sess Session, ok bool) {
	p.read(sessionFile, &sess)
	if sess.Username == "" || sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// SaveSession stores the credential pair in one write.
func (p *Prefs) SaveSession(username, token string) error {
	return p.write(sessionFile, Session{Username: username, Token: token})
}

// ClearSession removes the credential pair. Clearing an absent session is
// not an error.
func (p *Prefs) ClearSession() error {
	err := os.Remove(filepath.Join(p.dir, sessionFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (p *Prefs) read(name string, v any) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return
	}
	// A corrupt file is treated as absent.
	_ = json.Unmarshal(data, v)
}

func (p *Prefs) write(name string, v any) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(p.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
