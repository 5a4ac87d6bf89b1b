package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_RoundTrip(t *testing.T) {
	p := NewAt(t.TempDir())

	assert.Equal(t, Settings{}, p.Settings(), "nothing stored yet")

	require.NoError(t, p.SetAPIURL("https://tunnel.example.com/api"))
	require.NoError(t, p.SetTheme(ThemeDark))
	require.NoError(t, p.SetDemoMode(true))

	s := p.Settings()
	assert.Equal(t, "https://tunnel.example.com/api", s.APIURL)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.True(t, s.DemoMode)

	// Clearing the override leaves the other preferences alone.
	require.NoError(t, p.SetAPIURL(""))
	s = p.Settings()
	assert.Empty(t, s.APIURL)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.True(t, s.DemoMode)
}

func TestSession_BothOrNothing(t *testing.T) {
	p := NewAt(t.TempDir())

	_, ok := p.Session()
	assert.False(t, ok)

	require.NoError(t, p.SaveSession("admin", "tok123"))
	sess, ok := p.Session()
	require.True(t, ok)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, "tok123", sess.Token)

	require.NoError(t, p.ClearSession())
	_, ok = p.Session()
	assert.False(t, ok)

	// Idempotent.
	require.NoError(t, p.ClearSession())
}

func TestSession_HalfPairIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	p := NewAt(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(`{"username":"admin"}`), 0o600))
	_, ok := p.Session()
	assert.False(t, ok, "a username without a token is not a session")
}

func TestCorruptFilesTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	p := NewAt(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{nope"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("junk"), 0o600))

	assert.Equal(t, Settings{}, p.Settings())
	_, ok := p.Session()
	assert.False(t, ok)
}
