package endpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOverrides struct {
	url string
}

func (m *memOverrides) APIURL() string { return m.url }
func (m *memOverrides) SetAPIURL(u string) error { m.url = u; return nil }

func TestResolve_SavedOverrideWinsVerbatim(t *testing.T) {
	r := New("https://alexisautos.co.uk", &memOverrides{url: "https://tunnel.example.com/api"})
	assert.Equal(t, "https://tunnel.example.com/api", r.BaseURL())
}

func TestResolve_Localhost(t *testing.T) {
	r := New("http://localhost", &memOverrides{})
	assert.Equal(t, "http://localhost:8000/api", r.BaseURL())

	r = New("http://127.0.0.1:4200", &memOverrides{})
	assert.Equal(t, "http://127.0.0.1:8000/api", r.BaseURL())
}

func TestResolve_ForwardedHostRewrite(t *testing.T) {
	r := New("https://fuzzy-spork-p4qg7x-3000.app.github.dev", &memOverrides{})
	assert.Equal(t, "https://fuzzy-spork-p4qg7x-8000.app.github.dev/api", r.BaseURL())

	r = New("https://3000-workspace.ws-eu01.gitpod.io", &memOverrides{})
	// No -<port> suffix on the first segment; heuristic leaves it alone and
	// falls through to the default synthesis.
	assert.Equal(t, "https://3000-workspace.ws-eu01.gitpod.io:8000/api", r.BaseURL())
}

func TestResolve_ConfiguredURL(t *testing.T) {
	r := New("https://alexisautos.co.uk", &memOverrides{})
	r.configURL = "https://api.alexisautos.co.uk"
	assert.Equal(t, "https://api.alexisautos.co.uk/api", r.BaseURL())

	r = New("https://alexisautos.co.uk", &memOverrides{})
	r.configURL = "https://api.alexisautos.co.uk/api"
	assert.Equal(t, "https://api.alexisautos.co.uk/api", r.BaseURL(), "no double /api suffix")
}

func TestResolve_DefaultFallback(t *testing.T) {
	r := New("https://alexisautos.co.uk", &memOverrides{})
	assert.Equal(t, "https://alexisautos.co.uk:8000/api", r.BaseURL())
}

func TestResolve_FixedForProcessLifetime(t *testing.T) {
	ov := &memOverrides{}
	r := New("http://localhost", ov)
	assert.Equal(t, "http://localhost:8000/api", r.BaseURL())

	restart, err := r.SaveOverride("https://override.example.com/")
	require.NoError(t, err)
	assert.True(t, restart)
	assert.Equal(t, "https://override.example.com", ov.url, "trailing slash trimmed")

	// Still the old value until the simulated reload.
	assert.Equal(t, "http://localhost:8000/api", r.BaseURL())
	r.Reset()
	assert.Equal(t, "https://override.example.com", r.BaseURL())
}

func TestResetOverride(t *testing.T) {
	ov := &memOverrides{url: "https://override.example.com"}
	r := New("http://localhost", ov)
	assert.Equal(t, "https://override.example.com", r.BaseURL())

	restart, err := r.ResetOverride()
	require.NoError(t, err)
	assert.True(t, restart)
	r.Reset()
	assert.Equal(t, "http://localhost:8000/api", r.BaseURL())
}

func TestResolve_MalformedOverrideAcceptedAsIs(t *testing.T) {
	r := New("http://localhost", &memOverrides{url: "not a url"})
	assert.Equal(t, "not a url", r.BaseURL())
}
