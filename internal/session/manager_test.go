package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alexis-backoffice/internal/catalog"
	"alexis-backoffice/internal/databackend"
	"alexis-backoffice/internal/prefs"
	"alexis-backoffice/internal/store"
)

func demoStore(t *testing.T, p *prefs.Prefs) *store.Store {
	t.Helper()
	require.NoError(t, p.SetDemoMode(true))
	s := store.NewFromPrefs("http://unreachable.invalid", p, nil)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestRehydration_NoNetworkNeeded(t *testing.T) {
	p := prefs.NewAt(t.TempDir())
	require.NoError(t, p.SaveSession("admin", "tok123"))
	s := demoStore(t, p)

	m := NewManager(context.Background(), s, p)

	assert.True(t, m.IsLoggedIn())
	assert.Equal(t, "admin", m.CurrentUser())
	assert.Equal(t, "tok123", m.Token())
}

func TestRehydration_HalfPairStaysAnonymous(t *testing.T) {
	p := prefs.NewAt(t.TempDir())
	s := demoStore(t, p)

	m := NewManager(context.Background(), s, p)
	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.CurrentUser())
	assert.Empty(t, m.Token())
}

func TestLogin_SuccessPersistsPairAndLoadsBookings(t *testing.T) {
	p := prefs.NewAt(t.TempDir())
	s := demoStore(t, p)

	// A booking already on the backend becomes visible after login.
	_, err := s.CreateBooking(context.Background(), catalog.Booking{CustomerName: "J. Clark", ServiceType: "Brakes"})
	require.NoError(t, err)

	m := NewManager(context.Background(), s, p)
	require.NoError(t, m.Login(context.Background(), databackend.DemoUsername, databackend.DemoPassword))

	assert.True(t, m.IsLoggedIn())
	assert.Len(t, s.Bookings.Get(), 1, "authenticated load triggered by login")
	assert.Equal(t, databackend.DemoUsername, m.CurrentUser())
	assert.NotEmpty(t, m.Token())

	sess, ok := p.Session()
	require.True(t, ok)
	assert.Equal(t, m.Token(), sess.Token)
}

func TestLogin_FailureStaysAnonymous(t *testing.T) {
	p := prefs.NewAt(t.TempDir())
	s := demoStore(t, p)

	m := NewManager(context.Background(), s, p)
	err := m.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, databackend.ErrInvalidCredentials)
	assert.False(t, m.IsLoggedIn())

	_, ok := p.Session()
	assert.False(t, ok, "nothing persisted on failure")
}

func TestLogout_ClearsBothAndIsIdempotent(t *testing.T) {
	p := prefs.NewAt(t.TempDir())
	s := demoStore(t, p)

	m := NewManager(context.Background(), s, p)
	require.NoError(t, m.Login(context.Background(), databackend.DemoUsername, databackend.DemoPassword))
	require.True(t, m.IsLoggedIn())

	require.NoError(t, m.Logout())
	assert.False(t, m.IsLoggedIn())
	assert.Empty(t, m.Token())
	_, ok := p.Session()
	assert.False(t, ok)

	require.NoError(t, m.Logout())
}
