package databackend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alexis-backoffice/internal/catalog"
)

func TestFixtureCreate_AssignsFreshIDs(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	before, _ := f.ListCars(ctx)
	created, err := f.CreateCar(ctx, catalog.Car{Model: "Porsche 911"})
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)

	after, _ := f.ListCars(ctx)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, created.ID, after[len(after)-1].ID, "appended in order")

	// IDs never collide, even across collections.
	svc, err := f.CreateService(ctx, catalog.ServiceItem{Name: "Brakes"})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, svc.ID)
}

func TestFixtureStockDelta_ClampsAtZero(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	require.NoError(t, f.AdjustTyreStock(ctx, 1, -1000))
	tyres, _ := f.ListTyres(ctx)
	assert.Equal(t, 0, tyres[0].Quantity)

	require.NoError(t, f.AdjustTyreStock(ctx, 1, 5))
	tyres, _ = f.ListTyres(ctx)
	assert.Equal(t, 5, tyres[0].Quantity)
}

func TestFixtureBooking_ForcesPending(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	created, err := f.CreateBooking(ctx, catalog.Booking{
		CustomerName: "J. Clark",
		ServiceType:  "Servicing",
		Status:       catalog.BookingConfirmed,
	})
	require.NoError(t, err)
	assert.Equal(t, catalog.BookingPending, created.Status)

	require.NoError(t, f.UpdateBookingStatus(ctx, created.ID, catalog.BookingCompleted))
	bookings, _ := f.ListBookings(ctx)
	require.Len(t, bookings, 1)
	assert.Equal(t, catalog.BookingCompleted, bookings[0].Status)
}

func TestFixtureLogin_DemoPairOnly(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	tok, err := f.Login(ctx, DemoUsername, DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, DemoUsername, tok.Username)
	assert.True(t, strings.HasPrefix(tok.AccessToken, "demo-"))

	_, err = f.Login(ctx, DemoUsername, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.Login(ctx, "root", DemoPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFixtureBrands_KeyedByName(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	_, err := f.CreateBrand(ctx, catalog.TyreBrand{Name: "Bridgestone"})
	require.NoError(t, err)
	require.NoError(t, f.DeleteBrand(ctx, "Michelin"))

	brands, _ := f.ListBrands(ctx)
	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.Name)
	}
	assert.NotContains(t, names, "Michelin")
	assert.Contains(t, names, "Bridgestone")

	assert.Error(t, f.DeleteBrand(ctx, "Michelin"))
}

func TestFixtureSaveSetting(t *testing.T) {
	f := NewFixture()
	ctx := context.Background()

	require.NoError(t, f.SaveSetting(ctx, catalog.SettingBanner, catalog.Banner{Active: true, Reason: "MOT offer"}))
	banner, _ := f.GetBanner(ctx)
	assert.True(t, banner.Active)
	assert.Equal(t, "MOT offer", banner.Reason)

	assert.Error(t, f.SaveSetting(ctx, "nonsense", 1))
}
