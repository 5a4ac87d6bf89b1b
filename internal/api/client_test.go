package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alexis-backoffice/internal/catalog"
)

func TestBypassHeadersOnEveryRequest(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode([]catalog.Car{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ListCars(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "true", got.Get("ngrok-skip-browser-warning"))
	assert.Equal(t, "true", got.Get("Bypass-Tunnel-Reminder"))
	assert.Empty(t, got.Get("Authorization"), "public read carries no token")
}

func TestBearerTokenOnAuthenticatedCalls(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		json.NewEncoder(w).Encode([]catalog.Booking{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok123" })
	_, err := c.ListBookings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok123", got.Get("Authorization"))
}

func TestCreateCar_ReturnsServerCopy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/cars", r.URL.Path)

		var car catalog.Car
		require.NoError(t, json.NewDecoder(r.Body).Decode(&car))
		car.ID = 42
		json.NewEncoder(w).Encode(car)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok123" })
	created, err := c.CreateCar(context.Background(), catalog.Car{Model: "Audi RS6"})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, "Audi RS6", created.Model)
}

func TestDeleteBrand_EscapesName(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok123" })
	require.NoError(t, c.DeleteBrand(context.Background(), "Event Tyres/UK"))
	assert.Equal(t, "/brands/Event%20Tyres%2FUK", path)
}

func TestErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.Error(w, `{"detail":"Incorrect username or password"}`, http.StatusUnauthorized)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))

	c := NewClient(srv.URL, nil)

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.False(t, IsUnreachable(err))

	_, err = c.ListTyres(context.Background())
	require.Error(t, err)
	assert.True(t, IsServerError(err))
	assert.False(t, IsUnreachable(err))

	// Once the server is gone there is no response at all.
	srv.Close()
	_, err = c.ListTyres(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
	assert.False(t, IsServerError(err))
}

func TestStockAndStatusBodies(t *testing.T) {
	bodies := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw json.RawMessage
		json.NewDecoder(r.Body).Decode(&raw)
		bodies[r.URL.Path] = string(raw)
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, func() string { return "tok123" })
	require.NoError(t, c.AdjustTyreStock(context.Background(), 3, -2))
	require.NoError(t, c.UpdateBookingStatus(context.Background(), 9, catalog.BookingConfirmed))

	assert.JSONEq(t, `{"delta":-2}`, bodies["/tyres/3/stock"])
	assert.JSONEq(t, `{"status":"Confirmed"}`, bodies["/bookings/9/status"])
}
