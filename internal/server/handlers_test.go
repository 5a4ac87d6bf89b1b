package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alexis-backoffice/internal/catalog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := NewMemoryRepository()
	require.NoError(t, Seed(context.Background(), repo))
	ts := httptest.NewServer(New(repo).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, ts *httptest.Server, username, password string) (string, int) {
	t.Helper()
	body, _ := json.Marshal(catalog.User{Username: username, Password: password})
	resp, err := http.Post(ts.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode
	}
	var token catalog.Token
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	return token.AccessToken, resp.StatusCode
}

func doAuthed(t *testing.T, ts *httptest.Server, method, path, token string, payload ...any) *http.Response {
	t.Helper()
	body := []byte(nil)
	if len(payload) > 0 {
		raw, err := json.Marshal(payload[0])
		require.NoError(t, err)
		body = raw
	}
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPublicEndpointsServeSeedData(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cars")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cars []catalog.Car
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cars))
	require.Len(t, cars, 2)
	assert.Equal(t, "Audi RS6", cars[0].Model)

	resp, err = http.Get(ts.URL + "/api/settings/companyInfo")
	require.NoError(t, err)
	defer resp.Body.Close()

	var info catalog.CompanyInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "alexisautosltd@gmail.com", info.Contact.Email)
}

func TestUnknownSettingIsEmptyObject(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/settings/nonsense")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var value map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	assert.Empty(t, value)
}

func TestLoginIssuesToken(t *testing.T) {
	ts := newTestServer(t)

	token, status := login(t, ts, "admin", "password")
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, token)

	_, status = login(t, ts, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)

	_, status = login(t, ts, "ghost", "password")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/bookings")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodPost, "/api/cars", "bogus-token", catalog.Car{Model: "Lotus Emira"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCarCRUD(t *testing.T) {
	ts := newTestServer(t)
	token, _ := login(t, ts, "admin", "password")

	resp := doAuthed(t, ts, http.MethodPost, "/api/cars", token, catalog.Car{
		Model: "Porsche 911", Year: 2022, Engine: "3.0L Flat Six", Price: 95000,
		Transmission: catalog.TransmissionManual, Features: []string{"Sports Chrono"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created catalog.Car
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.NotZero(t, created.ID)

	created.Sold = true
	resp = doAuthed(t, ts, http.MethodPut, "/api/cars/"+strconv.Itoa(created.ID), token, created)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodDelete, "/api/cars/"+strconv.Itoa(created.ID), token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodDelete, "/api/cars/"+strconv.Itoa(created.ID), token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookingForcedPending(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(catalog.Booking{
		CustomerName: "T. Shelby", Contact: "0771", ServiceType: "Brakes",
		Date: "2026-09-01", Status: catalog.BookingConfirmed,
	})
	resp, err := http.Post(ts.URL+"/api/bookings", "application/json", bytes.NewReader(body))
	require.NoError(t, err)

	var created catalog.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, catalog.BookingPending, created.Status)

	token, _ := login(t, ts, "admin", "password")
	resp = doAuthed(t, ts, http.MethodPut, "/api/bookings/"+strconv.Itoa(created.ID)+"/status", token,
		catalog.StatusUpdate{Status: catalog.BookingConfirmed})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodGet, "/api/bookings", token)
	var bookings []catalog.Booking
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bookings))
	resp.Body.Close()
	require.Len(t, bookings, 1)
	assert.Equal(t, catalog.BookingConfirmed, bookings[0].Status)
}

func TestStockDeltaClampsAtZero(t *testing.T) {
	ts := newTestServer(t)
	token, _ := login(t, ts, "admin", "password")

	resp, err := http.Get(ts.URL + "/api/tyres")
	require.NoError(t, err)
	var tyres []catalog.TyreProduct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tyres))
	resp.Body.Close()
	require.NotEmpty(t, tyres)
	target := tyres[0]

	resp = doAuthed(t, ts, http.MethodPut, "/api/tyres/"+strconv.Itoa(target.ID)+"/stock", token,
		catalog.StockUpdate{Delta: -(target.Quantity + 100)})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/tyres")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tyres))
	resp.Body.Close()
	assert.Equal(t, 0, tyres[0].Quantity)
}

func TestBrandDeleteWithEscapedName(t *testing.T) {
	ts := newTestServer(t)
	token, _ := login(t, ts, "admin", "password")

	resp := doAuthed(t, ts, http.MethodPost, "/api/brands", token, catalog.TyreBrand{Name: "Event Tyres/UK"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodDelete, "/api/brands/Event%20Tyres%2FUK", token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/brands")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []catalog.TyreBrand
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	for _, b := range list {
		assert.NotEqual(t, "Event Tyres/UK", b.Name)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token, _ := login(t, ts, "admin", "password")

	banner := catalog.Banner{Active: true, Reason: "Bank holiday closure"}
	resp := doAuthed(t, ts, http.MethodPost, "/api/settings", token,
		catalog.SettingsUpdate{Key: catalog.SettingBanner, Value: banner})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/settings/banner")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got catalog.Banner
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, banner, got)
}

func TestAddUserAndChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token, _ := login(t, ts, "admin", "password")

	resp := doAuthed(t, ts, http.MethodPost, "/api/users", token,
		catalog.User{Username: "manager", Password: "s3cret"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doAuthed(t, ts, http.MethodPost, "/api/users", token,
		catalog.User{Username: "manager", Password: "other"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, status := login(t, ts, "manager", "s3cret")
	require.Equal(t, http.StatusOK, status)

	resp = doAuthed(t, ts, http.MethodPut, "/api/users/manager/password", token,
		catalog.PasswordUpdate{Password: "rotated"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, status = login(t, ts, "manager", "s3cret")
	assert.Equal(t, http.StatusUnauthorized, status)
	_, status = login(t, ts, "manager", "rotated")
	assert.Equal(t, http.StatusOK, status)
}

func TestExpiredTokenRejected(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, Seed(context.Background(), repo))
	srv := New(repo)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	token, _ := login(t, ts, "admin", "password")
	srv.now = func() time.Time { return time.Now().Add(tokenTTL + time.Minute) }

	resp := doAuthed(t, ts, http.MethodGet, "/api/bookings", token)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
