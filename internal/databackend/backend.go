// Package databackend defines the single contract the reactive store talks
// to, with two implementations: the real REST backend (internal/api's client)
// and the in-memory fixture used while demo mode is active. Call sites depend
// on this one interface instead of branching on the demo flag per method.
package databackend

import (
	"context"
	"errors"

	"alexis-backoffice/internal/api"
	"alexis-backoffice/internal/catalog"
)

// ErrInvalidCredentials is returned by the fixture backend for any login
// other than the demo pair. Remote logins surface the server's 401 instead.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Backend is everything the store needs from a data source.
type Backend interface {
	// Reads.
	ListCars(ctx context.Context) ([]catalog.Car, error)
	ListServices(ctx context.Context) ([]catalog.ServiceItem, error)
	ListTyres(ctx context.Context) ([]catalog.TyreProduct, error)
	ListBrands(ctx context.Context) ([]catalog.TyreBrand, error)
	GetBanner(ctx context.Context) (catalog.Banner, error)
	GetCompanyInfo(ctx context.Context) (catalog.CompanyInfo, error)
	ListBookings(ctx context.Context) ([]catalog.Booking, error)

	// Writes. Create calls return the stored copy with its assigned id.
	CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error)
	UpdateCar(ctx context.Context, car catalog.Car) (catalog.Car, error)
	DeleteCar(ctx context.Context, id int) error
	CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error)
	UpdateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error)
	DeleteService(ctx context.Context, id int) error
	CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error)
	UpdateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error)
	DeleteTyre(ctx context.Context, id int) error
	AdjustTyreStock(ctx context.Context, id, delta int) error
	CreateBrand(ctx context.Context, brand catalog.TyreBrand) (catalog.TyreBrand, error)
	DeleteBrand(ctx context.Context, name string) error
	CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int, status string) error
	CreateUser(ctx context.Context, user catalog.User) error
	ChangePassword(ctx context.Context, username, password string) error
	SaveSetting(ctx context.Context, key string, value any) error

	// Auth.
	Login(ctx context.Context, username, password string) (catalog.Token, error)
}

// The REST client is the remote implementation.
var _ Backend = (*api.Client)(nil)
