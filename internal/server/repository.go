// Package server hosts the Alexis Autos REST API: the same contract the
// client package speaks, backed by PostgreSQL.
package server

import (
	"context"
	"encoding/json"
	"errors"

	"alexis-backoffice/internal/catalog"
)

var (
	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a unique-key violation (usernames, brand names).
	ErrDuplicate = errors.New("record already exists")
)

// Repository is the persistence contract behind the HTTP handlers.
type Repository interface {
	ListCars(ctx context.Context) ([]catalog.Car, error)
	CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error)
	UpdateCar(ctx context.Context, id int, car catalog.Car) (catalog.Car, error)
	DeleteCar(ctx context.Context, id int) error

	ListServices(ctx context.Context) ([]catalog.ServiceItem, error)
	CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error)
	UpdateService(ctx context.Context, id int, svc catalog.ServiceItem) (catalog.ServiceItem, error)
	DeleteService(ctx context.Context, id int) error

	ListTyres(ctx context.Context) ([]catalog.TyreProduct, error)
	CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error)
	UpdateTyre(ctx context.Context, id int, tyre catalog.TyreProduct) (catalog.TyreProduct, error)
	DeleteTyre(ctx context.Context, id int) error
	AdjustTyreStock(ctx context.Context, id, delta int) error

	ListBrands(ctx context.Context) ([]catalog.TyreBrand, error)
	CreateBrand(ctx context.Context, name string) error
	DeleteBrand(ctx context.Context, name string) error

	ListBookings(ctx context.Context) ([]catalog.Booking, error)
	CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int, status string) error

	GetPasswordHash(ctx context.Context, username string) (string, error)
	CreateUser(ctx context.Context, username, hash string) error
	UpdatePassword(ctx context.Context, username, hash string) error

	GetSetting(ctx context.Context, key string) (json.RawMessage, error)
	SaveSetting(ctx context.Context, key string, value json.RawMessage) error
}
