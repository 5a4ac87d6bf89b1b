package databackend

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alexis-backoffice/internal/catalog"
)

// The one credential pair the fixture backend accepts. Everything else is
// rejected without any network call.
const (
	DemoUsername = "admin"
	DemoPassword = "password"
)

// Fixture serves and mutates an in-memory snapshot. Every write settles
// synchronously and returns success; nothing ever touches the network.
type Fixture struct {
	mu     sync.Mutex
	snap   catalog.Snapshot
	nextID int
}

// NewFixture builds a fixture backend over the demo dataset.
func NewFixture() *Fixture {
	return NewFixtureWith(catalog.DemoSnapshot())
}

// NewFixtureWith builds a fixture backend over an explicit snapshot.
func NewFixtureWith(snap catalog.Snapshot) *Fixture {
	next := 1
	for _, c := range snap.Cars {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	for _, s := range snap.Services {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	for _, ty := range snap.Tyres {
		if ty.ID >= next {
			next = ty.ID + 1
		}
	}
	for _, b := range snap.Bookings {
		if b.ID >= next {
			next = b.ID + 1
		}
	}
	return &Fixture{snap: snap, nextID: next}
}

func (f *Fixture) assignID() int {
	id := f.nextID
	f.nextID++
	return id
}

// --- Reads ---

func (f *Fixture) ListCars(ctx context.Context) ([]catalog.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Car(nil), f.snap.Cars...), nil
}

func (f *Fixture) ListServices(ctx context.Context) ([]catalog.ServiceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.ServiceItem(nil), f.snap.Services...), nil
}

func (f *Fixture) ListTyres(ctx context.Context) ([]catalog.TyreProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.TyreProduct(nil), f.snap.Tyres...), nil
}

func (f *Fixture) ListBrands(ctx context.Context) ([]catalog.TyreBrand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.TyreBrand(nil), f.snap.Brands...), nil
}

func (f *Fixture) GetBanner(ctx context.Context) (catalog.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.Banner, nil
}

func (f *Fixture) GetCompanyInfo(ctx context.Context) (catalog.CompanyInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.CompanyInfo, nil
}

func (f *Fixture) ListBookings(ctx context.Context) ([]catalog.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Booking(nil), f.snap.Bookings...), nil
}

// --- Cars ---

func (f *Fixture) CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	car.ID = f.assignID()
	f.snap.Cars = append(f.snap.Cars, car)
	return car, nil
}

func (f *Fixture) UpdateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Cars {
		if f.snap.Cars[i].ID == car.ID {
			f.snap.Cars[i] = car
			return car, nil
		}
	}
	return catalog.Car{}, fmt.Errorf("car %d not found", car.ID)
}

func (f *Fixture) DeleteCar(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Cars {
		if f.snap.Cars[i].ID == id {
			f.snap.Cars = append(f.snap.Cars[:i], f.snap.Cars[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("car %d not found", id)
}

// --- Services ---

func (f *Fixture) CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	svc.ID = f.assignID()
	f.snap.Services = append(f.snap.Services, svc)
	return svc, nil
}

func (f *Fixture) UpdateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Services {
		if f.snap.Services[i].ID == svc.ID {
			f.snap.Services[i] = svc
			return svc, nil
		}
	}
	return catalog.ServiceItem{}, fmt.Errorf("service %d not found", svc.ID)
}

func (f *Fixture) DeleteService(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Services {
		if f.snap.Services[i].ID == id {
			f.snap.Services = append(f.snap.Services[:i], f.snap.Services[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("service %d not found", id)
}

// --- Tyres ---

func (f *Fixture) CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tyre.ID = f.assignID()
	f.snap.Tyres = append(f.snap.Tyres, tyre)
	return tyre, nil
}

func (f *Fixture) UpdateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Tyres {
		if f.snap.Tyres[i].ID == tyre.ID {
			f.snap.Tyres[i] = tyre
			return tyre, nil
		}
	}
	return catalog.TyreProduct{}, fmt.Errorf("tyre %d not found", tyre.ID)
}

func (f *Fixture) DeleteTyre(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Tyres {
		if f.snap.Tyres[i].ID == id {
			f.snap.Tyres = append(f.snap.Tyres[:i], f.snap.Tyres[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("tyre %d not found", id)
}

func (f *Fixture) AdjustTyreStock(ctx context.Context, id, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Tyres {
		if f.snap.Tyres[i].ID == id {
			q := f.snap.Tyres[i].Quantity + delta
			if q < 0 {
				q = 0
			}
			f.snap.Tyres[i].Quantity = q
			return nil
		}
	}
	return fmt.Errorf("tyre %d not found", id)
}

// --- Brands ---

func (f *Fixture) CreateBrand(ctx context.Context, brand catalog.TyreBrand) (catalog.TyreBrand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.Brands = append(f.snap.Brands, brand)
	return brand, nil
}

func (f *Fixture) DeleteBrand(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Brands {
		if f.snap.Brands[i].Name == name {
			f.snap.Brands = append(f.snap.Brands[:i], f.snap.Brands[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("brand %q not found", name)
}

// --- Bookings ---

func (f *Fixture) CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = f.assignID()
	booking.Status = catalog.BookingPending
	f.snap.Bookings = append(f.snap.Bookings, booking)
	return booking, nil
}

func (f *Fixture) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.snap.Bookings {
		if f.snap.Bookings[i].ID == id {
			f.snap.Bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %d not found", id)
}

// --- Users and settings ---

// CreateUser succeeds without storing anything; demo user management is
// local-only and the demo login pair is fixed.
func (f *Fixture) CreateUser(ctx context.Context, user catalog.User) error {
	return nil
}

func (f *Fixture) ChangePassword(ctx context.Context, username, password string) error {
	return nil
}

func (f *Fixture) SaveSetting(ctx context.Context, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch key {
	case catalog.SettingBanner:
		if b, ok := value.(catalog.Banner); ok {
			f.snap.Banner = b
			return nil
		}
	case catalog.SettingCompanyInfo:
		if info, ok := value.(catalog.CompanyInfo); ok {
			f.snap.CompanyInfo = info
			return nil
		}
	}
	return fmt.Errorf("unknown setting %q", key)
}

// Login accepts exactly the demo pair and mints a throwaway token.
func (f *Fixture) Login(ctx context.Context, username, password string) (catalog.Token, error) {
	if username != DemoUsername || password != DemoPassword {
		return catalog.Token{}, ErrInvalidCredentials
	}
	return catalog.Token{
		AccessToken: "demo-" + uuid.NewString(),
		TokenType:   "bearer",
		Username:    DemoUsername,
	}, nil
}

var _ Backend = (*Fixture)(nil)
