package server

import (
	"context"
	"encoding/json"
	"sync"

	"alexis-backoffice/internal/catalog"
)

// MemoryRepository is a Repository held entirely in process memory. It backs
// the server when no database DSN is configured and the handler tests.
type MemoryRepository struct {
	mu       sync.Mutex
	cars     []catalog.Car
	services []catalog.ServiceItem
	tyres    []catalog.TyreProduct
	brands   []catalog.TyreBrand
	bookings []catalog.Booking
	users    map[string]string
	settings map[string]json.RawMessage
	nextID   int
}

// NewMemoryRepository returns an empty in-memory repository. Call Seed to
// load the starter dataset.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    map[string]string{},
		settings: map[string]json.RawMessage{},
		nextID:   1,
	}
}

func (m *MemoryRepository) allocID() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemoryRepository) ListCars(ctx context.Context) ([]catalog.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.Car{}, m.cars...), nil
}

func (m *MemoryRepository) CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car.ID = m.allocID()
	m.cars = append(m.cars, car)
	return car, nil
}

func (m *MemoryRepository) UpdateCar(ctx context.Context, id int, car catalog.Car) (catalog.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cars {
		if m.cars[i].ID == id {
			car.ID = id
			m.cars[i] = car
			return car, nil
		}
	}
	return catalog.Car{}, ErrNotFound
}

func (m *MemoryRepository) DeleteCar(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cars {
		if m.cars[i].ID == id {
			m.cars = append(m.cars[:i], m.cars[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) ListServices(ctx context.Context) ([]catalog.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.ServiceItem{}, m.services...), nil
}

func (m *MemoryRepository) CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	svc.ID = m.allocID()
	m.services = append(m.services, svc)
	return svc, nil
}

func (m *MemoryRepository) UpdateService(ctx context.Context, id int, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.services {
		if m.services[i].ID == id {
			svc.ID = id
			m.services[i] = svc
			return svc, nil
		}
	}
	return catalog.ServiceItem{}, ErrNotFound
}

func (m *MemoryRepository) DeleteService(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.services {
		if m.services[i].ID == id {
			m.services = append(m.services[:i], m.services[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) ListTyres(ctx context.Context) ([]catalog.TyreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.TyreProduct{}, m.tyres...), nil
}

func (m *MemoryRepository) CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tyre.ID = m.allocID()
	m.tyres = append(m.tyres, tyre)
	return tyre, nil
}

func (m *MemoryRepository) UpdateTyre(ctx context.Context, id int, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tyres {
		if m.tyres[i].ID == id {
			tyre.ID = id
			m.tyres[i] = tyre
			return tyre, nil
		}
	}
	return catalog.TyreProduct{}, ErrNotFound
}

func (m *MemoryRepository) DeleteTyre(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tyres {
		if m.tyres[i].ID == id {
			m.tyres = append(m.tyres[:i], m.tyres[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) AdjustTyreStock(ctx context.Context, id, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tyres {
		if m.tyres[i].ID == id {
			next := m.tyres[i].Quantity + delta
			if next < 0 {
				next = 0
			}
			m.tyres[i].Quantity = next
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) ListBrands(ctx context.Context) ([]catalog.TyreBrand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.TyreBrand{}, m.brands...), nil
}

func (m *MemoryRepository) CreateBrand(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b.Name == name {
			return nil
		}
	}
	m.brands = append(m.brands, catalog.TyreBrand{Name: name})
	return nil
}

func (m *MemoryRepository) DeleteBrand(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.brands {
		if m.brands[i].Name == name {
			m.brands = append(m.brands[:i], m.brands[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryRepository) ListBookings(ctx context.Context) ([]catalog.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]catalog.Booking{}, m.bookings...), nil
}

func (m *MemoryRepository) CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = m.allocID()
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *MemoryRepository) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.users[username]
	if !ok {
		return "", ErrNotFound
	}
	return hash, nil
}

func (m *MemoryRepository) CreateUser(ctx context.Context, username, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; ok {
		return ErrDuplicate
	}
	m.users[username] = hash
	return nil
}

func (m *MemoryRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[username]; !ok {
		return ErrNotFound
	}
	m.users[username] = hash
	return nil
}

func (m *MemoryRepository) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append(json.RawMessage{}, value...), nil
}

func (m *MemoryRepository) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = append(json.RawMessage{}, value...)
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
