// Package store is the single source of truth for everything the back-office
// shows: inventory, tyres, services, bookings, settings. Every read is a live
// signal; every write goes to the backend first and mutates local state only
// in the success branch. With demo mode on, the backend is an in-memory
// fixture and nothing touches the network.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"alexis-backoffice/internal/api"
	"alexis-backoffice/internal/catalog"
	"alexis-backoffice/internal/databackend"
	"alexis-backoffice/internal/prefs"
)

// ErrNotCached is returned by update calls when the target record is not in
// the local collection. The backend update endpoints are full-replace, so a
// patch can only be built over a cached copy.
var ErrNotCached = errors.New("record not in local state")

const defaultTheme = prefs.ThemeDark

// Store owns the live entity collections and mediates every backend call.
// Construct one per process, call Initialize, then read signals and invoke
// methods.
type Store struct {
	backend databackend.Backend
	prefs   *prefs.Prefs
	demo    bool

	Inventory   *Signal[[]catalog.Car]
	Tyres       *Signal[[]catalog.TyreProduct]
	TyreBrands  *Signal[[]catalog.TyreBrand]
	Services    *Signal[[]catalog.ServiceItem]
	Bookings    *Signal[[]catalog.Booking]
	CompanyInfo *Signal[catalog.CompanyInfo]
	Banner      *Signal[catalog.Banner]
	Theme       *Signal[string]
}

// New builds a store over an already-resolved backend. The composition root
// decides between the remote client and the demo fixture (NewFromPrefs does
// this from the persisted flag).
func New(backend databackend.Backend, p *prefs.Prefs) *Store {
	return &Store{
		backend:     backend,
		prefs:       p,
		Inventory:   NewSignal[[]catalog.Car](nil),
		Tyres:       NewSignal[[]catalog.TyreProduct](nil),
		TyreBrands:  NewSignal[[]catalog.TyreBrand](nil),
		Services:    NewSignal[[]catalog.ServiceItem](nil),
		Bookings:    NewSignal[[]catalog.Booking](nil),
		CompanyInfo: NewSignal(catalog.CompanyInfo{}),
		Banner:      NewSignal(catalog.Banner{}),
		Theme:       NewSignal(defaultTheme),
	}
}

// NewFromPrefs builds the store for normal startup: the fixture backend when
// the persisted demo flag is set, otherwise the remote client at baseURL.
func NewFromPrefs(baseURL string, p *prefs.Prefs, tokens api.TokenSource) *Store {
	if p.DemoMode() {
		s := New(databackend.NewFixture(), p)
		s.demo = true
		return s
	}
	return New(api.NewClient(baseURL, tokens), p)
}

// DemoMode reports whether the store is serving fixture data.
func (s *Store) DemoMode() bool { return s.demo }

// Initialize restores persisted preferences and performs the startup load:
// fixture snapshot when demo mode is on, otherwise five concurrent reads
// (cars, services, tyres, brands, settings) awaited jointly. Bookings are
// excluded; they need a token and load when the session confirms one. A
// connectivity-class failure raises the banner with the demo-mode offer and
// is also returned.
func (s *Store) Initialize(ctx context.Context) error {
	if theme := s.prefs.Theme(); theme != "" {
		s.Theme.Set(theme)
	}

	if s.demo {
		s.loadFixture(ctx)
		return nil
	}

	loads := []struct {
		name string
		run  func(context.Context) error
	}{
		{"cars", s.loadCars},
		{"services", s.loadServices},
		{"tyres", s.loadTyres},
		{"brands", s.loadBrands},
		{"settings", s.loadSettings},
	}

	errs := make([]error, len(loads))
	var wg sync.WaitGroup
	for i, l := range loads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = l.run(ctx)
		}()
	}
	wg.Wait()

	var connErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		if api.IsUnreachable(err) || api.IsServerError(err) {
			connErr = fmt.Errorf("loading %s: %w", loads[i].name, err)
		} else {
			// Not a connectivity problem; report and move on.
			log.Printf("initial %s load failed: %v", loads[i].name, err)
		}
	}

	if connErr != nil {
		s.Banner.Set(catalog.Banner{
			Active: true,
			Reason: "Cannot reach the Alexis Autos API. Check the API URL or switch to demo mode.",
			Action: catalog.BannerActionDemo,
		})
		return connErr
	}
	return nil
}

func (s *Store) loadFixture(ctx context.Context) {
	// Fixture reads settle synchronously and cannot fail.
	cars, _ := s.backend.ListCars(ctx)
	services, _ := s.backend.ListServices(ctx)
	tyres, _ := s.backend.ListTyres(ctx)
	brands, _ := s.backend.ListBrands(ctx)
	info, _ := s.backend.GetCompanyInfo(ctx)

	s.Inventory.Set(cars)
	s.Services.Set(services)
	s.Tyres.Set(tyres)
	s.TyreBrands.Set(brands)
	s.CompanyInfo.Set(info)
	s.Banner.Set(catalog.Banner{
		Active: true,
		Reason: "Demo mode is on: showing sample data, changes are local only.",
	})
}

func (s *Store) loadCars(ctx context.Context) error {
	cars, err := s.backend.ListCars(ctx)
	if err != nil {
		return err
	}
	s.Inventory.Set(cars)
	return nil
}

func (s *Store) loadServices(ctx context.Context) error {
	services, err := s.backend.ListServices(ctx)
	if err != nil {
		return err
	}
	s.Services.Set(services)
	return nil
}

func (s *Store) loadTyres(ctx context.Context) error {
	tyres, err := s.backend.ListTyres(ctx)
	if err != nil {
		return err
	}
	s.Tyres.Set(tyres)
	return nil
}

func (s *Store) loadBrands(ctx context.Context) error {
	brands, err := s.backend.ListBrands(ctx)
	if err != nil {
		return err
	}
	s.TyreBrands.Set(brands)
	return nil
}

func (s *Store) loadSettings(ctx context.Context) error {
	banner, err := s.backend.GetBanner(ctx)
	if err != nil {
		return err
	}
	// The server answers {} when a setting was never saved; keep the
	// previous value then.
	if banner != (catalog.Banner{}) {
		s.Banner.Set(banner)
	}

	info, err := s.backend.GetCompanyInfo(ctx)
	if err != nil {
		return err
	}
	if !emptyCompanyInfo(info) {
		s.CompanyInfo.Set(info)
	}
	return nil
}

func emptyCompanyInfo(info catalog.CompanyInfo) bool {
	return info.Contact.Email == "" && info.Contact.Phone == "" && info.Contact.Whatsapp == "" &&
		len(info.Address.Lines) == 0 && len(info.OpeningHours) == 0 && len(info.Facilities) == 0
}

// LoadBookings fetches the auth-gated bookings list. The session manager
// calls this once a token is confirmed.
func (s *Store) LoadBookings(ctx context.Context) error {
	bookings, err := s.backend.ListBookings(ctx)
	if err != nil {
		return err
	}
	s.Bookings.Set(bookings)
	return nil
}

// Login delegates to the backend: the real login endpoint, or the fixed demo
// pair when demo mode is on.
func (s *Store) Login(ctx context.Context, username, password string) (catalog.Token, error) {
	return s.backend.Login(ctx, username, password)
}

// --- Demo mode and theme ---

// EnableDemoMode persists the flag, swaps in the fixture backend, and
// replaces every collection with the sample snapshot. No network is touched
// from here on.
func (s *Store) EnableDemoMode(ctx context.Context) error {
	if err := s.prefs.SetDemoMode(true); err != nil {
		return err
	}
	s.demo = true
	s.backend = databackend.NewFixture()
	s.loadFixture(ctx)
	return nil
}

// DisableDemoMode clears the flag. Real connectivity is attempted on the
// next start, so the caller must restart.
func (s *Store) DisableDemoMode() (restartRequired bool, err error) {
	if err := s.prefs.SetDemoMode(false); err != nil {
		return false, err
	}
	return true, nil
}

// SetTheme persists and publishes the UI theme.
func (s *Store) SetTheme(theme string) error {
	if theme != prefs.ThemeDark && theme != prefs.ThemeLight {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.prefs.SetTheme(theme); err != nil {
		return err
	}
	s.Theme.Set(theme)
	return nil
}

// --- Cars ---

// AddCar creates a car and appends the server's copy, order preserved.
func (s *Store) AddCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	created, err := s.backend.CreateCar(ctx, car)
	if err != nil {
		return catalog.Car{}, err
	}
	s.Inventory.Update(func(cars []catalog.Car) []catalog.Car {
		return append(cars, created)
	})
	return created, nil
}

// UpdateCar overlays a sparse patch onto the cached record, sends the full
// replacement, and on success swaps in the server's copy in place.
func (s *Store) UpdateCar(ctx context.Context, id int, patch catalog.CarPatch) (catalog.Car, error) {
	current, ok := findByID(s.Inventory.Get(), id, func(c catalog.Car) int { return c.ID })
	if !ok {
		return catalog.Car{}, fmt.Errorf("car %d: %w", id, ErrNotCached)
	}
	updated, err := s.backend.UpdateCar(ctx, patch.Apply(current))
	if err != nil {
		return catalog.Car{}, err
	}
	s.Inventory.Update(replaceByID(updated, func(c catalog.Car) int { return c.ID }))
	return updated, nil
}

// RemoveCar deletes a car and drops it from local state.
func (s *Store) RemoveCar(ctx context.Context, id int) error {
	if err := s.backend.DeleteCar(ctx, id); err != nil {
		return err
	}
	s.Inventory.Update(removeByID[catalog.Car](id, func(c catalog.Car) int { return c.ID }))
	return nil
}

// --- Services ---

// AddService creates a service and appends the server's copy.
func (s *Store) AddService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	created, err := s.backend.CreateService(ctx, svc)
	if err != nil {
		return catalog.ServiceItem{}, err
	}
	s.Services.Update(func(items []catalog.ServiceItem) []catalog.ServiceItem {
		return append(items, created)
	})
	return created, nil
}

// UpdateService overlays a sparse patch onto the cached record.
func (s *Store) UpdateService(ctx context.Context, id int, patch catalog.ServicePatch) (catalog.ServiceItem, error) {
	current, ok := findByID(s.Services.Get(), id, func(i catalog.ServiceItem) int { return i.ID })
	if !ok {
		return catalog.ServiceItem{}, fmt.Errorf("service %d: %w", id, ErrNotCached)
	}
	updated, err := s.backend.UpdateService(ctx, patch.Apply(current))
	if err != nil {
		return catalog.ServiceItem{}, err
	}
	s.Services.Update(replaceByID(updated, func(i catalog.ServiceItem) int { return i.ID }))
	return updated, nil
}

// RemoveService deletes a service.
func (s *Store) RemoveService(ctx context.Context, id int) error {
	if err := s.backend.DeleteService(ctx, id); err != nil {
		return err
	}
	s.Services.Update(removeByID[catalog.ServiceItem](id, func(i catalog.ServiceItem) int { return i.ID }))
	return nil
}

// --- Tyres ---

// AddTyreProduct creates a tyre line and appends the server's copy.
func (s *Store) AddTyreProduct(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	created, err := s.backend.CreateTyre(ctx, tyre)
	if err != nil {
		return catalog.TyreProduct{}, err
	}
	s.Tyres.Update(func(tyres []catalog.TyreProduct) []catalog.TyreProduct {
		return append(tyres, created)
	})
	return created, nil
}

// UpdateTyreProduct overlays a sparse patch onto the cached record.
func (s *Store) UpdateTyreProduct(ctx context.Context, id int, patch catalog.TyrePatch) (catalog.TyreProduct, error) {
	current, ok := findByID(s.Tyres.Get(), id, func(t catalog.TyreProduct) int { return t.ID })
	if !ok {
		return catalog.TyreProduct{}, fmt.Errorf("tyre %d: %w", id, ErrNotCached)
	}
	updated, err := s.backend.UpdateTyre(ctx, patch.Apply(current))
	if err != nil {
		return catalog.TyreProduct{}, err
	}
	s.Tyres.Update(replaceByID(updated, func(t catalog.TyreProduct) int { return t.ID }))
	return updated, nil
}

// RemoveTyreProduct deletes a tyre line.
func (s *Store) RemoveTyreProduct(ctx context.Context, id int) error {
	if err := s.backend.DeleteTyre(ctx, id); err != nil {
		return err
	}
	s.Tyres.Update(removeByID[catalog.TyreProduct](id, func(t catalog.TyreProduct) int { return t.ID }))
	return nil
}

// UpdateTyreStock sends the signed delta and, once the server confirms,
// applies it locally with the quantity floor-clamped at zero. The quantity is
// not re-fetched, so local and server state can diverge if their clamping
// rules ever differ.
func (s *Store) UpdateTyreStock(ctx context.Context, id, delta int) error {
	if err := s.backend.AdjustTyreStock(ctx, id, delta); err != nil {
		return err
	}
	s.Tyres.Update(func(tyres []catalog.TyreProduct) []catalog.TyreProduct {
		out := append([]catalog.TyreProduct(nil), tyres...)
		for i := range out {
			if out[i].ID == id {
				q := out[i].Quantity + delta
				if q < 0 {
					q = 0
				}
				out[i].Quantity = q
			}
		}
		return out
	})
	return nil
}

// SearchTyres is a synchronous, case-insensitive substring filter over the
// loaded tyre collection, matching brand, model, size and category. Queries
// shorter than two characters mean "no query yet" and return nothing.
func (s *Store) SearchTyres(query string) []catalog.TyreProduct {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < 2 {
		return nil
	}
	var out []catalog.TyreProduct
	for _, t := range s.Tyres.Get() {
		if strings.Contains(strings.ToLower(t.Brand), q) ||
			strings.Contains(strings.ToLower(t.Model), q) ||
			strings.Contains(strings.ToLower(t.Size), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

// --- Brands ---

// AddTyreBrand creates a brand by name and appends the stored copy.
func (s *Store) AddTyreBrand(ctx context.Context, name string) (catalog.TyreBrand, error) {
	created, err := s.backend.CreateBrand(ctx, catalog.TyreBrand{Name: name})
	if err != nil {
		return catalog.TyreBrand{}, err
	}
	s.TyreBrands.Update(func(brands []catalog.TyreBrand) []catalog.TyreBrand {
		return append(brands, created)
	})
	return created, nil
}

// RemoveTyreBrand deletes a brand; the name is the key.
func (s *Store) RemoveTyreBrand(ctx context.Context, name string) error {
	if err := s.backend.DeleteBrand(ctx, name); err != nil {
		return err
	}
	s.TyreBrands.Update(func(brands []catalog.TyreBrand) []catalog.TyreBrand {
		out := make([]catalog.TyreBrand, 0, len(brands))
		for _, b := range brands {
			if b.Name != name {
				out = append(out, b)
			}
		}
		return out
	})
	return nil
}

// --- Bookings ---

// CreateBooking is the public submission path: no token, and the status is
// forced to Pending whatever the caller supplied. The local bookings list is
// not touched; it is admin-only data loaded after login.
func (s *Store) CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error) {
	booking.Status = catalog.BookingPending
	return s.backend.CreateBooking(ctx, booking)
}

// UpdateBookingStatus transitions a booking and, on confirmation, patches
// only the status field of the matching local record.
func (s *Store) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	if err := s.backend.UpdateBookingStatus(ctx, id, status); err != nil {
		return err
	}
	s.Bookings.Update(func(bookings []catalog.Booking) []catalog.Booking {
		out := append([]catalog.Booking(nil), bookings...)
		for i := range out {
			if out[i].ID == id {
				out[i].Status = status
			}
		}
		return out
	})
	return nil
}

// --- Users ---

// AddUser creates an admin account. Nothing is cached locally; passwords are
// write-only.
func (s *Store) AddUser(ctx context.Context, username, password string) error {
	return s.backend.CreateUser(ctx, catalog.User{Username: username, Password: password})
}

// ChangePassword changes an account's password by username.
func (s *Store) ChangePassword(ctx context.Context, username, password string) error {
	return s.backend.ChangePassword(ctx, username, password)
}

// --- Settings ---

// Settings saves are whole-aggregate: read the current in-memory value,
// overlay the changed slice, write everything back, and trust the sent copy.

// UpdateBanner saves the admin banner.
func (s *Store) UpdateBanner(ctx context.Context, active bool, reason string) error {
	payload := catalog.Banner{Active: active, Reason: reason}
	if err := s.backend.SaveSetting(ctx, catalog.SettingBanner, payload); err != nil {
		return err
	}
	s.Banner.Set(payload)
	return nil
}

func (s *Store) saveCompanyInfo(ctx context.Context, payload catalog.CompanyInfo) error {
	if err := s.backend.SaveSetting(ctx, catalog.SettingCompanyInfo, payload); err != nil {
		return err
	}
	s.CompanyInfo.Set(payload)
	return nil
}

// UpdateCompanyContact overlays the contact block.
func (s *Store) UpdateCompanyContact(ctx context.Context, contact catalog.ContactInfo) error {
	payload := s.CompanyInfo.Get()
	payload.Contact.Email = contact.Email
	payload.Contact.Phone = contact.Phone
	payload.Contact.Whatsapp = contact.Whatsapp
	return s.saveCompanyInfo(ctx, payload)
}

// SetOpeningHours overlays the opening hours table.
func (s *Store) SetOpeningHours(ctx context.Context, hours []catalog.OpeningHours) error {
	payload := s.CompanyInfo.Get()
	payload.OpeningHours = append([]catalog.OpeningHours(nil), hours...)
	return s.saveCompanyInfo(ctx, payload)
}

// SetAddressLines overlays the address block.
func (s *Store) SetAddressLines(ctx context.Context, lines []string) error {
	payload := s.CompanyInfo.Get()
	payload.Address.Lines = append([]string(nil), lines...)
	return s.saveCompanyInfo(ctx, payload)
}

// AddFacility appends one facility and saves the aggregate.
func (s *Store) AddFacility(ctx context.Context, name string) error {
	payload := s.CompanyInfo.Get()
	payload.Facilities = append(append([]string(nil), payload.Facilities...), name)
	return s.saveCompanyInfo(ctx, payload)
}

// RemoveFacility drops one facility and saves the aggregate.
func (s *Store) RemoveFacility(ctx context.Context, name string) error {
	payload := s.CompanyInfo.Get()
	out := make([]string, 0, len(payload.Facilities))
	for _, f := range payload.Facilities {
		if f != name {
			out = append(out, f)
		}
	}
	payload.Facilities = out
	return s.saveCompanyInfo(ctx, payload)
}

// --- slice helpers ---

func findByID[T any](items []T, id int, idOf func(T) int) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func replaceByID[T any](updated T, idOf func(T) int) func([]T) []T {
	return func(items []T) []T {
		out := append([]T(nil), items...)
		for i := range out {
			if idOf(out[i]) == idOf(updated) {
				out[i] = updated
			}
		}
		return out
	}
}

func removeByID[T any](id int, idOf func(T) int) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, item := range items {
			if idOf(item) != id {
				out = append(out, item)
			}
		}
		return out
	}
}
