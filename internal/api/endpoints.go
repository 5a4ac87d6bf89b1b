package api

import (
	"context"
	"fmt"
	"net/url"

	"alexis-backoffice/internal/catalog"
)

// --- Public reads ---

// ListCars returns the full sales inventory.
func (c *Client) ListCars(ctx context.Context) ([]catalog.Car, error) {
	var cars []catalog.Car
	if err := c.get(ctx, "/cars", false, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// ListServices returns the workshop service list.
func (c *Client) ListServices(ctx context.Context) ([]catalog.ServiceItem, error) {
	var services []catalog.ServiceItem
	if err := c.get(ctx, "/services", false, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// ListTyres returns the tyre stock.
func (c *Client) ListTyres(ctx context.Context) ([]catalog.TyreProduct, error) {
	var tyres []catalog.TyreProduct
	if err := c.get(ctx, "/tyres", false, &tyres); err != nil {
		return nil, err
	}
	return tyres, nil
}

// ListBrands returns the tyre brands.
func (c *Client) ListBrands(ctx context.Context) ([]catalog.TyreBrand, error) {
	var brands []catalog.TyreBrand
	if err := c.get(ctx, "/brands", false, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// GetBanner returns the stored banner setting. An empty object means no
// banner has ever been saved.
func (c *Client) GetBanner(ctx context.Context) (catalog.Banner, error) {
	var banner catalog.Banner
	err := c.get(ctx, "/settings/banner", false, &banner)
	return banner, err
}

// GetCompanyInfo returns the stored company info aggregate.
func (c *Client) GetCompanyInfo(ctx context.Context) (catalog.CompanyInfo, error) {
	var info catalog.CompanyInfo
	err := c.get(ctx, "/settings/companyInfo", false, &info)
	return info, err
}

// --- Auth ---

// Login exchanges credentials for a bearer token. A non-2xx response comes
// back as an *APIError so the caller can show invalid-credentials distinctly.
func (c *Client) Login(ctx context.Context, username, password string) (catalog.Token, error) {
	var tok catalog.Token
	err := c.post(ctx, "/login", false, catalog.User{Username: username, Password: password}, &tok)
	return tok, err
}

// --- Authenticated reads ---

// ListBookings requires a bearer token; the server answers 401/403 without
// one.
func (c *Client) ListBookings(ctx context.Context) ([]catalog.Booking, error) {
	var bookings []catalog.Booking
	if err := c.get(ctx, "/bookings", true, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// --- Cars ---

// CreateCar sends a car without an id and returns the server's copy with the
// assigned id.
func (c *Client) CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	var created catalog.Car
	err := c.post(ctx, "/cars", true, car, &created)
	return created, err
}

// UpdateCar sends a full replacement record.
func (c *Client) UpdateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	var updated catalog.Car
	err := c.put(ctx, fmt.Sprintf("/cars/%d", car.ID), true, car, &updated)
	return updated, err
}

// DeleteCar removes a car by id.
func (c *Client) DeleteCar(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/cars/%d", id), nil)
}

// --- Services ---

// CreateService sends a service without an id.
func (c *Client) CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	var created catalog.ServiceItem
	err := c.post(ctx, "/services", true, svc, &created)
	return created, err
}

// UpdateService sends a full replacement record.
func (c *Client) UpdateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	var updated catalog.ServiceItem
	err := c.put(ctx, fmt.Sprintf("/services/%d", svc.ID), true, svc, &updated)
	return updated, err
}

// DeleteService removes a service by id.
func (c *Client) DeleteService(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/services/%d", id), nil)
}

// --- Tyres ---

// CreateTyre sends a tyre without an id.
func (c *Client) CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	var created catalog.TyreProduct
	err := c.post(ctx, "/tyres", true, tyre, &created)
	return created, err
}

// UpdateTyre sends a full replacement record.
func (c *Client) UpdateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	var updated catalog.TyreProduct
	err := c.put(ctx, fmt.Sprintf("/tyres/%d", tyre.ID), true, tyre, &updated)
	return updated, err
}

// DeleteTyre removes a tyre by id.
func (c *Client) DeleteTyre(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/tyres/%d", id), nil)
}

// AdjustTyreStock sends a signed delta to the stock endpoint. The server
// clamps the resulting quantity at zero.
func (c *Client) AdjustTyreStock(ctx context.Context, id, delta int) error {
	return c.put(ctx, fmt.Sprintf("/tyres/%d/stock", id), true, catalog.StockUpdate{Delta: delta}, nil)
}

// --- Brands ---

// CreateBrand adds a tyre brand.
func (c *Client) CreateBrand(ctx context.Context, brand catalog.TyreBrand) (catalog.TyreBrand, error) {
	var created catalog.TyreBrand
	err := c.post(ctx, "/brands", true, brand, &created)
	return created, err
}

// DeleteBrand removes a brand; the name is the key.
func (c *Client) DeleteBrand(ctx context.Context, name string) error {
	return c.delete(ctx, "/brands/"+url.PathEscape(name), nil)
}

// --- Bookings ---

// CreateBooking is the one public write: no auth header, and the server
// forces status to Pending regardless of the payload.
func (c *Client) CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error) {
	var created catalog.Booking
	err := c.post(ctx, "/bookings", false, booking, &created)
	return created, err
}

// UpdateBookingStatus transitions a booking's status.
func (c *Client) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	return c.put(ctx, fmt.Sprintf("/bookings/%d/status", id), true, catalog.StatusUpdate{Status: status}, nil)
}

// --- Users ---

// CreateUser adds an admin account.
func (c *Client) CreateUser(ctx context.Context, user catalog.User) error {
	return c.post(ctx, "/users", true, user, nil)
}

// ChangePassword changes an account's password by username.
func (c *Client) ChangePassword(ctx context.Context, username, password string) error {
	return c.put(ctx, "/users/"+url.PathEscape(username)+"/password", true, catalog.PasswordUpdate{Password: password}, nil)
}

// --- Settings ---

// SaveSetting writes a whole settings aggregate under its key.
func (c *Client) SaveSetting(ctx context.Context, key string, value any) error {
	return c.post(ctx, "/settings", true, catalog.SettingsUpdate{Key: key, Value: value}, nil)
}
