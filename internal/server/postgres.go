package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"alexis-backoffice/internal/catalog"
)

// PostgresRepository implements Repository on PostgreSQL. Car features and
// tyre specs are stored as JSON text, matching the wire shape.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository wraps an open connection pool.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS cars (
	id SERIAL PRIMARY KEY,
	model TEXT NOT NULL,
	year INTEGER NOT NULL,
	engine TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	image TEXT NOT NULL,
	sold BOOLEAN NOT NULL DEFAULT FALSE,
	mileage INTEGER NOT NULL,
	transmission TEXT NOT NULL,
	description TEXT NOT NULL,
	features TEXT NOT NULL DEFAULT '[]'
);
CREATE TABLE IF NOT EXISTS services (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	customer_name TEXT NOT NULL,
	contact TEXT NOT NULL,
	service_type TEXT NOT NULL,
	date TEXT NOT NULL,
	status TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS tyres (
	id SERIAL PRIMARY KEY,
	brand TEXT NOT NULL,
	model TEXT NOT NULL,
	size TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	offer_price DOUBLE PRECISION,
	quantity INTEGER NOT NULL,
	category TEXT NOT NULL,
	image TEXT NOT NULL,
	specs TEXT NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS brands (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS users (
	username TEXT PRIMARY KEY,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Init creates the tables if they do not exist.
func (r *PostgresRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// =============================================================================
// Cars
// =============================================================================

func (r *PostgresRepository) ListCars(ctx context.Context) ([]catalog.Car, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, model, year, engine, price, image, sold, mileage,
		       transmission, description, features
		FROM cars ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	defer rows.Close()

	cars := []catalog.Car{}
	for rows.Next() {
		var c catalog.Car
		var features string
		if err := rows.Scan(&c.ID, &c.Model, &c.Year, &c.Engine, &c.Price, &c.Image,
			&c.Sold, &c.Mileage, &c.Transmission, &c.Description, &features); err != nil {
			return nil, fmt.Errorf("failed to scan car: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &c.Features); err != nil {
			return nil, fmt.Errorf("failed to decode car features: %w", err)
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *PostgresRepository) CreateCar(ctx context.Context, car catalog.Car) (catalog.Car, error) {
	features, err := json.Marshal(car.Features)
	if err != nil {
		return catalog.Car{}, fmt.Errorf("failed to encode car features: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, `
		INSERT INTO cars (model, year, engine, price, image, sold, mileage, transmission, description, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		car.Model, car.Year, car.Engine, car.Price, car.Image, car.Sold,
		car.Mileage, car.Transmission, car.Description, string(features),
	).Scan(&car.ID)
	if err != nil {
		return catalog.Car{}, fmt.Errorf("failed to create car: %w", err)
	}
	return car, nil
}

func (r *PostgresRepository) UpdateCar(ctx context.Context, id int, car catalog.Car) (catalog.Car, error) {
	features, err := json.Marshal(car.Features)
	if err != nil {
		return catalog.Car{}, fmt.Errorf("failed to encode car features: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cars SET model=$1, year=$2, engine=$3, price=$4, image=$5, sold=$6,
		       mileage=$7, transmission=$8, description=$9, features=$10
		WHERE id=$11`,
		car.Model, car.Year, car.Engine, car.Price, car.Image, car.Sold,
		car.Mileage, car.Transmission, car.Description, string(features), id)
	if err != nil {
		return catalog.Car{}, fmt.Errorf("failed to update car: %w", err)
	}
	if err := requireRow(res); err != nil {
		return catalog.Car{}, err
	}
	car.ID = id
	return car, nil
}

func (r *PostgresRepository) DeleteCar(ctx context.Context, id int) error {
	return r.deleteByID(ctx, "cars", id)
}

// =============================================================================
// Services
// =============================================================================

func (r *PostgresRepository) ListServices(ctx context.Context) ([]catalog.ServiceItem, error) {
	services := []catalog.ServiceItem{}
	rows, err := r.db.QueryxContext(ctx, `SELECT id, name, description FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s catalog.ServiceItem
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *PostgresRepository) CreateService(ctx context.Context, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO services (name, description) VALUES ($1, $2) RETURNING id`,
		svc.Name, svc.Description,
	).Scan(&svc.ID)
	if err != nil {
		return catalog.ServiceItem{}, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (r *PostgresRepository) UpdateService(ctx context.Context, id int, svc catalog.ServiceItem) (catalog.ServiceItem, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE services SET name=$1, description=$2 WHERE id=$3`,
		svc.Name, svc.Description, id)
	if err != nil {
		return catalog.ServiceItem{}, fmt.Errorf("failed to update service: %w", err)
	}
	if err := requireRow(res); err != nil {
		return catalog.ServiceItem{}, err
	}
	svc.ID = id
	return svc, nil
}

func (r *PostgresRepository) DeleteService(ctx context.Context, id int) error {
	return r.deleteByID(ctx, "services", id)
}

// =============================================================================
// Tyres
// =============================================================================

func (r *PostgresRepository) ListTyres(ctx context.Context) ([]catalog.TyreProduct, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, brand, model, size, price, offer_price, quantity, category, image, specs
		FROM tyres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tyres: %w", err)
	}
	defer rows.Close()

	tyres := []catalog.TyreProduct{}
	for rows.Next() {
		var t catalog.TyreProduct
		var offer sql.NullFloat64
		var specs string
		if err := rows.Scan(&t.ID, &t.Brand, &t.Model, &t.Size, &t.Price, &offer,
			&t.Quantity, &t.Category, &t.Image, &specs); err != nil {
			return nil, fmt.Errorf("failed to scan tyre: %w", err)
		}
		if offer.Valid {
			v := offer.Float64
			t.OfferPrice = &v
		}
		if err := json.Unmarshal([]byte(specs), &t.Specs); err != nil {
			return nil, fmt.Errorf("failed to decode tyre specs: %w", err)
		}
		tyres = append(tyres, t)
	}
	return tyres, rows.Err()
}

func (r *PostgresRepository) CreateTyre(ctx context.Context, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	specs, err := json.Marshal(tyre.Specs)
	if err != nil {
		return catalog.TyreProduct{}, fmt.Errorf("failed to encode tyre specs: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, `
		INSERT INTO tyres (brand, model, size, price, offer_price, quantity, category, image, specs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		tyre.Brand, tyre.Model, tyre.Size, tyre.Price, tyre.OfferPrice,
		tyre.Quantity, tyre.Category, tyre.Image, string(specs),
	).Scan(&tyre.ID)
	if err != nil {
		return catalog.TyreProduct{}, fmt.Errorf("failed to create tyre: %w", err)
	}
	return tyre, nil
}

func (r *PostgresRepository) UpdateTyre(ctx context.Context, id int, tyre catalog.TyreProduct) (catalog.TyreProduct, error) {
	specs, err := json.Marshal(tyre.Specs)
	if err != nil {
		return catalog.TyreProduct{}, fmt.Errorf("failed to encode tyre specs: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE tyres SET brand=$1, model=$2, size=$3, price=$4, offer_price=$5,
		       quantity=$6, category=$7, image=$8, specs=$9
		WHERE id=$10`,
		tyre.Brand, tyre.Model, tyre.Size, tyre.Price, tyre.OfferPrice,
		tyre.Quantity, tyre.Category, tyre.Image, string(specs), id)
	if err != nil {
		return catalog.TyreProduct{}, fmt.Errorf("failed to update tyre: %w", err)
	}
	if err := requireRow(res); err != nil {
		return catalog.TyreProduct{}, err
	}
	tyre.ID = id
	return tyre, nil
}

func (r *PostgresRepository) DeleteTyre(ctx context.Context, id int) error {
	return r.deleteByID(ctx, "tyres", id)
}

// AdjustTyreStock applies a relative delta. Stock never goes below zero.
func (r *PostgresRepository) AdjustTyreStock(ctx context.Context, id, delta int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tyres SET quantity = GREATEST(0, quantity + $1) WHERE id=$2`, delta, id)
	if err != nil {
		return fmt.Errorf("failed to adjust tyre stock: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// Brands
// =============================================================================

func (r *PostgresRepository) ListBrands(ctx context.Context) ([]catalog.TyreBrand, error) {
	brands := []catalog.TyreBrand{}
	rows, err := r.db.QueryxContext(ctx, `SELECT name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b catalog.TyreBrand
		if err := rows.Scan(&b.Name); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *PostgresRepository) CreateBrand(ctx context.Context, name string) error {
	// Re-adding an existing brand is a no-op, not an error.
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO brands (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteBrand(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE name=$1`, name); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}

// =============================================================================
// Bookings
// =============================================================================

func (r *PostgresRepository) ListBookings(ctx context.Context) ([]catalog.Booking, error) {
	bookings := []catalog.Booking{}
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, customer_name, contact, service_type, date, status, notes
		FROM bookings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b catalog.Booking
		if err := rows.Scan(&b.ID, &b.CustomerName, &b.Contact, &b.ServiceType,
			&b.Date, &b.Status, &b.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PostgresRepository) CreateBooking(ctx context.Context, booking catalog.Booking) (catalog.Booking, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO bookings (customer_name, contact, service_type, date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		booking.CustomerName, booking.Contact, booking.ServiceType,
		booking.Date, booking.Status, booking.Notes,
	).Scan(&booking.ID)
	if err != nil {
		return catalog.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

func (r *PostgresRepository) UpdateBookingStatus(ctx context.Context, id int, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// Users
// =============================================================================

func (r *PostgresRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRowxContext(ctx,
		`SELECT password FROM users WHERE username=$1`, username).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	return hash, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, username, hash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2)`, username, hash)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, username, hash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password=$1 WHERE username=$2`, hash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireRow(res)
}

// =============================================================================
// Settings
// =============================================================================

func (r *PostgresRepository) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	var value string
	err := r.db.QueryRowxContext(ctx,
		`SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read setting %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

func (r *PostgresRepository) SaveSetting(ctx context.Context, key string, value json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("failed to save setting %q: %w", key, err)
	}
	return nil
}

func (r *PostgresRepository) deleteByID(ctx context.Context, table string, id int) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
