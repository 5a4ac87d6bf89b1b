package server

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestListCars_DecodesFeatures(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "model", "year", "engine", "price", "image", "sold",
		"mileage", "transmission", "description", "features",
	}).AddRow(1, "Audi RS6", 2024, "4.0L V8 Twin Turbo", 108000.0,
		"https://picsum.photos/seed/audi/800/600", false, 1500,
		"Automatic", "The ultimate estate car.", `["Ceramic Brakes","Pan Roof"]`)

	query := regexp.QuoteMeta(`
		SELECT id, model, year, engine, price, image, sold, mileage,
		       transmission, description, features
		FROM cars ORDER BY id`)
	mock.ExpectQuery(query).WillReturnRows(rows)

	cars, err := repo.ListCars(context.Background())
	if err != nil {
		t.Fatalf("ListCars returned error: %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("expected 1 car, got %d", len(cars))
	}
	if len(cars[0].Features) != 2 || cars[0].Features[0] != "Ceramic Brakes" {
		t.Errorf("unexpected features: %v", cars[0].Features)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}

func TestAdjustTyreStock_ClampsInSQL(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`UPDATE tyres SET quantity = GREATEST(0, quantity + $1) WHERE id=$2`)
	mock.ExpectExec(query).WithArgs(-50, 3).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.AdjustTyreStock(context.Background(), 3, -50); err != nil {
		t.Fatalf("AdjustTyreStock returned error: %v", err)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}

func TestAdjustTyreStock_MissingTyre(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`UPDATE tyres SET quantity = GREATEST(0, quantity + $1) WHERE id=$2`)
	mock.ExpectExec(query).WithArgs(5, 99).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AdjustTyreStock(context.Background(), 99, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}

func TestGetPasswordHash_MissingUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	query := regexp.QuoteMeta(`SELECT password FROM users WHERE username=$1`)
	mock.ExpectQuery(query).WithArgs("ghost").WillReturnRows(sqlmock.NewRows([]string{"password"}))

	_, err := repo.GetPasswordHash(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if mockErr := mock.ExpectationsWereMet(); mockErr != nil {
		t.Fatalf("unmet sqlmock expectations: %v", mockErr)
	}
}
