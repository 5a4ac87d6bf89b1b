package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"alexis-backoffice/internal/catalog"
)

// Seed populates an empty database with the starter dataset and the default
// admin account. Each section seeds independently and only on first run.
func Seed(ctx context.Context, repo Repository) error {
	if _, err := repo.GetPasswordHash(ctx, "admin"); errors.Is(err, ErrNotFound) {
		log.Println("Seeding admin user...")
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		if err := repo.CreateUser(ctx, "admin", string(hash)); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	snap := catalog.DemoSnapshot()

	if _, err := repo.GetSetting(ctx, catalog.SettingCompanyInfo); errors.Is(err, ErrNotFound) {
		log.Println("Seeding settings...")
		info, err := json.Marshal(snap.CompanyInfo)
		if err != nil {
			return fmt.Errorf("failed to encode company info seed: %w", err)
		}
		if err := repo.SaveSetting(ctx, catalog.SettingCompanyInfo, info); err != nil {
			return fmt.Errorf("failed to seed company info: %w", err)
		}
		banner, err := json.Marshal(snap.Banner)
		if err != nil {
			return fmt.Errorf("failed to encode banner seed: %w", err)
		}
		if err := repo.SaveSetting(ctx, catalog.SettingBanner, banner); err != nil {
			return fmt.Errorf("failed to seed banner: %w", err)
		}
	}

	cars, err := repo.ListCars(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing stock: %w", err)
	}
	if len(cars) > 0 {
		return nil
	}

	log.Println("Seeding catalog...")
	for _, car := range snap.Cars {
		if _, err := repo.CreateCar(ctx, car); err != nil {
			return fmt.Errorf("failed to seed car %q: %w", car.Model, err)
		}
	}
	for _, svc := range snap.Services {
		if _, err := repo.CreateService(ctx, svc); err != nil {
			return fmt.Errorf("failed to seed service %q: %w", svc.Name, err)
		}
	}
	for _, brand := range snap.Brands {
		if err := repo.CreateBrand(ctx, brand.Name); err != nil {
			return fmt.Errorf("failed to seed brand %q: %w", brand.Name, err)
		}
	}
	for _, tyre := range snap.Tyres {
		if _, err := repo.CreateTyre(ctx, tyre); err != nil {
			return fmt.Errorf("failed to seed tyre %q: %w", tyre.Model, err)
		}
	}
	return nil
}
