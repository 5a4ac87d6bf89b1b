package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"alexis-backoffice/internal/catalog"
)

// Login verifies credentials and issues a bearer token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var creds catalog.User
	if !s.readJSON(w, r, &creds) {
		return
	}

	hash, err := s.repo.GetPasswordHash(r.Context(), creds.Username)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.repoError(w, err)
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)) != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.errorJSON(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	s.writeJSON(w, http.StatusOK, catalog.Token{
		AccessToken: s.issueToken(creds.Username),
		TokenType:   "bearer",
		Username:    creds.Username,
	})
}

func (s *Server) GetCars(w http.ResponseWriter, r *http.Request) {
	cars, err := s.repo.ListCars(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cars)
}

func (s *Server) AddCar(w http.ResponseWriter, r *http.Request) {
	var car catalog.Car
	if !s.readJSON(w, r, &car) {
		return
	}
	created, err := s.repo.CreateCar(r.Context(), car)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, created)
}

func (s *Server) UpdateCar(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var car catalog.Car
	if !s.readJSON(w, r, &car) {
		return
	}
	updated, err := s.repo.UpdateCar(r.Context(), id, car)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteCar(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteCar(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.repo.ListServices(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, services)
}

func (s *Server) AddService(w http.ResponseWriter, r *http.Request) {
	var svc catalog.ServiceItem
	if !s.readJSON(w, r, &svc) {
		return
	}
	created, err := s.repo.CreateService(r.Context(), svc)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, created)
}

func (s *Server) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var svc catalog.ServiceItem
	if !s.readJSON(w, r, &svc) {
		return
	}
	updated, err := s.repo.UpdateService(r.Context(), id, svc)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteService(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) GetTyres(w http.ResponseWriter, r *http.Request) {
	tyres, err := s.repo.ListTyres(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tyres)
}

func (s *Server) AddTyre(w http.ResponseWriter, r *http.Request) {
	var tyre catalog.TyreProduct
	if !s.readJSON(w, r, &tyre) {
		return
	}
	created, err := s.repo.CreateTyre(r.Context(), tyre)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, created)
}

func (s *Server) UpdateTyre(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var tyre catalog.TyreProduct
	if !s.readJSON(w, r, &tyre) {
		return
	}
	updated, err := s.repo.UpdateTyre(r.Context(), id, tyre)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) DeleteTyre(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.repo.DeleteTyre(r.Context(), id); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// UpdateTyreStock applies a relative quantity delta, clamped at zero.
func (s *Server) UpdateTyreStock(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var update catalog.StockUpdate
	if !s.readJSON(w, r, &update) {
		return
	}
	if err := s.repo.AdjustTyreStock(r.Context(), id, update.Delta); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) GetBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.repo.ListBrands(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, brands)
}

func (s *Server) AddBrand(w http.ResponseWriter, r *http.Request) {
	var brand catalog.TyreBrand
	if !s.readJSON(w, r, &brand) {
		return
	}
	if err := s.repo.CreateBrand(r.Context(), brand.Name); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, brand)
}

func (s *Server) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if err := s.repo.DeleteBrand(r.Context(), name); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.repo.ListBookings(r.Context())
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bookings)
}

// CreateBooking is public. New bookings always start Pending regardless of
// the submitted status.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking catalog.Booking
	if !s.readJSON(w, r, &booking) {
		return
	}
	booking.Status = catalog.BookingPending

	created, err := s.repo.CreateBooking(r.Context(), booking)
	if err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, created)
}

func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var update catalog.StatusUpdate
	if !s.readJSON(w, r, &update) {
		return
	}
	if err := s.repo.UpdateBookingStatus(r.Context(), id, update.Status); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) AddUser(w http.ResponseWriter, r *http.Request) {
	var user catalog.User
	if !s.readJSON(w, r, &user) {
		return
	}
	if user.Username == "" || user.Password == "" {
		s.errorJSON(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		s.errorJSON(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := s.repo.CreateUser(r.Context(), user.Username, string(hash)); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.errorJSON(w, http.StatusBadRequest, "Username exists")
			return
		}
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var update catalog.PasswordUpdate
	if !s.readJSON(w, r, &update) {
		return
	}
	if update.Password == "" {
		s.errorJSON(w, http.StatusBadRequest, "Password is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
	if err != nil {
		s.errorJSON(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := s.repo.UpdatePassword(r.Context(), username, string(hash)); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// GetSetting returns the stored aggregate, or an empty object for a key that
// was never written.
func (s *Server) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := s.repo.GetSetting(r.Context(), key)
	if errors.Is(err, ErrNotFound) {
		s.writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		s.repoError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

func (s *Server) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var update struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if !s.readJSON(w, r, &update) {
		return
	}
	if update.Key == "" {
		s.errorJSON(w, http.StatusBadRequest, "Setting key is required")
		return
	}
	if err := s.repo.SaveSetting(r.Context(), update.Key, update.Value); err != nil {
		s.repoError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
