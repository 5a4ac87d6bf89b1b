package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

const tokenTTL = 30 * time.Minute

type session struct {
	username  string
	expiresAt time.Time
}

// Server wires the HTTP contract to a Repository. Issued tokens live in
// process memory; a restart signs everyone out.
type Server struct {
	repo Repository

	mu     sync.Mutex
	tokens map[string]session
	now    func() time.Time
}

// New builds a Server over the given repository.
func New(repo Repository) *Server {
	return &Server{
		repo:   repo,
		tokens: map[string]session{},
		now:    time.Now,
	}
}

// Routes returns the full router. All application routes live under /api;
// CORS is wide open so tunnelled and cloud-IDE frontends can connect.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"ngrok-skip-browser-warning", "Bypass-Tunnel-Reminder",
		},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/", s.Root)

	mux.Route("/api", func(r chi.Router) {
		// Public
		r.Get("/cars", s.GetCars)
		r.Get("/services", s.GetServices)
		r.Get("/tyres", s.GetTyres)
		r.Get("/brands", s.GetBrands)
		r.Get("/settings/{key}", s.GetSetting)
		r.Post("/bookings", s.CreateBooking)
		r.Post("/login", s.Login)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/bookings", s.GetBookings)
			r.Put("/bookings/{id}/status", s.UpdateBookingStatus)

			r.Post("/cars", s.AddCar)
			r.Put("/cars/{id}", s.UpdateCar)
			r.Delete("/cars/{id}", s.DeleteCar)

			r.Post("/services", s.AddService)
			r.Put("/services/{id}", s.UpdateService)
			r.Delete("/services/{id}", s.DeleteService)

			r.Post("/tyres", s.AddTyre)
			r.Put("/tyres/{id}", s.UpdateTyre)
			r.Delete("/tyres/{id}", s.DeleteTyre)
			r.Put("/tyres/{id}/stock", s.UpdateTyreStock)

			r.Post("/brands", s.AddBrand)
			r.Delete("/brands/{name}", s.DeleteBrand)

			r.Post("/users", s.AddUser)
			r.Put("/users/{username}/password", s.ChangePassword)

			r.Post("/settings", s.UpdateSetting)
		})
	})

	return mux
}

// Root is the liveness check.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Alexis Autos API Secure"})
}

func (s *Server) issueToken(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = session{username: username, expiresAt: s.now().Add(tokenTTL)}
	return token
}

func (s *Server) lookupToken(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return "", false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.tokens, token)
		return "", false
	}
	return sess.username, true
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.errorJSON(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if _, ok := s.lookupToken(token); !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.errorJSON(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorJSON matches the error envelope the client expects: a single detail
// string.
func (s *Server) errorJSON(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.errorJSON(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// repoError maps repository failures onto HTTP statuses.
func (s *Server) repoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		s.errorJSON(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, ErrDuplicate):
		s.errorJSON(w, http.StatusBadRequest, "Record already exists")
	default:
		s.errorJSON(w, http.StatusInternalServerError, "Database error")
	}
}
