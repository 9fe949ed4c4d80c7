// Package handler implements the HTTP handlers for the TripMates API.
// All handlers are methods on Server. Methods are split into
// domain-specific files (booking.go, place.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/middleware"
	"github.com/amehta/tripmates/internal/service"
)

// AuthServicer defines the auth operations the handlers depend on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
}

// UserServicer defines the profile and personality operations the
// handlers depend on.
type UserServicer interface {
	SubmitPersonalityTest(ctx context.Context, userID uuid.UUID, responses []int) (domain.PersonalityCategory, error)
	ResetPersonality(ctx context.Context, userID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlaceServicer defines the place operations the handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Place, int64, error)
	Update(ctx context.Context, place domain.Place) (domain.Place, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingServicer defines the booking operations the handlers depend on.
type BookingServicer interface {
	RequestBooking(ctx context.Context, userID uuid.UUID, req service.BookingRequest) (service.BookingResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Booking, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Booking, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReviewServicer defines the review operations the handlers depend on.
type ReviewServicer interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Review, error)
}

// Server implements all API endpoints. Wire it in main.go via Routes.
type Server struct {
	auth     AuthServicer
	users    UserServicer
	places   PlaceServicer
	bookings BookingServicer
	reviews  ReviewServicer

	adminEmails map[string]struct{}
}

// NewServer constructs the Server with all its dependencies. adminEmails
// is the configured allow-list backing GET /is-admin and the admin gate.
func NewServer(auth AuthServicer, users UserServicer, places PlaceServicer, bookings BookingServicer, reviews ReviewServicer, adminEmails []string) *Server {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		allowed[e] = struct{}{}
	}
	return &Server{
		auth:        auth,
		users:       users,
		places:      places,
		bookings:    bookings,
		reviews:     reviews,
		adminEmails: allowed,
	}
}

// Routes returns the chi router for all endpoints. The caller applies the
// authenticator middleware (and logging, CORS, etc.) around the returned
// handler; routes that need a session wire RequireAuth themselves.
func (s *Server) Routes() http.Handler {
	adminGate := middleware.NewAdminGate(s.adminList())

	r := chi.NewRouter()

	// Public.
	r.Get("/healthz", s.GetHealth)
	r.Post("/register", s.Register)
	r.Post("/login", s.Login)
	r.Post("/logout", s.Logout)
	r.Get("/places", s.ListPlaces)
	r.Get("/places/{id}", s.GetPlace)
	r.Get("/places/{id}/reviews", s.ListReviews)
	r.Get("/users/{email}", s.GetUserByEmail)

	// Session required.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", s.GetProfile)
		r.Get("/is-admin", s.IsAdmin)
		r.Post("/personality-test", s.SubmitPersonalityTest)
		r.Post("/places", s.CreatePlace)
		r.Put("/places/{id}", s.UpdatePlace)
		r.Post("/places/{id}/reviews", s.CreateReview)
		r.Post("/bookings", s.CreateBooking)
		r.Get("/bookings", s.ListMyBookings)
		r.Get("/bookings/{id}", s.GetBooking)
	})

	// Admin only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth, adminGate)
		r.Get("/admin/users", s.AdminListUsers)
		r.Delete("/admin/users/{id}", s.AdminDeleteUser)
		r.Put("/admin/users/{id}/reset-personality", s.AdminResetPersonality)
		r.Get("/admin/bookings", s.AdminListBookings)
		r.Delete("/admin/bookings/{id}", s.AdminDeleteBooking)
		r.Get("/admin/places", s.AdminListPlaces)
		r.Post("/admin/places", s.AdminCreatePlace)
		r.Put("/admin/places/{id}", s.AdminUpdatePlace)
		r.Delete("/admin/places/{id}", s.AdminDeletePlace)
	})

	return r
}

func (s *Server) isAdmin(email string) bool {
	_, ok := s.adminEmails[email]
	return ok
}

func (s *Server) adminList() []string {
	out := make([]string, 0, len(s.adminEmails))
	for e := range s.adminEmails {
		out = append(out, e)
	}
	return out
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathUUID parses the {id} URL parameter. A malformed value maps to 404
// rather than 400: an unparseable ID can never name an existing resource.
func pathUUID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}
