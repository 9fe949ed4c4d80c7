package handler

import (
	"net/http"
	"strconv"

	"github.com/amehta/tripmates/internal/domain"
)

// pagedResponse is the envelope for admin listing endpoints.
type pagedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// paginationFromQuery reads ?page= and ?limit=, falling back to defaults
// for absent or malformed values.
func paginationFromQuery(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// AdminListUsers handles GET /admin/users.
func (s *Server) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	p := paginationFromQuery(r)
	users, total, err := s.users.ListPaged(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse[domain.User]{Items: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// AdminDeleteUser handles DELETE /admin/users/{id}. Group seats held by
// the user are removed with them.
func (s *Server) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "user not found")
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminResetPersonality handles PUT /admin/users/{id}/reset-personality.
// The user must retake the test before booking again.
func (s *Server) AdminResetPersonality(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "user not found")
		return
	}
	if err := s.users.ResetPersonality(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "personality reset"})
}

// AdminListBookings handles GET /admin/bookings.
func (s *Server) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	p := paginationFromQuery(r)
	bookings, total, err := s.bookings.ListPaged(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse[domain.Booking]{Items: bookings, Total: total, Page: p.Page, Limit: p.Limit})
}

// AdminDeleteBooking handles DELETE /admin/bookings/{id}. The whole group
// is removed, seats included.
func (s *Server) AdminDeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "booking not found")
		return
	}
	if err := s.bookings.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminListPlaces handles GET /admin/places. Unlike the public listing it
// is paginated, so the admin table stays responsive with a large catalog.
func (s *Server) AdminListPlaces(w http.ResponseWriter, r *http.Request) {
	p := paginationFromQuery(r)
	places, total, err := s.places.ListPaged(r.Context(), p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse[domain.Place]{Items: places, Total: total, Page: p.Page, Limit: p.Limit})
}

// AdminCreatePlace handles POST /admin/places.
func (s *Server) AdminCreatePlace(w http.ResponseWriter, r *http.Request) {
	s.CreatePlace(w, r)
}

// AdminUpdatePlace handles PUT /admin/places/{id}.
func (s *Server) AdminUpdatePlace(w http.ResponseWriter, r *http.Request) {
	s.UpdatePlace(w, r)
}

// AdminDeletePlace handles DELETE /admin/places/{id}. Groups booked for
// the place are removed with it.
func (s *Server) AdminDeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "place not found")
		return
	}
	if err := s.places.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
