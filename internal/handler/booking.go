package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/middleware"
	"github.com/amehta/tripmates/internal/service"
)

// Success messages for POST /bookings. The client matches on these
// strings verbatim, so they are part of the wire contract.
const (
	msgBookingCreated = "New booking created successfully!"
	msgBookingJoined  = "You have been added to an existing booking."
)

type bookingRequest struct {
	TripID        string `json:"tripId" validate:"required"`
	CheckInDate   string `json:"checkInDate" validate:"required"`
	SelectedPrice int64  `json:"selectedPrice" validate:"required,gt=0"`
}

type bookingResponse struct {
	Message string    `json:"message"`
	GroupID uuid.UUID `json:"groupId"`
}

// CreateBooking handles POST /bookings — the group-matching entry point.
// The requester joins the first existing group for the slot (place,
// check-in day, price tier) that has a free seat and fewer than two
// members of their personality category, or starts a new group.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	req, err := decodeJSON[bookingRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	placeID, err := uuid.Parse(req.TripID)
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: tripId is not a valid id", domain.ErrValidation))
		return
	}

	checkIn, err := parseCheckIn(req.CheckInDate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	result, err := s.bookings.RequestBooking(r.Context(), userID, service.BookingRequest{
		PlaceID: placeID,
		CheckIn: checkIn,
		Price:   req.SelectedPrice,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	msg := msgBookingCreated
	if result.Outcome == domain.OutcomeJoinedExisting {
		msg = msgBookingJoined
	}
	writeJSON(w, http.StatusOK, bookingResponse{Message: msg, GroupID: result.GroupID})
}

// ListMyBookings handles GET /bookings. It returns every group the
// authenticated user holds a seat in, place populated.
func (s *Server) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	bookings, err := s.bookings.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /bookings/{id}, returning the group with its
// members and place. The client uses it for the group detail page.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "booking not found")
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// parseCheckIn accepts both a full timestamp and a bare calendar date.
// The matcher normalizes to midnight UTC either way.
func parseCheckIn(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: checkInDate must be a date or RFC 3339 timestamp", domain.ErrValidation)
}
