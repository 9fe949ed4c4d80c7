package handler

import (
	"net/http"

	"github.com/amehta/tripmates/internal/domain"
	"github.com/amehta/tripmates/internal/middleware"
)

type reviewRequest struct {
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"reviewText" validate:"required"`
}

// CreateReview handles POST /places/{id}/reviews.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	placeID, err := pathUUID(r)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	req, err := decodeJSON[reviewRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	review, err := s.reviews.Create(r.Context(), domain.Review{
		UserID:     userID,
		PlaceID:    placeID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /places/{id}/reviews, newest first.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathUUID(r)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	reviews, err := s.reviews.ListByPlace(r.Context(), placeID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}
