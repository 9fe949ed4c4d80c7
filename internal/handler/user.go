package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amehta/tripmates/internal/middleware"
)

type personalityTestRequest struct {
	Responses []int `json:"responses" validate:"required,len=25,dive,min=1,max=5"`
}

// SubmitPersonalityTest handles POST /personality-test.
// It scores the 25 questionnaire answers, stores the result on the
// authenticated user, and returns the assigned category.
func (s *Server) SubmitPersonalityTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	req, err := decodeJSON[personalityTestRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	category, err := s.users.SubmitPersonalityTest(r.Context(), userID, req.Responses)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":             "Personality test submitted successfully!",
		"personalityCategory": string(category),
	})
}

// GetUserByEmail handles GET /users/{email}. It serves the public profile
// the client shows on group member cards. The password hash never
// serializes.
func (s *Server) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := s.users.GetByEmail(r.Context(), email)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
