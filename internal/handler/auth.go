package handler

import (
	"net/http"
	"time"

	"github.com/amehta/tripmates/internal/middleware"
	"github.com/amehta/tripmates/internal/service"
)

// sessionTTL is how long the session cookie stays valid. It matches the
// token TTL so the cookie and the claims expire together.
const sessionTTL = 24 * time.Hour

type registerRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	AddressLine3  string `json:"addressLine3"`
	Profession    string `json:"profession"`
	Age           int    `json:"age"`
	SocialMediaID string `json:"socialMediaID"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /register.
// It creates the account and returns the new user with HTTP 201.
// Duplicate emails surface as HTTP 409.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[registerRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := s.auth.Register(r.Context(), service.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		AddressLine3:  req.AddressLine3,
		Profession:    req.Profession,
		Age:           req.Age,
		SocialMediaID: req.SocialMediaID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /login.
// On success it sets the session cookie and returns the user.
// Unknown emails are 404 and wrong passwords 401, matching what the
// client displays for each.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[loginRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /logout. It clears the session cookie; the token
// itself simply expires, there is no server-side revocation.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// GetProfile handles GET /profile. It returns the authenticated user's
// full record, personality fields included.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// IsAdmin handles GET /is-admin. The client uses it to decide whether to
// render the admin navigation; the admin routes enforce the real gate.
func (s *Server) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.UserEmail(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": s.isAdmin(email)})
}
