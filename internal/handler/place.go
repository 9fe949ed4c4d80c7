package handler

import (
	"net/http"

	"github.com/amehta/tripmates/internal/domain"
)

type placeRequest struct {
	Title            string            `json:"title" validate:"required"`
	LocationsToVisit string            `json:"locationsToVisit"`
	Photos           []string          `json:"photos"`
	Description      string            `json:"description"`
	Perks            []string          `json:"perks"`
	ExtraInfo        string            `json:"extraInfo"`
	Prices           domain.TierPrices `json:"priceToOutput"`
	Itinerary        domain.Itinerary  `json:"itinerary"`
}

func (p placeRequest) toDomain() domain.Place {
	return domain.Place{
		Title:            p.Title,
		LocationsToVisit: p.LocationsToVisit,
		Photos:           p.Photos,
		Description:      p.Description,
		Perks:            p.Perks,
		ExtraInfo:        p.ExtraInfo,
		Prices:           p.Prices,
		Itinerary:        p.Itinerary,
	}
}

// ListPlaces handles GET /places. The listing is unauthenticated; it
// backs the browse page.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := s.places.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// GetPlace handles GET /places/{id}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	place, err := s.places.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// CreatePlace handles POST /places.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[placeRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	place, err := s.places.Create(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, place)
}

// UpdatePlace handles PUT /places/{id}. The body carries the full place;
// the ID comes from the path.
func (s *Server) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r)
	if err != nil {
		notFound(w, "place not found")
		return
	}

	req, err := decodeJSON[placeRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	place := req.toDomain()
	place.ID = id

	updated, err := s.places.Update(r.Context(), place)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
