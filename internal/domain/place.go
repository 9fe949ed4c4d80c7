package domain

import (
	"time"

	"github.com/google/uuid"
)

// TierPrices holds the three price tiers a place can be booked at.
// Prices are whole currency units; tier equality during matching is exact
// integer comparison.
type TierPrices struct {
	Economy int64 `json:"economy"`
	Medium  int64 `json:"medium"`
	Luxury  int64 `json:"luxury"`
}

// ItineraryDay is a single day's planned activity within a tier itinerary.
type ItineraryDay struct {
	Day      int    `json:"day"`
	Activity string `json:"activity"`
}

// Itinerary holds the per-tier day plans. Higher tiers carry longer plans.
// Stored as a single JSONB column.
type Itinerary struct {
	Economy []ItineraryDay `json:"economy"`
	Medium  []ItineraryDay `json:"medium"`
	Luxury  []ItineraryDay `json:"luxury"`
}

// Place is a bookable trip destination. BasePrice always equals
// Prices.Economy; the service layer derives it on create and update.
// For the booking matcher a place is immutable — only place-management
// endpoints mutate it.
type Place struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	LocationsToVisit string     `json:"locationsToVisit,omitempty"`
	Photos           []string   `json:"photos,omitempty"`
	Description      string     `json:"description,omitempty"`
	Perks            []string   `json:"perks,omitempty"`
	ExtraInfo        string     `json:"extraInfo,omitempty"`
	Prices           TierPrices `json:"priceToOutput"`
	BasePrice        int64      `json:"basePrice"`
	Itinerary        Itinerary  `json:"itinerary"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
