package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a traveler's rating of a place. Rating is constrained to
// [1,5] by the service layer.
type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	PlaceID    uuid.UUID `json:"placeId"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`

	// ReviewerName is populated on read paths that join against users.
	ReviewerName string `json:"reviewerName,omitempty"`
}
