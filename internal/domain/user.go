// Package domain contains the core data types for the TripMates API.
// This package has zero external dependencies beyond uuid and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered traveler. PersonalityCategory and PersonalityScores
// are nil until the user completes the personality test; an admin reset
// nulls them again. A user without a category cannot book.
type User struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // never serialized
	Phone         string    `json:"phone,omitempty"`
	AddressLine1  string    `json:"addressLine1,omitempty"`
	AddressLine2  string    `json:"addressLine2,omitempty"`
	AddressLine3  string    `json:"addressLine3,omitempty"`
	Profession    string    `json:"profession,omitempty"`
	Age           int       `json:"age,omitempty"`
	SocialMediaID string    `json:"socialMediaID,omitempty"`

	PersonalityCategory *PersonalityCategory `json:"personalityCategory,omitempty"`
	PersonalityScores   *TraitScores         `json:"personalityScores,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPersonality reports whether the user has completed the personality
// test. Booking requires this.
func (u User) HasPersonality() bool {
	return u.PersonalityCategory != nil
}
