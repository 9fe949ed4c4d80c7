package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group-matching limits. A booking group never holds more than
// MaxGroupSize members, and never more than MaxPerCategory members
// sharing one personality category.
const (
	MaxGroupSize   = 10
	MaxPerCategory = 2
)

// BookingOutcome reports how a booking request was resolved.
type BookingOutcome string

const (
	// OutcomeCreatedNew means no eligible group existed for the slot and
	// a new group was started with the requester as sole member.
	OutcomeCreatedNew BookingOutcome = "created-new"
	// OutcomeJoinedExisting means the requester was appended to the first
	// eligible existing group.
	OutcomeJoinedExisting BookingOutcome = "joined-existing"
)

// BookingMember is one traveler's seat in a booking group. Name and Email
// are populated only on read paths that join against users; the matcher
// needs just UserID and PersonalityCategory.
//
// The same user may hold more than one seat in a slot (booking twice is
// not prevented), so members are identified by seat, not by user.
type BookingMember struct {
	UserID              uuid.UUID            `json:"userId"`
	Name                string               `json:"name,omitempty"`
	Email               string               `json:"email,omitempty"`
	PersonalityCategory *PersonalityCategory `json:"personalityCategory,omitempty"`
	JoinedAt            time.Time            `json:"joinedAt"`
}

// Booking is a group of travelers sharing one trip slot. All members share
// the (place, check-in day, price) triple; CheckIn is always normalized to
// midnight UTC. Member order is insertion order — preserved for display,
// meaningless to matching.
type Booking struct {
	ID        uuid.UUID       `json:"id"`
	PlaceID   uuid.UUID       `json:"placeId"`
	CheckIn   time.Time       `json:"checkIn"`
	Price     int64           `json:"priceSelected"`
	Members   []BookingMember `json:"users"`
	CreatedAt time.Time       `json:"created_at"`

	// Place is populated on read paths that join against places.
	Place *Place `json:"place,omitempty"`
}

// CategoryCount returns how many members hold the given personality
// category. Members with no category never count.
func (b Booking) CategoryCount(cat PersonalityCategory) int {
	n := 0
	for _, m := range b.Members {
		if m.PersonalityCategory != nil && *m.PersonalityCategory == cat {
			n++
		}
	}
	return n
}

// CanAccept reports whether a traveler with the given category fits this
// group: member count below MaxGroupSize and fewer than MaxPerCategory
// members already holding the same category.
func (b Booking) CanAccept(cat PersonalityCategory) bool {
	return len(b.Members) < MaxGroupSize && b.CategoryCount(cat) < MaxPerCategory
}

// NormalizeCheckIn strips the time-of-day component, fixing the check-in
// to midnight UTC of its calendar day. Two timestamps on the same UTC day
// always normalize to the same slot.
func NormalizeCheckIn(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
