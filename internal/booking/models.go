package booking

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the property's reservation tables.
type Kind string

const (
	KindHotel     Kind = "hotel"
	KindFoodCourt Kind = "food-court"
	KindEvent     Kind = "event"
)

// Valid reports whether the kind names a known reservation table.
func (k Kind) Valid() bool {
	switch k {
	case KindHotel, KindFoodCourt, KindEvent:
		return true
	}
	return false
}

func (k Kind) table() string {
	switch k {
	case KindHotel:
		return "hotel_bookings"
	case KindFoodCourt:
		return "food_court_bookings"
	default:
		return "event_bookings"
	}
}

// Scope identifies the selection/deletion scope for one reservation table.
func (k Kind) Scope() string {
	return "bookings:" + string(k)
}

// Booking is one guest reservation. All three tables share this shape.
type Booking struct {
	ID        uuid.UUID `json:"id"`
	GuestName string    `json:"guest_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
