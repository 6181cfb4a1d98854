package room

import (
	"time"

	"github.com/google/uuid"
)

// Room is one bookable room listing. ImageKey backs the listing's primary
// photo; GalleryKeys hold the rest of the batch the room was created from.
type Room struct {
	ID          uuid.UUID `json:"room_id"`
	RoomNumber  string    `json:"room_number"`
	RoomType    string    `json:"room_type"`
	Price       string    `json:"price"`
	Occupancy   string    `json:"occupancy"`
	Description string    `json:"description"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	GalleryKeys []string  `json:"-"`
	GalleryURLs []string  `json:"gallery_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
