package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is one promotional event banner batch, backed by one row.
type Event struct {
	ID          uuid.UUID `json:"event_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Description string    `json:"description"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	GalleryKeys []string  `json:"-"`
	GalleryURLs []string  `json:"gallery_urls,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
