package entity

import (
	"github.com/google/uuid"
)

// Feedback is keyed uniquely by booking: at most one row per booking id.
type Feedback struct {
	BaseSimple
	BookingID uuid.UUID `db:"booking_id"`
	Rating    int       `db:"rating"` // 1-5
	Comment   *string   `db:"comment"`
	ImageURL  *string   `db:"image_url"`
}
