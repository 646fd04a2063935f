package request

import (
	"time"
)

type CreateBookingRequest struct {
	RoomID    string    `json:"room_id" validate:"required,uuid4"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Attendees int       `json:"attendees" validate:"required,min=1"`
	Notes     *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}
