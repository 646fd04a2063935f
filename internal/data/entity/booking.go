package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking rows are never deleted; ConfirmedBy/CancelledBy keep the audit
// trail of who drove the terminal transition.
type Booking struct {
	Base
	UserID      uuid.UUID     `db:"user_id"`
	RoomID      uuid.UUID     `db:"room_id"`
	StartTime   time.Time     `db:"start_time"`
	EndTime     time.Time     `db:"end_time"`
	Attendees   int           `db:"attendees"`
	Status      BookingStatus `db:"status"`
	ConfirmedBy *uuid.UUID    `db:"confirmed_by"`
	CancelledBy *uuid.UUID    `db:"cancelled_by"`
	Notes       *string       `db:"notes"`
}

// Overlaps reports whether the booking window intersects [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
