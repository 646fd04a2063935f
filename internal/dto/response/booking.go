package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"user_id"`
	RoomID      string               `json:"room_id"`
	RoomName    string               `json:"room_name,omitempty"`
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	Attendees   int                  `json:"attendees"`
	Status      entity.BookingStatus `json:"status"`
	ConfirmedBy *string              `json:"confirmed_by,omitempty"`
	CancelledBy *string              `json:"cancelled_by,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Helper converter
func BookingToResponse(booking *entity.Booking, roomName string) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID.String(),
		UserID:    booking.UserID.String(),
		RoomID:    booking.RoomID.String(),
		RoomName:  roomName,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Attendees: booking.Attendees,
		Status:    booking.Status,
		Notes:     booking.Notes,
		CreatedAt: booking.CreatedAt,
	}

	if booking.ConfirmedBy != nil {
		confirmedBy := booking.ConfirmedBy.String()
		resp.ConfirmedBy = &confirmedBy
	}
	if booking.CancelledBy != nil {
		cancelledBy := booking.CancelledBy.String()
		resp.CancelledBy = &cancelledBy
	}

	return resp
}
