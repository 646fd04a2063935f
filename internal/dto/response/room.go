package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		Name:      room.Name,
		Location:  room.Location,
		Capacity:  room.Capacity,
		IsActive:  room.IsActive,
		CreatedAt: room.CreatedAt,
	}
}
