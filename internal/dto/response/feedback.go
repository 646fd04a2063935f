package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type FeedbackResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Helper converter
func FeedbackToResponse(feedback *entity.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID.String(),
		BookingID: feedback.BookingID.String(),
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		ImageURL:  feedback.ImageURL,
		CreatedAt: feedback.CreatedAt,
	}
}
