package request

type CreateFeedbackRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=500"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,max=500"`
}
