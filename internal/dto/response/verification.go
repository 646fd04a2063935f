package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type VerificationResponse struct {
	UserID       string                    `json:"user_id"`
	Username     string                    `json:"username"`
	Status       entity.VerificationStatus `json:"status"`
	IdentityCard *string                   `json:"identity_card,omitempty"`
	Address      *string                   `json:"address,omitempty"`
	Organization *string                   `json:"organization,omitempty"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// Helper converter
func VerificationToResponse(user *entity.User) VerificationResponse {
	return VerificationResponse{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Status:       user.VerificationStatus,
		IdentityCard: user.IdentityCard,
		Address:      user.Address,
		Organization: user.Organization,
		UpdatedAt:    user.UpdatedAt,
	}
}
