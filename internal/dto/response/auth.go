package response

import (
	"time"

	"room-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID             string                    `json:"user_id"`
	Token              string                    `json:"token"`
	ExpiresAt          time.Time                 `json:"expires_at"`
	Email              string                    `json:"email"`
	Username           string                    `json:"username"`
	Role               entity.UserRole           `json:"role"`
	VerificationStatus entity.VerificationStatus `json:"verification_status"`
}

type UserResponse struct {
	ID                 string                    `json:"id"`
	Username           string                    `json:"username"`
	Email              string                    `json:"email"`
	Phone              *string                   `json:"phone,omitempty"`
	Role               entity.UserRole           `json:"role"`
	VerificationStatus entity.VerificationStatus `json:"verification_status"`
	LineUserID         *string                   `json:"line_user_id,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Email:              user.Email,
		Phone:              user.Phone,
		Role:               user.Role,
		VerificationStatus: user.VerificationStatus,
		LineUserID:         user.LineUserID,
		CreatedAt:          user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:             user.ID.String(),
		Email:              user.Email,
		Username:           user.Username,
		Role:               user.Role,
		VerificationStatus: user.VerificationStatus,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
