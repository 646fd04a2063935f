package usecase

import (
	"room-booking/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated account performing an operation. Handlers
// resolve it from the session and pass it explicitly; services never
// read identity from ambient state.
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

type Action string

const (
	ActionResetPassword       Action = "reset_password"
	ActionApproveVerification Action = "approve_verification"
	ActionManageRoom          Action = "manage_room"
	ActionConfirmBooking      Action = "confirm_booking"
	ActionCancelBooking       Action = "cancel_booking"
)

// CanAct is the single role-policy table. Deterministic, side-effect
// free, total: anything not explicitly allowed is denied.
//
//   - admin may do everything, except reset an admin's password
//     (including their own).
//   - staff may act only on plain users, and never manage rooms.
//   - user holds no administrative permissions.
func CanAct(actorRole, targetRole entity.UserRole, action Action) bool {
	switch actorRole {
	case entity.RoleAdmin:
		if action == ActionResetPassword && targetRole == entity.RoleAdmin {
			return false
		}
		return true

	case entity.RoleStaff:
		switch action {
		case ActionResetPassword, ActionApproveVerification, ActionConfirmBooking, ActionCancelBooking:
			return targetRole == entity.RoleUser
		}
		return false
	}

	return false
}
