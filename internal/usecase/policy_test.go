package usecase

import (
	"testing"

	"room-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanAct(t *testing.T) {
	tests := []struct {
		name   string
		actor  entity.UserRole
		target entity.UserRole
		action Action
		want   bool
	}{
		// Admin
		{"admin resets user password", entity.RoleAdmin, entity.RoleUser, ActionResetPassword, true},
		{"admin resets staff password", entity.RoleAdmin, entity.RoleStaff, ActionResetPassword, true},
		{"admin cannot reset admin password", entity.RoleAdmin, entity.RoleAdmin, ActionResetPassword, false},
		{"admin approves verification", entity.RoleAdmin, entity.RoleUser, ActionApproveVerification, true},
		{"admin manages rooms", entity.RoleAdmin, entity.RoleUser, ActionManageRoom, true},
		{"admin confirms booking", entity.RoleAdmin, entity.RoleUser, ActionConfirmBooking, true},
		{"admin cancels staff booking", entity.RoleAdmin, entity.RoleStaff, ActionCancelBooking, true},

		// Staff
		{"staff resets user password", entity.RoleStaff, entity.RoleUser, ActionResetPassword, true},
		{"staff cannot reset staff password", entity.RoleStaff, entity.RoleStaff, ActionResetPassword, false},
		{"staff cannot reset admin password", entity.RoleStaff, entity.RoleAdmin, ActionResetPassword, false},
		{"staff approves user verification", entity.RoleStaff, entity.RoleUser, ActionApproveVerification, true},
		{"staff cannot approve staff verification", entity.RoleStaff, entity.RoleStaff, ActionApproveVerification, false},
		{"staff cannot manage rooms", entity.RoleStaff, entity.RoleUser, ActionManageRoom, false},
		{"staff confirms user booking", entity.RoleStaff, entity.RoleUser, ActionConfirmBooking, true},
		{"staff cannot confirm admin booking", entity.RoleStaff, entity.RoleAdmin, ActionConfirmBooking, false},
		{"staff cancels user booking", entity.RoleStaff, entity.RoleUser, ActionCancelBooking, true},

		// Plain user
		{"user cannot reset passwords", entity.RoleUser, entity.RoleUser, ActionResetPassword, false},
		{"user cannot approve verification", entity.RoleUser, entity.RoleUser, ActionApproveVerification, false},
		{"user cannot manage rooms", entity.RoleUser, entity.RoleUser, ActionManageRoom, false},
		{"user cannot confirm bookings", entity.RoleUser, entity.RoleUser, ActionConfirmBooking, false},

		// Unknown role
		{"unknown role is denied", entity.UserRole("ghost"), entity.RoleUser, ActionConfirmBooking, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAct(tt.actor, tt.target, tt.action))
		})
	}
}
