package entity

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleStaff UserRole = "staff"
	RoleAdmin UserRole = "admin"
)

type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// User is an account. Role and verification status are independent axes:
// a staff account can be unverified, a plain user can be approved.
type User struct {
	Base
	Username           string             `db:"username"`
	Email              string             `db:"email"`
	PasswordHash       string             `db:"password"`
	Phone              *string            `db:"phone"`
	Role               UserRole           `db:"role"`
	VerificationStatus VerificationStatus `db:"verification_status"`
	IdentityCard       *string            `db:"identity_card"`
	Address            *string            `db:"address"`
	Organization       *string            `db:"organization"`
	LineUserID         *string            `db:"line_user_id"`
	IsActive           bool               `db:"is_active"`
}
