package notify

import (
	"github.com/google/uuid"
)

type EventKind string

const (
	EventBookingConfirmed     EventKind = "booking_confirmed"
	EventBookingCancelled     EventKind = "booking_cancelled"
	EventVerificationApproved EventKind = "verification_approved"
	EventVerificationRejected EventKind = "verification_rejected"
)

// Event is a state-transition notification for one account. Events are
// ephemeral: they are never persisted, and losing one never affects the
// transition that produced it.
type Event struct {
	Kind         EventKind
	TargetUserID uuid.UUID
	Message      string
}
