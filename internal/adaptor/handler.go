package adaptor

import (
	"context"
	"net/http"

	"room-booking/internal/data/entity"
	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

// Replier answers a webhook event through the external channel using
// its one-time reply token.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Room         *RoomHandler
	Booking      *BookingHandler
	Verification *VerificationHandler
	Feedback     *FeedbackHandler
	Webhook      *WebhookHandler
}

func NewHandler(service *usecase.Service, replier Replier, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Room:         NewRoomHandler(service.Room, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Verification: NewVerificationHandler(service.Verification, log),
		Feedback:     NewFeedbackHandler(service.Feedback, log),
		Webhook:      NewWebhookHandler(config.Line, replier, log),
	}
}

// actorFromRequest builds the explicit actor every usecase operation
// takes. The session middleware has already resolved id and role.
func actorFromRequest(r *http.Request) (usecase.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return usecase.Actor{}, false
	}

	return usecase.Actor{
		ID:   userID,
		Role: entity.UserRole(role),
	}, true
}
