package usecase

import (
	"room-booking/internal/data/repository"
	"room-booking/internal/notify"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Room         RoomService
	Booking      BookingService
	Verification VerificationService
	Feedback     FeedbackService
}

func NewService(repo *repository.Repository, dispatcher *notify.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, log),
		User:         NewUserService(repo, log),
		Room:         NewRoomService(repo, log),
		Booking:      NewBookingService(repo, dispatcher, log),
		Verification: NewVerificationService(repo, dispatcher, log),
		Feedback:     NewFeedbackService(repo, log),
	}
}
