package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireFeedback(
	r chi.Router,
	feedbackHandler *adaptor.FeedbackHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/feedback - Rate a completed booking (owner only)
		r.Post("/api/feedback", feedbackHandler.SubmitFeedback)

		// GET /api/bookings/{id}/feedback - View the feedback for a booking
		r.Get("/api/bookings/{id}/feedback", feedbackHandler.GetFeedbackByBooking)
	})
}
