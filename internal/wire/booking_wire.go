package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms/{id}/schedule - View a room's bookings for a day
	r.Get("/api/rooms/{id}/schedule", bookingHandler.GetRoomSchedule)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking (verified users only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// GET /api/bookings/{id} - View booking details (owner or staff)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/cancel - Cancel a booking (owner or staff)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
	})

	// ==================== STAFF / ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		// PUT /api/admin/bookings/{id}/confirm - Confirm a pending booking
		r.Put("/{id}/confirm", bookingHandler.ConfirmBooking)
	})
}
