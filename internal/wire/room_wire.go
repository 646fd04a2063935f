package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRoom(
	r chi.Router,
	roomHandler *adaptor.RoomHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms - List active rooms
	r.Get("/api/rooms", roomHandler.ListRooms)

	// GET /api/rooms/{id} - View room details
	r.Get("/api/rooms/{id}", roomHandler.GetRoomByID)

	// ==================== ADMIN ROUTES ====================
	// Room management is admin only; the usecase role policy rejects
	// staff even if they get past the gate.
	r.Route("/api/admin/rooms", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		// POST /api/admin/rooms - Create a room
		r.Post("/", roomHandler.CreateRoom)

		// PUT /api/admin/rooms/{id} - Update or deactivate a room
		r.Put("/{id}", roomHandler.UpdateRoom)
	})
}
