package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user/profile - View own profile
		r.Get("/api/user/profile", userHandler.GetProfile)

		// PUT /api/user/profile - Update own contact details
		r.Put("/api/user/profile", userHandler.UpdateProfile)

		// PUT /api/user/password - Change own password
		r.Put("/api/user/password", userHandler.ChangePassword)
	})

	// ==================== STAFF / ADMIN ROUTES ====================
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		// PUT /api/admin/users/{id}/password - Reset a user's password
		r.Put("/{id}/password", userHandler.ResetPassword)
	})
}
