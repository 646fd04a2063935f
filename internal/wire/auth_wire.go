package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/auth/register - Create a new account
	r.Post("/api/auth/register", authHandler.Register)

	// POST /api/auth/login - Obtain a session token
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/auth/logout - Revoke the current session
		r.Post("/api/auth/logout", authHandler.Logout)
	})
}
