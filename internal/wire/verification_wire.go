package wire

import (
	"room-booking/internal/adaptor"
	"room-booking/internal/data/repository"
	"room-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVerification(
	r chi.Router,
	verificationHandler *adaptor.VerificationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/verification - Submit or re-submit identity details
		r.Post("/api/verification", verificationHandler.SubmitVerification)

		// GET /api/verification - View own verification status
		r.Get("/api/verification", verificationHandler.GetOwnVerification)
	})

	// ==================== STAFF / ADMIN ROUTES ====================
	r.Route("/api/admin/verifications", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireStaff(log))

		// GET /api/admin/verifications - List pending submissions
		r.Get("/", verificationHandler.ListPendingVerifications)

		// PUT /api/admin/verifications/{id} - Approve or reject a submission
		r.Put("/{id}", verificationHandler.DecideVerification)
	})
}
