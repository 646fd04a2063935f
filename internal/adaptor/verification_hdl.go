package adaptor

import (
	"encoding/json"
	"net/http"

	"room-booking/internal/dto/request"
	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VerificationHandler struct {
	service usecase.VerificationService
	log     *zap.Logger
}

func NewVerificationHandler(service usecase.VerificationService, log *zap.Logger) *VerificationHandler {
	return &VerificationHandler{
		service: service,
		log:     log.With(zap.String("handler", "verification")),
	}
}

// SubmitVerification handles POST /api/verification (protected).
// Re-submission after rejection goes through the same endpoint.
func (h *VerificationHandler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SubmitVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Submit(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "submit verification")
		return
	}

	utils.ResponseCreated(w, "success", verification)
}

// GetOwnVerification handles GET /api/verification (protected)
func (h *VerificationHandler) GetOwnVerification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	verification, err := h.service.GetOwn(r.Context(), actor)
	if err != nil {
		writeServiceError(w, h.log, err, "get verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}

// ==================== STAFF / ADMIN METHODS ====================

// ListPendingVerifications handles GET /api/admin/verifications (staff)
func (h *VerificationHandler) ListPendingVerifications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	verifications, err := h.service.ListPending(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "list pending verifications")
		return
	}

	utils.ResponseSuccess(w, "success", verifications)
}

// DecideVerification handles PUT /api/admin/verifications/{id} (staff).
// The body carries the outcome, approved or rejected.
func (h *VerificationHandler) DecideVerification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	targetUserID := chi.URLParam(r, "id")
	if targetUserID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req request.DecideVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	verification, err := h.service.Decide(r.Context(), actor, targetUserID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "decide verification")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}
