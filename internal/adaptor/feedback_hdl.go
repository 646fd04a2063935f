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

type FeedbackHandler struct {
	service usecase.FeedbackService
	log     *zap.Logger
}

func NewFeedbackHandler(service usecase.FeedbackService, log *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With(zap.String("handler", "feedback")),
	}
}

// SubmitFeedback handles POST /api/feedback (protected, booking owner)
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	feedback, err := h.service.Submit(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "submit feedback")
		return
	}

	utils.ResponseCreated(w, "success", feedback)
}

// GetFeedbackByBooking handles GET /api/bookings/{id}/feedback (protected)
func (h *FeedbackHandler) GetFeedbackByBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	feedback, err := h.service.GetByBooking(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "get feedback by booking")
		return
	}

	utils.ResponseSuccess(w, "success", feedback)
}
