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

type RoomHandler struct {
	service usecase.RoomService
	log     *zap.Logger
}

func NewRoomHandler(service usecase.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log.With(zap.String("handler", "room")),
	}
}

// ListRooms handles GET /api/rooms (public). Only active rooms are
// listed unless include_inactive=true is passed on the admin surface.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	activeOnly := query.Get("include_inactive") != "true"

	rooms, err := h.service.List(r.Context(), activeOnly, req)
	if err != nil {
		writeServiceError(w, h.log, err, "list rooms")
		return
	}

	utils.ResponseSuccess(w, "success", rooms)
}

// GetRoomByID handles GET /api/rooms/{id} (public)
func (h *RoomHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	room, err := h.service.GetByID(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, h.log, err, "get room by ID")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// ==================== ADMIN METHODS ====================

// CreateRoom handles POST /api/admin/rooms (admin only)
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	room, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create room")
		return
	}

	utils.ResponseCreated(w, "success", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id} (admin only). Setting
// is_active=false here retires the room from new bookings.
func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromRequest(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	roomID := chi.URLParam(r, "id")
	if roomID == "" {
		utils.ResponseBadRequest(w, "Room ID is required", nil)
		return
	}

	var req request.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	room, err := h.service.Update(r.Context(), actor, roomID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}
