package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RoomService interface {
	Create(ctx context.Context, actor Actor, req *request.CreateRoomRequest) (*response.RoomResponse, error)
	Update(ctx context.Context, actor Actor, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error)
	GetByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
	List(ctx context.Context, activeOnly bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) Create(ctx context.Context, actor Actor, req *request.CreateRoomRequest) (*response.RoomResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !CanAct(actor.Role, entity.RoleUser, ActionManageRoom) {
		return nil, ErrForbidden
	}

	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		IsActive: true,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("room name already taken")
		}
		s.log.Error("Failed to create room", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("name", room.Name),
		zap.Int("capacity", room.Capacity),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) Update(ctx context.Context, actor Actor, roomID string, req *request.UpdateRoomRequest) (*response.RoomResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !CanAct(actor.Role, entity.RoleUser, ActionManageRoom) {
		return nil, ErrForbidden
	}

	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Location != nil {
		room.Location = req.Location
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}
	room.UpdatedAt = time.Now()

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.log.Info("Room updated",
		zap.String("room_id", roomID),
		zap.String("updated_by", actor.ID.String()),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) List(ctx context.Context, activeOnly bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error) {
	rooms, err := s.repo.Room.FindAll(ctx, activeOnly, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	total, err := s.repo.Room.CountAll(ctx, activeOnly)
	if err != nil {
		s.log.Error("Failed to count rooms", zap.Error(err))
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return response.NewPaginatedResponse(roomResponses, req.Page, req.PerPage, total), nil
}
