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
	"room-booking/internal/notify"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Confirm(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	Cancel(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	GetByID(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetRoomSchedule(ctx context.Context, roomID string, day time.Time) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo       *repository.Repository
	dispatcher *notify.Dispatcher
	log        *zap.Logger
}

func NewBookingService(repo *repository.Repository, dispatcher *notify.Dispatcher, log *zap.Logger) BookingService {
	return &bookingService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Create(ctx context.Context, actor Actor, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", req.RoomID, err)
	}

	// Only approved accounts may create bookings.
	user, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("find booking account: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	if user.VerificationStatus != entity.VerificationApproved {
		return nil, ErrNotVerified
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil || !room.IsActive {
		return nil, fmt.Errorf("room %s: %w", req.RoomID, ErrNotFound)
	}

	if req.Attendees > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    actor.ID,
		RoomID:    roomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Attendees: req.Attendees,
		Status:    entity.BookingStatusPending,
		Notes:     req.Notes,
	}

	// Overlap check and insert are one atomic unit in the repository.
	if err := s.repo.Booking.CreateIfRoomFree(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
			zap.String("room_id", req.RoomID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("room_id", req.RoomID),
		zap.Time("start_time", req.StartTime),
		zap.Time("end_time", req.EndTime),
	)

	resp := response.BookingToResponse(booking, room.Name)
	return &resp, nil
}

func (s *bookingService) Confirm(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	booking, owner, err := s.loadBookingWithOwner(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanAct(actor.Role, owner.Role, ActionConfirmBooking) {
		return nil, ErrForbidden
	}

	// Compare-and-swap: only pending bookings can be confirmed.
	ok, err := s.repo.Booking.Confirm(ctx, booking.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.log.Info("Booking confirmed",
		zap.String("booking_id", bookingID),
		zap.String("confirmed_by", actor.ID.String()),
	)

	s.dispatcher.Publish(notify.Event{
		Kind:         notify.EventBookingConfirmed,
		TargetUserID: booking.UserID,
		Message: fmt.Sprintf("Your booking on %s (%s - %s) has been confirmed.",
			booking.StartTime.Format("2006-01-02"),
			booking.StartTime.Format("15:04"),
			booking.EndTime.Format("15:04")),
	})

	return s.buildBookingResponse(ctx, booking.ID)
}

func (s *bookingService) Cancel(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	booking, owner, err := s.loadBookingWithOwner(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// The owner may always cancel their own booking; anyone else needs
	// the role policy's blessing against the owner's role.
	if actor.ID != booking.UserID && !CanAct(actor.Role, owner.Role, ActionCancelBooking) {
		return nil, ErrForbidden
	}

	ok, err := s.repo.Booking.Cancel(ctx, booking.ID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("cancelled_by", actor.ID.String()),
	)

	s.dispatcher.Publish(notify.Event{
		Kind:         notify.EventBookingCancelled,
		TargetUserID: booking.UserID,
		Message: fmt.Sprintf("Your booking on %s (%s - %s) has been cancelled.",
			booking.StartTime.Format("2006-01-02"),
			booking.StartTime.Format("15:04"),
			booking.EndTime.Format("15:04")),
	})

	return s.buildBookingResponse(ctx, booking.ID)
}

func (s *bookingService) GetByID(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	booking, _, err := s.loadBookingWithOwner(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Owners see their own bookings; staff and admin see all.
	if actor.ID != booking.UserID && actor.Role == entity.RoleUser {
		return nil, ErrForbidden
	}

	return s.buildBookingResponse(ctx, booking.ID)
}

func (s *bookingService) GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, actor.ID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, actor.ID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		roomName := ""
		room, _ := s.repo.Room.FindByID(ctx, booking.RoomID)
		if room != nil {
			roomName = room.Name
		}
		bookingResponses[i] = response.BookingToResponse(booking, roomName)
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetRoomSchedule(ctx context.Context, roomID string, day time.Time) ([]response.BookingResponse, error) {
	roomUUID, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room ID format %s: %w", roomID, err)
	}

	room, err := s.repo.Room.FindByID(ctx, roomUUID)
	if err != nil {
		return nil, fmt.Errorf("find room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	bookings, err := s.repo.Booking.FindByRoomAndWindow(ctx, roomUUID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get room schedule: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking, room.Name)
	}

	return bookingResponses, nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) loadBookingWithOwner(ctx context.Context, bookingID string) (*entity.Booking, *entity.User, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	owner, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking owner: %w", err)
	}
	if owner == nil {
		return nil, nil, fmt.Errorf("booking owner %s: %w", booking.UserID.String(), ErrNotFound)
	}

	return booking, owner, nil
}

func (s *bookingService) buildBookingResponse(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || booking == nil {
		return nil, fmt.Errorf("reload booking %s: %w", bookingID.String(), err)
	}

	roomName := ""
	room, _ := s.repo.Room.FindByID(ctx, booking.RoomID)
	if room != nil {
		roomName = room.Name
	}

	resp := response.BookingToResponse(booking, roomName)
	return &resp, nil
}
