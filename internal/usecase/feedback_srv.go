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

type FeedbackService interface {
	Submit(ctx context.Context, actor Actor, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (*response.FeedbackResponse, error)
}

type feedbackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) Submit(ctx context.Context, actor Actor, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit feedback validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	if booking.UserID != actor.ID {
		return nil, ErrForbidden
	}

	feedback := &entity.Feedback{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ImageURL:  req.ImageURL,
	}

	// The unique index on booking_id enforces at-most-one feedback.
	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyRated
		}
		s.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("Feedback created",
		zap.String("feedback_id", feedback.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.Int("rating", req.Rating),
	)

	resp := response.FeedbackToResponse(feedback)
	return &resp, nil
}

func (s *feedbackService) GetByBooking(ctx context.Context, bookingID string) (*response.FeedbackResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	feedback, err := s.repo.Feedback.FindByBookingID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	if feedback == nil {
		return nil, fmt.Errorf("feedback for booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.FeedbackToResponse(feedback)
	return &resp, nil
}
