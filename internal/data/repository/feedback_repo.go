package repository

import (
	"context"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FeedbackRepository interface {
	// Create returns ErrDuplicateKey when a feedback row already exists
	// for the booking; the unique index on booking_id is the invariant.
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Feedback, error)
}

type feedbackRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFeedbackRepository(db database.PgxIface, log *zap.Logger) FeedbackRepository {
	return &feedbackRepository{
		db:  db,
		log: log.With(zap.String("repository", "feedback")),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, booking_id, rating, comment, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		feedback.ID,
		feedback.BookingID,
		feedback.Rating,
		feedback.Comment,
		feedback.ImageURL,
		feedback.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to create feedback",
			zap.Error(err),
			zap.String("booking_id", feedback.BookingID.String()),
		)
		return fmt.Errorf("create feedback for booking %s: %w", feedback.BookingID.String(), err)
	}

	return nil
}

func (r *feedbackRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Feedback, error) {
	query := `
		SELECT id, booking_id, rating, comment, image_url, created_at
		FROM feedbacks
		WHERE booking_id = $1
	`

	var feedback entity.Feedback
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&feedback.ID,
		&feedback.BookingID,
		&feedback.Rating,
		&feedback.Comment,
		&feedback.ImageURL,
		&feedback.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find feedback by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find feedback by booking ID %s: %w", bookingID.String(), err)
	}

	return &feedback, nil
}
