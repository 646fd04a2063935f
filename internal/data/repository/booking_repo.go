package repository

import (
	"context"
	"fmt"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateIfRoomFree inserts the booking only when no pending or
	// confirmed booking overlaps its window in the same room. Returns
	// ErrSlotTaken when the window is occupied.
	CreateIfRoomFree(ctx context.Context, booking *entity.Booking) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByRoomAndWindow(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error)

	// State transitions. Both are compare-and-swap updates: they report
	// false when the booking was not in an eligible status.
	Confirm(ctx context.Context, bookingID, actorID uuid.UUID) (bool, error)
	Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, room_id, start_time, end_time, attendees, status,
	confirmed_by, cancelled_by, notes, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Attendees,
		&booking.Status,
		&booking.ConfirmedBy,
		&booking.CancelledBy,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) CreateIfRoomFree(ctx context.Context, booking *entity.Booking) error {
	// The overlap check and the insert must be one atomic unit; two
	// concurrent creates for overlapping windows would otherwise both
	// pass the check. Serializable isolation makes the second commit
	// fail with a serialization error, which we report as ErrSlotTaken.
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	overlapQuery := `
		SELECT COUNT(*)
		FROM bookings
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_time < $3
		  AND $2 < end_time
	`

	var overlapping int
	if err := tx.QueryRow(ctx, overlapQuery, booking.RoomID, booking.StartTime, booking.EndTime).Scan(&overlapping); err != nil {
		r.log.Error("Failed to check booking overlap",
			zap.Error(err),
			zap.String("room_id", booking.RoomID.String()),
		)
		return fmt.Errorf("check booking overlap: %w", err)
	}

	if overlapping > 0 {
		return ErrSlotTaken
	}

	insertQuery := `
		INSERT INTO bookings (id, user_id, room_id, start_time, end_time, attendees, status,
			confirmed_by, cancelled_by, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = tx.Exec(ctx, insertQuery,
		booking.ID,
		booking.UserID,
		booking.RoomID,
		booking.StartTime,
		booking.EndTime,
		booking.Attendees,
		booking.Status,
		booking.ConfirmedBy,
		booking.CancelledBy,
		booking.Notes,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("insert booking %s: %w", booking.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotTaken
		}
		r.log.Error("Failed to commit booking transaction",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("commit booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByRoomAndWindow(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND start_time < $3
		  AND $2 < end_time
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, roomID, from, to)
	if err != nil {
		r.log.Error("Failed to find bookings by room and window",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find bookings by room %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, bookingID, actorID uuid.UUID) (bool, error) {
	// Confirmation is only legal from pending.
	query := `
		UPDATE bookings
		SET status = 'confirmed', confirmed_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, bookingID, actorID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID, actorID uuid.UUID) (bool, error) {
	// Cancellation is legal from pending or confirmed, never twice.
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_by = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.Exec(ctx, query, bookingID, actorID)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("cancel booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
