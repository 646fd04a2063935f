package repository

import (
	"errors"

	"room-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Sentinel errors surfaced by repositories so the usecase layer can map
// constraint violations to domain outcomes without parsing SQLSTATEs.
var (
	ErrDuplicateKey = errors.New("duplicate key")
	ErrSlotTaken    = errors.New("slot taken")
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Room     RoomRepository
	Booking  BookingRepository
	Feedback FeedbackRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Room:     NewRoomRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Feedback: NewFeedbackRepository(db, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}
