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

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Room, error)
	CountAll(ctx context.Context, activeOnly bool) (int64, error)
	Update(ctx context.Context, room *entity.Room) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	query := `
		INSERT INTO rooms (id, name, location, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID,
		room.Name,
		room.Location,
		room.Capacity,
		room.IsActive,
		room.CreatedAt,
		room.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("name", room.Name),
		)
		return fmt.Errorf("create room %s: %w", room.Name, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, name, location, capacity, is_active, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Location,
		&room.Capacity,
		&room.IsActive,
		&room.CreatedAt,
		&room.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return &room, nil
}

func (r *roomRepository) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.Room, error) {
	query := `
		SELECT id, name, location, capacity, is_active, created_at, updated_at
		FROM rooms
		WHERE ($1 = false OR is_active = true)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		r.log.Error("Failed to find rooms", zap.Error(err))
		return nil, fmt.Errorf("find rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Location,
			&room.Capacity,
			&room.IsActive,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

func (r *roomRepository) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM rooms WHERE ($1 = false OR is_active = true)`

	var count int64
	err := r.db.QueryRow(ctx, query, activeOnly).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}

	return count, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET name = $2, location = $3, capacity = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.Name,
		room.Location,
		room.Capacity,
		room.IsActive,
		room.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", room.ID.String())
	}

	return nil
}
