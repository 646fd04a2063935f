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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByLineUserID(ctx context.Context, lineUserID string) (*entity.User, error)
	FindByIdentityCard(ctx context.Context, card string) (*entity.User, error)
	FindPendingVerifications(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// Verification workflow
	SubmitVerification(ctx context.Context, id uuid.UUID, card, address, organization string) error
	DecideVerification(ctx context.Context, id uuid.UUID, status entity.VerificationStatus) (bool, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password, phone, role, verification_status,
	identity_card, address, organization, line_user_id, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Role,
		&user.VerificationStatus,
		&user.IdentityCard,
		&user.Address,
		&user.Organization,
		&user.LineUserID,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, phone, role, verification_status,
			identity_card, address, organization, line_user_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Role,
		user.VerificationStatus,
		user.IdentityCard,
		user.Address,
		user.Organization,
		user.LineUserID,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		r.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) FindByLineUserID(ctx context.Context, lineUserID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE line_user_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, lineUserID))
	if err != nil {
		r.log.Error("Failed to find user by line user ID", zap.Error(err))
		return nil, fmt.Errorf("find user by line user ID: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindByIdentityCard(ctx context.Context, card string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE identity_card = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, card))
	if err != nil {
		r.log.Error("Failed to find user by identity card", zap.Error(err))
		return nil, fmt.Errorf("find user by identity card: %w", err)
	}

	return user, nil
}

func (r *userRepository) FindPendingVerifications(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE verification_status = 'pending'
		ORDER BY updated_at
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find pending verifications", zap.Error(err))
		return nil, fmt.Errorf("find pending verifications: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, phone = $3, line_user_id = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Phone,
		user.LineUserID,
		user.IsActive,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID.String())
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (r *userRepository) SubmitVerification(ctx context.Context, id uuid.UUID, card, address, organization string) error {
	query := `
		UPDATE users
		SET identity_card = $2, address = $3, organization = $4,
		    verification_status = 'pending', updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, card, address, organization)
	if err != nil {
		// Unique index on identity_card closes the race between the
		// pre-check and this write.
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		r.log.Error("Failed to submit verification",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("submit verification for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (r *userRepository) DecideVerification(ctx context.Context, id uuid.UUID, status entity.VerificationStatus) (bool, error) {
	// Compare-and-swap on the current status: only a pending submission
	// can be decided.
	query := `
		UPDATE users
		SET verification_status = $2, updated_at = NOW()
		WHERE id = $1 AND verification_status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to decide verification",
			zap.Error(err),
			zap.String("user_id", id.String()),
			zap.String("status", string(status)),
		)
		return false, fmt.Errorf("decide verification for user %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
