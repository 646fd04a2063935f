package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, actor Actor, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, actor Actor, req *request.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, actor Actor, targetUserID string, req *request.ResetPasswordRequest) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor Actor, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.LineUserID != nil {
		user.LineUserID = req.LineUserID
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("email already registered")
		}
		s.log.Error("Failed to update profile",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
		)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.Info("Profile updated", zap.String("user_id", actor.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor Actor, req *request.ChangePasswordRequest) error {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrUnauthorized
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return fmt.Errorf("invalid credentials")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("process password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, actor.ID, hashedPassword); err != nil {
		s.log.Error("Failed to change password",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
		)
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info("Password changed", zap.String("user_id", actor.ID.String()))
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, actor Actor, targetUserID string, req *request.ResetPasswordRequest) error {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	targetID, err := uuid.Parse(targetUserID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", targetUserID, err)
	}

	target, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("find target account: %w", err)
	}
	if target == nil {
		return fmt.Errorf("user %s: %w", targetUserID, ErrNotFound)
	}

	// Admin passwords can never be reset, not even by another admin.
	if !CanAct(actor.Role, target.Role, ActionResetPassword) {
		return ErrForbidden
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("process password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, targetID, hashedPassword); err != nil {
		s.log.Error("Failed to reset password",
			zap.Error(err),
			zap.String("user_id", targetUserID),
		)
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info("Password reset",
		zap.String("user_id", targetUserID),
		zap.String("reset_by", actor.ID.String()),
	)
	return nil
}
