package usecase

import (
	"context"
	"errors"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/request"
	"room-booking/internal/dto/response"
	"room-booking/internal/notify"
	"room-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VerificationService interface {
	Submit(ctx context.Context, actor Actor, req *request.SubmitVerificationRequest) (*response.VerificationResponse, error)
	Decide(ctx context.Context, actor Actor, targetUserID string, req *request.DecideVerificationRequest) (*response.VerificationResponse, error)
	GetOwn(ctx context.Context, actor Actor) (*response.VerificationResponse, error)
	ListPending(ctx context.Context, req *request.PaginatedRequest) ([]response.VerificationResponse, error)
}

type verificationService struct {
	repo       *repository.Repository
	dispatcher *notify.Dispatcher
	log        *zap.Logger
}

func NewVerificationService(repo *repository.Repository, dispatcher *notify.Dispatcher, log *zap.Logger) VerificationService {
	return &verificationService{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log.With(zap.String("service", "verification")),
	}
}

func (s *verificationService) Submit(ctx context.Context, actor Actor, req *request.SubmitVerificationRequest) (*response.VerificationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit verification validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if !utils.IsDigits(req.IdentityCard) {
		return nil, fmt.Errorf("validation failed: IdentityCard: Must contain digits only")
	}

	user, err := s.repo.User.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	// The card must be unique across accounts, excluding the
	// submitter's own prior value.
	holder, err := s.repo.User.FindByIdentityCard(ctx, req.IdentityCard)
	if err != nil {
		return nil, fmt.Errorf("check identity card: %w", err)
	}
	if holder != nil && holder.ID != actor.ID {
		return nil, ErrDuplicateIdentity
	}

	// Re-submission is allowed from any status and resets to pending,
	// overwriting previously rejected data.
	if err := s.repo.User.SubmitVerification(ctx, actor.ID, req.IdentityCard, req.Address, req.Organization); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateIdentity
		}
		s.log.Error("Failed to submit verification",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
		)
		return nil, fmt.Errorf("submit verification: %w", err)
	}

	s.log.Info("Verification submitted",
		zap.String("user_id", actor.ID.String()),
		zap.String("previous_status", string(user.VerificationStatus)),
	)

	return s.buildVerificationResponse(ctx, actor.ID)
}

func (s *verificationService) Decide(ctx context.Context, actor Actor, targetUserID string, req *request.DecideVerificationRequest) (*response.VerificationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Decide verification validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	targetID, err := uuid.Parse(targetUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", targetUserID, err)
	}

	target, err := s.repo.User.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("find target account: %w", err)
	}
	if target == nil {
		return nil, fmt.Errorf("user %s: %w", targetUserID, ErrNotFound)
	}

	if !CanAct(actor.Role, target.Role, ActionApproveVerification) {
		return nil, ErrForbidden
	}

	status := entity.VerificationApproved
	kind := notify.EventVerificationApproved
	message := "Your identity verification has been approved. You can now book rooms."
	if req.Outcome == "rejected" {
		status = entity.VerificationRejected
		kind = notify.EventVerificationRejected
		message = "Your identity verification has been rejected. Please re-submit your details."
	}

	// Compare-and-swap: only a pending submission can be decided.
	ok, err := s.repo.User.DecideVerification(ctx, targetID, status)
	if err != nil {
		return nil, fmt.Errorf("decide verification: %w", err)
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	s.log.Info("Verification decided",
		zap.String("user_id", targetUserID),
		zap.String("decided_by", actor.ID.String()),
		zap.String("outcome", string(status)),
	)

	s.dispatcher.Publish(notify.Event{
		Kind:         kind,
		TargetUserID: targetID,
		Message:      message,
	})

	return s.buildVerificationResponse(ctx, targetID)
}

func (s *verificationService) GetOwn(ctx context.Context, actor Actor) (*response.VerificationResponse, error) {
	return s.buildVerificationResponse(ctx, actor.ID)
}

func (s *verificationService) ListPending(ctx context.Context, req *request.PaginatedRequest) ([]response.VerificationResponse, error) {
	users, err := s.repo.User.FindPendingVerifications(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list pending verifications", zap.Error(err))
		return nil, fmt.Errorf("list pending verifications: %w", err)
	}

	verifications := make([]response.VerificationResponse, len(users))
	for i, user := range users {
		verifications[i] = response.VerificationToResponse(user)
	}

	return verifications, nil
}

// ==================== HELPER METHODS ====================

func (s *verificationService) buildVerificationResponse(ctx context.Context, userID uuid.UUID) (*response.VerificationResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("reload user %s: %w", userID.String(), err)
	}

	resp := response.VerificationToResponse(user)
	return &resp, nil
}
