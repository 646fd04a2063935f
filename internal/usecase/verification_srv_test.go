package usecase

import (
	"context"
	"testing"

	"room-booking/internal/data/entity"
	"room-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testIdentityCard = "1234567890123"

func TestSubmitVerification(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	user := seedUser(repo, entity.RoleUser, entity.VerificationNone)

	resp, err := svc.Submit(context.Background(), Actor{ID: user.ID, Role: user.Role}, &request.SubmitVerificationRequest{
		IdentityCard: testIdentityCard,
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, resp.Status)
}

func TestSubmitVerificationRejectsBadCard(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	user := seedUser(repo, entity.RoleUser, entity.VerificationNone)
	actor := Actor{ID: user.ID, Role: user.Role}

	// Too short
	_, err := svc.Submit(context.Background(), actor, &request.SubmitVerificationRequest{
		IdentityCard: "12345",
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	assert.Error(t, err)

	// Right length, not digits
	_, err = svc.Submit(context.Background(), actor, &request.SubmitVerificationRequest{
		IdentityCard: "12345678901ab",
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	assert.Error(t, err)
}

func TestSubmitVerificationDuplicateCard(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	first := seedUser(repo, entity.RoleUser, entity.VerificationNone)
	second := seedUser(repo, entity.RoleUser, entity.VerificationNone)

	req := &request.SubmitVerificationRequest{
		IdentityCard: testIdentityCard,
		Address:      "1 Main Street",
		Organization: "Acme",
	}

	_, err := svc.Submit(context.Background(), Actor{ID: first.ID, Role: first.Role}, req)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), Actor{ID: second.ID, Role: second.Role}, req)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// Re-submitting one's own card is not a duplicate.
	_, err = svc.Submit(context.Background(), Actor{ID: first.ID, Role: first.Role}, req)
	assert.NoError(t, err)
}

func TestDecideVerification(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	user := seedUser(repo, entity.RoleUser, entity.VerificationNone)
	staff := seedUser(repo, entity.RoleStaff, entity.VerificationNone)
	staffActor := Actor{ID: staff.ID, Role: staff.Role}

	_, err := svc.Submit(context.Background(), Actor{ID: user.ID, Role: user.Role}, &request.SubmitVerificationRequest{
		IdentityCard: testIdentityCard,
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	require.NoError(t, err)

	resp, err := svc.Decide(context.Background(), staffActor, user.ID.String(), &request.DecideVerificationRequest{Outcome: "approved"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationApproved, resp.Status)

	// Deciding a non-pending submission is an invalid transition.
	_, err = svc.Decide(context.Background(), staffActor, user.ID.String(), &request.DecideVerificationRequest{Outcome: "rejected"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideVerificationAuthorization(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	pendingStaff := seedUser(repo, entity.RoleStaff, entity.VerificationNone)
	staff := seedUser(repo, entity.RoleStaff, entity.VerificationNone)
	admin := seedUser(repo, entity.RoleAdmin, entity.VerificationNone)
	plain := seedUser(repo, entity.RoleUser, entity.VerificationNone)

	_, err := svc.Submit(context.Background(), Actor{ID: pendingStaff.ID, Role: pendingStaff.Role}, &request.SubmitVerificationRequest{
		IdentityCard: testIdentityCard,
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	require.NoError(t, err)

	approve := &request.DecideVerificationRequest{Outcome: "approved"}

	// A plain user may never decide.
	_, err = svc.Decide(context.Background(), Actor{ID: plain.ID, Role: plain.Role}, pendingStaff.ID.String(), approve)
	assert.ErrorIs(t, err, ErrForbidden)

	// Staff may not decide on another staff account.
	_, err = svc.Decide(context.Background(), Actor{ID: staff.ID, Role: staff.Role}, pendingStaff.ID.String(), approve)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admin may.
	_, err = svc.Decide(context.Background(), Actor{ID: admin.ID, Role: admin.Role}, pendingStaff.ID.String(), approve)
	assert.NoError(t, err)
}

func TestResubmitAfterRejection(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	user := seedUser(repo, entity.RoleUser, entity.VerificationNone)
	staff := seedUser(repo, entity.RoleStaff, entity.VerificationNone)
	userActor := Actor{ID: user.ID, Role: user.Role}

	_, err := svc.Submit(context.Background(), userActor, &request.SubmitVerificationRequest{
		IdentityCard: testIdentityCard,
		Address:      "1 Main Street",
		Organization: "Acme",
	})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), Actor{ID: staff.ID, Role: staff.Role}, user.ID.String(), &request.DecideVerificationRequest{Outcome: "rejected"})
	require.NoError(t, err)

	// Rejection is not terminal: a fresh submission resets to pending
	// and overwrites the previous details.
	resp, err := svc.Submit(context.Background(), userActor, &request.SubmitVerificationRequest{
		IdentityCard: "9876543210987",
		Address:      "2 Side Street",
		Organization: "Globex",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, resp.Status)
	require.NotNil(t, resp.IdentityCard)
	assert.Equal(t, "9876543210987", *resp.IdentityCard)
}

func TestListPendingVerifications(t *testing.T) {
	repo := newTestRepository()
	svc := NewVerificationService(repo, newTestDispatcher(repo), zap.NewNop())

	for i := 0; i < 3; i++ {
		user := seedUser(repo, entity.RoleUser, entity.VerificationNone)
		card := []byte(testIdentityCard)
		card[0] = byte('1' + i)
		_, err := svc.Submit(context.Background(), Actor{ID: user.ID, Role: user.Role}, &request.SubmitVerificationRequest{
			IdentityCard: string(card),
			Address:      "1 Main Street",
			Organization: "Acme",
		})
		require.NoError(t, err)
	}
	seedUser(repo, entity.RoleUser, entity.VerificationNone)

	pending, err := svc.ListPending(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}
