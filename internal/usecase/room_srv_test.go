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

func TestRoomManagementIsAdminOnly(t *testing.T) {
	repo := newTestRepository()
	svc := NewRoomService(repo, zap.NewNop())

	user := seedUser(repo, entity.RoleUser, entity.VerificationNone)
	staff := seedUser(repo, entity.RoleStaff, entity.VerificationNone)
	admin := seedUser(repo, entity.RoleAdmin, entity.VerificationNone)

	req := &request.CreateRoomRequest{Name: "Boardroom", Capacity: 12}

	_, err := svc.Create(context.Background(), Actor{ID: user.ID, Role: user.Role}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), Actor{ID: staff.ID, Role: staff.Role}, req)
	assert.ErrorIs(t, err, ErrForbidden)

	room, err := svc.Create(context.Background(), Actor{ID: admin.ID, Role: admin.Role}, req)
	require.NoError(t, err)
	assert.True(t, room.IsActive)
}

func TestUpdateRoomDeactivates(t *testing.T) {
	repo := newTestRepository()
	svc := NewRoomService(repo, zap.NewNop())

	admin := seedUser(repo, entity.RoleAdmin, entity.VerificationNone)
	room := seedRoom(repo, 8, true)

	inactive := false
	updated, err := svc.Update(context.Background(), Actor{ID: admin.ID, Role: admin.Role}, room.ID.String(), &request.UpdateRoomRequest{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestListRoomsActiveOnly(t *testing.T) {
	repo := newTestRepository()
	svc := NewRoomService(repo, zap.NewNop())

	seedRoom(repo, 4, true)
	seedRoom(repo, 6, true)
	seedRoom(repo, 8, false)

	page := &request.PaginatedRequest{Page: 1, PerPage: 10}

	active, err := svc.List(context.Background(), true, page)
	require.NoError(t, err)
	assert.Len(t, active.Data, 2)
	assert.EqualValues(t, 2, active.Pagination.Total)

	all, err := svc.List(context.Background(), false, page)
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)
}
