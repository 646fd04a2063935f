package usecase

import (
	"context"
	"sync"
	"time"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the SQL constraints the real
// repositories lean on: unique indexes, overlap exclusion and
// compare-and-swap transitions.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByLineUserID(_ context.Context, lineUserID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.LineUserID != nil && *u.LineUserID == lineUserID {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByIdentityCard(_ context.Context, card string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.IdentityCard != nil && *u.IdentityCard == card {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindPendingVerifications(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*entity.User
	for _, u := range r.users {
		if u.VerificationStatus == entity.VerificationPending {
			clone := *u
			pending = append(pending, &clone)
		}
	}
	if offset >= len(pending) {
		return nil, nil
	}
	pending = pending[offset:]
	if limit < len(pending) {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) SubmitVerification(_ context.Context, id uuid.UUID, card, address, organization string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for otherID, u := range r.users {
		if otherID != id && u.IdentityCard != nil && *u.IdentityCard == card {
			return repository.ErrDuplicateKey
		}
	}
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.IdentityCard = &card
	u.Address = &address
	u.Organization = &organization
	u.VerificationStatus = entity.VerificationPending
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) DecideVerification(_ context.Context, id uuid.UUID, status entity.VerificationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.VerificationStatus != entity.VerificationPending {
		return false, nil
	}
	u.VerificationStatus = status
	u.UpdatedAt = time.Now()
	return true, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) CreateIfRoomFree(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RoomID != booking.RoomID {
			continue
		}
		if b.Status == entity.BookingStatusCancelled {
			continue
		}
		if b.Overlaps(booking.StartTime, booking.EndTime) {
			return repository.ErrSlotTaken
		}
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.bookings {
		if b.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) FindByRoomAndWindow(_ context.Context, roomID uuid.UUID, from, to time.Time) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Overlaps(from, to) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Confirm(_ context.Context, bookingID, actorID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusConfirmed
	b.ConfirmedBy = &actorID
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, bookingID, actorID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.Status == entity.BookingStatusCancelled {
		return false, nil
	}
	b.Status = entity.BookingStatusCancelled
	b.CancelledBy = &actorID
	b.UpdatedAt = time.Now()
	return true, nil
}

type fakeRoomRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*entity.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*entity.Room)}
}

func (r *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rooms {
		if existing.Name == room.Name {
			return repository.ErrDuplicateKey
		}
	}
	clone := *room
	r.rooms[room.ID] = &clone
	return nil
}

func (r *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	clone := *room
	return &clone, nil
}

func (r *fakeRoomRepo) FindAll(_ context.Context, activeOnly bool, limit, offset int) ([]*entity.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Room
	for _, room := range r.rooms {
		if activeOnly && !room.IsActive {
			continue
		}
		clone := *room
		out = append(out, &clone)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRoomRepo) CountAll(_ context.Context, activeOnly bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, room := range r.rooms {
		if activeOnly && !room.IsActive {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeRoomRepo) Update(_ context.Context, room *entity.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *room
	r.rooms[room.ID] = &clone
	return nil
}

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	byBooking map[uuid.UUID]*entity.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{byBooking: make(map[uuid.UUID]*entity.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byBooking[feedback.BookingID]; exists {
		return repository.ErrDuplicateKey
	}
	clone := *feedback
	r.byBooking[feedback.BookingID] = &clone
	return nil
}

func (r *fakeFeedbackRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byBooking[bookingID]
	if !ok {
		return nil, nil
	}
	clone := *f
	return &clone, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tokenUUID]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[token]; ok {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

// ==================== TEST WIRING ====================

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:     newFakeUserRepo(),
		Session:  newFakeSessionRepo(),
		Room:     newFakeRoomRepo(),
		Booking:  newFakeBookingRepo(),
		Feedback: newFakeFeedbackRepo(),
	}
}

type fakePusher struct {
	mu     sync.Mutex
	pushes []string
}

func (p *fakePusher) Push(_ context.Context, to, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, to+": "+text)
	return nil
}

func newTestDispatcher(repo *repository.Repository) *notify.Dispatcher {
	return notify.NewDispatcher(repo.User, &fakePusher{}, 16, zap.NewNop())
}

func seedUser(repo *repository.Repository, role entity.UserRole, status entity.VerificationStatus) *entity.User {
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:           "user-" + uuid.NewString()[:8],
		Email:              uuid.NewString()[:8] + "@example.com",
		PasswordHash:       "x",
		Role:               role,
		VerificationStatus: status,
		IsActive:           true,
	}
	_ = repo.User.Create(context.Background(), user)
	return user
}

func seedRoom(repo *repository.Repository, capacity int, active bool) *entity.Room {
	now := time.Now()
	room := &entity.Room{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     "Room " + uuid.NewString()[:8],
		Capacity: capacity,
		IsActive: active,
	}
	_ = repo.Room.Create(context.Background(), room)
	return room
}
