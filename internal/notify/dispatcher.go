package notify

import (
	"context"
	"time"

	"room-booking/internal/data/repository"

	"go.uber.org/zap"
)

// Pusher sends a text message to an external-channel identifier.
type Pusher interface {
	Push(ctx context.Context, to, text string) error
}

// Dispatcher consumes transition events from a buffered channel and
// pushes them through the external channel, best-effort. Publishing
// never blocks the caller and delivery failure is only logged: the
// state transition that emitted the event has already committed.
type Dispatcher struct {
	events  chan Event
	users   repository.UserRepository
	pusher  Pusher
	timeout time.Duration
	log     *zap.Logger
}

func NewDispatcher(users repository.UserRepository, pusher Pusher, bufferSize int, log *zap.Logger) *Dispatcher {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Dispatcher{
		events:  make(chan Event, bufferSize),
		users:   users,
		pusher:  pusher,
		timeout: 10 * time.Second,
		log:     log.With(zap.String("component", "dispatcher")),
	}
}

// Publish enqueues an event without blocking. A full buffer drops the
// event; notification is advisory.
func (d *Dispatcher) Publish(event Event) {
	select {
	case d.events <- event:
	default:
		d.log.Warn("Notification buffer full, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.String("target_user_id", event.TargetUserID.String()),
		)
	}
}

// Run consumes events until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.dispatch(ctx, event)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	user, err := d.users.FindByID(ctx, event.TargetUserID)
	if err != nil {
		d.log.Warn("Failed to resolve notification target",
			zap.Error(err),
			zap.String("target_user_id", event.TargetUserID.String()),
		)
		return
	}

	if user == nil || user.LineUserID == nil || *user.LineUserID == "" {
		d.log.Info("Notification target has no channel identifier, dropping",
			zap.String("kind", string(event.Kind)),
			zap.String("target_user_id", event.TargetUserID.String()),
		)
		return
	}

	if err := d.pusher.Push(ctx, *user.LineUserID, event.Message); err != nil {
		// Single attempt, no retry.
		d.log.Warn("Failed to push notification",
			zap.Error(err),
			zap.String("kind", string(event.Kind)),
			zap.String("target_user_id", event.TargetUserID.String()),
		)
		return
	}

	d.log.Info("Notification delivered",
		zap.String("kind", string(event.Kind)),
		zap.String("target_user_id", event.TargetUserID.String()),
	)
}
