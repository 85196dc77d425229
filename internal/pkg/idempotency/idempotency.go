// Package idempotency guards side-effecting requests (address submission)
// against replays that carry the same Idempotency-Key.
package idempotency

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateError      State = "error"
)

func (s State) String() string {
	return string(s)
}

func parseState(v string) (State, error) {
	switch s := State(v); s {
	case StateInProgress, StateCompleted, StateFailed:
		return s, nil
	default:
		return StateError, ErrInvalidState
	}
}

// Backend stores key states. Acquire returns StateNone when the caller now
// owns the key.
type Backend interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	Mark(ctx context.Context, key string, state State, ttl time.Duration) error
}

// Idempotency runs fn at most once per key within the state TTL.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// StateTracker implements Idempotency on top of a Backend.
type StateTracker struct {
	backend Backend
}

func New(backend Backend) *StateTracker {
	return &StateTracker{backend: backend}
}

func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	o := &execOptions{lockDuration: defaultLockDuration, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(o)
	}
	if o.lockDuration <= 0 {
		o.lockDuration = defaultLockDuration
	}
	if o.stateTTL <= 0 {
		o.stateTTL = defaultStateTTL
	}

	state, err := s.backend.Acquire(ctx, key, o.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := s.backend.Mark(ctx, key, StateFailed, o.stateTTL); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	}

	// fn already ran, so a lost completion mark must not turn into a failure.
	// Replays inside the lock window still see StateInProgress.
	if err := s.backend.Mark(ctx, key, StateCompleted, o.stateTTL); err != nil {
		slog.WarnContext(ctx, "failed to mark idempotency key completed", "key", key, "error", err)
	}

	return nil
}
