package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/pkg/clock"
)

func TestStateTracker_Exec(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	t.Run("CompletesOnce", func(t *testing.T) {
		tr := New(NewMemory(clk))
		calls := 0
		fn := func(context.Context) error { calls++; return nil }

		require.NoError(t, tr.Exec(ctx, "k1", fn))
		assert.ErrorIs(t, tr.Exec(ctx, "k1", fn), ErrAlreadyCompleted)
		assert.Equal(t, 1, calls)
	})

	t.Run("FailureIsRemembered", func(t *testing.T) {
		tr := New(NewMemory(clk))
		boom := errors.New("boom")

		assert.ErrorIs(t, tr.Exec(ctx, "k2", func(context.Context) error { return boom }), boom)
		assert.ErrorIs(t, tr.Exec(ctx, "k2", func(context.Context) error { return nil }), ErrAlreadyFailed)
	})

	t.Run("InProgress", func(t *testing.T) {
		mem := NewMemory(clk)
		tr := New(mem)

		state, err := mem.Acquire(ctx, "k3", time.Minute)
		require.NoError(t, err)
		require.Equal(t, StateNone, state)

		assert.ErrorIs(t, tr.Exec(ctx, "k3", func(context.Context) error { return nil }), ErrAlreadyInProgress)
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		c := clock.NewFixed(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
		tr := New(NewMemory(c))
		fn := func(context.Context) error { return nil }

		require.NoError(t, tr.Exec(ctx, "k4", fn, WithStateTTL(time.Second)))
		c.Advance(2 * time.Second)
		assert.NoError(t, tr.Exec(ctx, "k4", fn, WithLockDuration(-1)))
	})
}

type failingMarkBackend struct {
	Backend
	marks []State
}

func (b *failingMarkBackend) Mark(_ context.Context, _ string, state State, _ time.Duration) error {
	b.marks = append(b.marks, state)
	return errors.New("redis down")
}

func TestStateTracker_ExecMarkFailure(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewFixed(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	t.Run("SucceededWork", func(t *testing.T) {
		b := &failingMarkBackend{Backend: NewMemory(clk)}
		calls := 0

		err := New(b).Exec(ctx, "k1", func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, []State{StateCompleted}, b.marks)
	})

	t.Run("FailedWork", func(t *testing.T) {
		b := &failingMarkBackend{Backend: NewMemory(clk)}
		boom := errors.New("boom")

		err := New(b).Exec(ctx, "k2", func(context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []State{StateFailed}, b.marks)
	})
}

func TestParseState(t *testing.T) {
	s, err := parseState("completed")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s)

	_, err = parseState("nope")
	assert.ErrorIs(t, err, ErrInvalidState)
}
