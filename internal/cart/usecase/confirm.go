package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// Confirm snapshots the current lines as the confirmed cart.
func (s *Usecase) Confirm(ctx context.Context) (*entity.Confirmed, error) {
	ctx, span := s.startSpan(ctx, "Confirm")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c, err := s.mutate(ctx, "confirm", sid, func(c *entity.Cart) error {
		_, err := c.Confirm(now)
		return err
	})
	if err != nil {
		return nil, err
	}

	return c.Confirmed, nil
}

func (s *Usecase) Confirmed(ctx context.Context) (*entity.Confirmed, error) {
	ctx, span := s.startSpan(ctx, "Confirmed")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c.Confirmed == nil {
		return nil, goerror.NewBusiness("No confirmed cart", goerror.CodeNotFound)
	}

	return c.Confirmed, nil
}

type MarkCheckedOutInput struct {
	SessionID string `validate:"required"`
	AddressID int64  `validate:"gt=0"`
}

// MarkCheckedOut closes the cart of a session whose shipping address was
// confirmed. Sessions without a stored cart are ignored.
func (s *Usecase) MarkCheckedOut(ctx context.Context, in MarkCheckedOutInput) error {
	ctx, span := s.startSpan(ctx, "MarkCheckedOut")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if _, err := s.repoStore.Get(ctx, in.SessionID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.InfoContext(ctx, "no cart for confirmed address", "session_id", in.SessionID)
			return nil
		}
		slog.ErrorContext(ctx, "failed to repo get cart", "session_id", in.SessionID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	if _, err := s.repoStore.Update(ctx, in.SessionID, func(c *entity.Cart) error {
		c.CheckOut(in.AddressID, now)
		return nil
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo mark cart checked out", "session_id", in.SessionID, "error", err)
		return goerror.NewServer(err)
	}

	s.countMutation(ctx, "checkout")
	return nil
}
