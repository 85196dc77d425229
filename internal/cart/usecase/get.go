package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

func (s *Usecase) Get(ctx context.Context) (*entity.Cart, error) {
	ctx, span := s.startSpan(ctx, "Get")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	return s.load(ctx, sid)
}

// Clear drops the session cart, including its confirmed snapshot.
func (s *Usecase) Clear(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Clear")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return err
	}

	if err := s.repoStore.Delete(ctx, sid); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete cart", "session_id", sid, "error", err)
		return goerror.NewServer(err)
	}

	s.countMutation(ctx, "clear")
	return nil
}
