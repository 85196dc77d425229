package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// GetAddress returns the last shipping address confirmed for the session.
func (s *Usecase) GetAddress(ctx context.Context) (*entity.ShippingAddress, error) {
	ctx, span := s.startSpan(ctx, "GetAddress")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	addr, err := s.repoDB.LatestAddress(ctx, sid)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("No shipping address", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest address", "session_id", sid, "error", err)
		return nil, goerror.NewServer(err)
	}

	return addr, nil
}
