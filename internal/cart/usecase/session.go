package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
)

func (s *Usecase) IssueSession(ctx context.Context) (*session.Token, error) {
	ctx, span := s.startSpan(ctx, "IssueSession")
	defer span.End()

	tok, err := s.session.Issue(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue cart session", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &tok, nil
}
