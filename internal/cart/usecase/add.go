package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

type AddInput struct {
	ProductID string `validate:"required,product_id"`
	Quantity  int    `validate:"gte=1,lte=999"`
}

func (s *Usecase) Add(ctx context.Context, in AddInput) (*entity.Cart, error) {
	ctx, span := s.startSpan(ctx, "Add")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	in.ProductID = strings.TrimSpace(in.ProductID)
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, err := s.repoCatalog.FindProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c, err := s.mutate(ctx, "add", sid, func(c *entity.Cart) error {
		return c.Add(entity.Line{
			ProductID: p.ID,
			Title:     p.Title,
			Quantity:  in.Quantity,
			Price:     p.Price,
			AddedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.repoMessaging.PublishItemAdded(ctx, ItemAddedEvent{
		SessionID: sid,
		ProductID: p.ID,
		Quantity:  in.Quantity,
		Price:     p.Price,
		AddedAt:   now.Unix(),
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish cart item added", "session_id", sid, "product_id", p.ID, "error", err)
	}

	return c, nil
}
