package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gomart/internal/catalog/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

type GetProductInput struct {
	ID string `validate:"required,product_id"`
}

func (s *Usecase) GetProduct(ctx context.Context, in GetProductInput) (*ProductOutput, error) {
	ctx, span := s.startSpan(ctx, "GetProduct")
	defer span.End()

	in.ID = strings.TrimSpace(in.ID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	p, err := s.FindProduct(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	out := s.present(ctx, *p)
	return &out, nil
}

// FindProduct returns the raw catalog entry for id. Unknown ids yield a
// not found business error.
func (s *Usecase) FindProduct(ctx context.Context, id string) (*entity.Product, error) {
	items, err := s.products(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load catalog products", "product_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}

	return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
}
