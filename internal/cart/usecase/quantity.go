package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
)

// ItemInput addresses one product of the session cart. Quantity is the
// selector's local value, used only while the product has no cart line.
type ItemInput struct {
	ProductID string `validate:"required,product_id"`
	Quantity  int    `validate:"gte=0"`
}

type UpdateQuantityInput struct {
	ProductID string `validate:"required,product_id"`
	Quantity  int
}

type QuantityOutput struct {
	ProductID  string
	Quantity   int
	Removed    bool
	InCart     bool
	TotalPrice decimal.Decimal
}

func (s *Usecase) Increment(ctx context.Context, in ItemInput) (*QuantityOutput, error) {
	ctx, span := s.startSpan(ctx, "Increment")
	defer span.End()

	return s.step(ctx, "increment", in, func(qc *entity.QuantityController) (int, bool) {
		return qc.Increment(), false
	})
}

func (s *Usecase) Decrement(ctx context.Context, in ItemInput) (*QuantityOutput, error) {
	ctx, span := s.startSpan(ctx, "Decrement")
	defer span.End()

	return s.step(ctx, "decrement", in, func(qc *entity.QuantityController) (int, bool) {
		return qc.Decrement()
	})
}

func (s *Usecase) step(
	ctx context.Context,
	op string,
	in ItemInput,
	move func(*entity.QuantityController) (int, bool),
) (*QuantityOutput, error) {
	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	in.ProductID = strings.TrimSpace(in.ProductID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}

	// Without a line only the selector value moves, so the cart is not written.
	if c.Line(in.ProductID) == nil {
		if c.Status == entity.StatusCheckedOut {
			return nil, s.mapError(ctx, op, sid, errCheckedOut)
		}
		return stepOutput(c, in, move), nil
	}

	var out *QuantityOutput
	if _, err := s.mutate(ctx, op, sid, func(c *entity.Cart) error {
		out = stepOutput(c, in, move)
		return nil
	}); err != nil {
		return nil, err
	}

	return out, nil
}

func stepOutput(c *entity.Cart, in ItemInput, move func(*entity.QuantityController) (int, bool)) *QuantityOutput {
	qc := entity.NewQuantityController(c, in.ProductID, in.Quantity)
	q, removed := move(qc)
	return &QuantityOutput{
		ProductID:  in.ProductID,
		Quantity:   q,
		Removed:    removed,
		InCart:     c.Line(in.ProductID) != nil,
		TotalPrice: qc.TotalPrice(),
	}
}

// UpdateQuantity sets the line quantity. Values below 1 remove the line and
// unknown products are left alone.
func (s *Usecase) UpdateQuantity(ctx context.Context, in UpdateQuantityInput) (*entity.Cart, error) {
	ctx, span := s.startSpan(ctx, "UpdateQuantity")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	in.ProductID = strings.TrimSpace(in.ProductID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.mutate(ctx, "update_quantity", sid, func(c *entity.Cart) error {
		c.UpdateQuantity(in.ProductID, in.Quantity)
		return nil
	})
}

// Remove deletes the product line. Unknown products are a no-op.
func (s *Usecase) Remove(ctx context.Context, in ItemInput) (*entity.Cart, error) {
	ctx, span := s.startSpan(ctx, "Remove")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	in.ProductID = strings.TrimSpace(in.ProductID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.mutate(ctx, "remove", sid, func(c *entity.Cart) error {
		c.Remove(in.ProductID)
		return nil
	})
}

// TotalPrice prices the selector without touching the cart.
func (s *Usecase) TotalPrice(ctx context.Context, in ItemInput) (*QuantityOutput, error) {
	ctx, span := s.startSpan(ctx, "TotalPrice")
	defer span.End()

	sid, err := s.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	in.ProductID = strings.TrimSpace(in.ProductID)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	c, err := s.load(ctx, sid)
	if err != nil {
		return nil, err
	}

	qc := entity.NewQuantityController(c, in.ProductID, in.Quantity)
	return &QuantityOutput{
		ProductID:  in.ProductID,
		Quantity:   qc.Quantity(),
		InCart:     c.Line(in.ProductID) != nil,
		TotalPrice: qc.TotalPrice(),
	}, nil
}

func (s *Usecase) FormatPrice(d decimal.Decimal) string {
	return s.price.Format(d)
}
