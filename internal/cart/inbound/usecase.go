package inbound

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/cart/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
)

type ucConsumer interface {
	MarkCheckedOut(ctx context.Context, in usecase.MarkCheckedOutInput) error
}

type uc interface {
	IssueSession(ctx context.Context) (*session.Token, error)
	Get(ctx context.Context) (*entity.Cart, error)
	Clear(ctx context.Context) error
	Add(ctx context.Context, in usecase.AddInput) (*entity.Cart, error)
	Increment(ctx context.Context, in usecase.ItemInput) (*usecase.QuantityOutput, error)
	Decrement(ctx context.Context, in usecase.ItemInput) (*usecase.QuantityOutput, error)
	UpdateQuantity(ctx context.Context, in usecase.UpdateQuantityInput) (*entity.Cart, error)
	Remove(ctx context.Context, in usecase.ItemInput) (*entity.Cart, error)
	TotalPrice(ctx context.Context, in usecase.ItemInput) (*usecase.QuantityOutput, error)
	Confirm(ctx context.Context) (*entity.Confirmed, error)
	Confirmed(ctx context.Context) (*entity.Confirmed, error)
	FormatPrice(d decimal.Decimal) string
}
