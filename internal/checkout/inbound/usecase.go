package inbound

import (
	"context"

	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/checkout/usecase"
)

type uc interface {
	SubmitAddress(ctx context.Context, in usecase.SubmitAddressInput) (*entity.ShippingAddress, error)
	GetAddress(ctx context.Context) (*entity.ShippingAddress, error)
}
