package inbound

import (
	"context"

	"github.com/shandysiswandi/gomart/internal/catalog/usecase"
)

type uc interface {
	ListProducts(ctx context.Context) ([]usecase.ProductOutput, error)
	GetProduct(ctx context.Context, in usecase.GetProductInput) (*usecase.ProductOutput, error)
}
