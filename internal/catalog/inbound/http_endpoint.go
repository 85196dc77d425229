package inbound

import (
	"github.com/samber/lo"

	"github.com/shandysiswandi/gomart/internal/catalog/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ListProducts returns the catalog in display order.
// @Summary List products
// @Description Returns every catalog product with a resolved image URL and a price label.
// @Tags Catalog
// @Produce json
// @Success 200 {object} router.successResponse{data=ListProductsResponse} "Product list"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/catalog/products [get]
func (h *HTTPEndpoint) ListProducts(r *router.Request) (any, error) {
	items, err := h.uc.ListProducts(r.Context())
	if err != nil {
		return nil, err
	}

	return ListProductsResponse{
		Products: lo.Map(items, func(p usecase.ProductOutput, _ int) ProductResponse {
			return toProductResponse(p)
		}),
	}, nil
}

// GetProduct returns a single product.
// @Summary Product detail
// @Tags Catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} router.successResponse{data=ProductResponse} "Product"
// @Failure 404 {object} router.errorResponse "Product not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/catalog/products/{id} [get]
func (h *HTTPEndpoint) GetProduct(r *router.Request) (any, error) {
	p, err := h.uc.GetProduct(r.Context(), usecase.GetProductInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return toProductResponse(*p), nil
}

func toProductResponse(p usecase.ProductOutput) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		PriceLabel:  p.PriceLabel,
		Image:       p.ImageURL,
	}
}
