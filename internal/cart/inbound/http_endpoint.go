package inbound

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
	"github.com/shandysiswandi/gomart/internal/cart/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// IssueSession starts an anonymous cart session.
// @Summary Create cart session
// @Description Issues a signed cart session token. Send it back in the X-Cart-Session header.
// @Tags Cart
// @Produce json
// @Success 201 {object} router.successResponse{data=SessionResponse} "Cart session created"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cart/session [post]
func (h *HTTPEndpoint) IssueSession(r *router.Request) (any, error) {
	tok, err := h.uc.IssueSession(r.Context())
	if err != nil {
		return nil, err
	}

	return SessionResponse{Token: tok.Value, ExpiresAt: tok.ExpiresAt}, nil
}

// Get returns the session cart.
// @Summary Get cart
// @Tags Cart
// @Security CartSession
// @Produce json
// @Success 200 {object} router.successResponse{data=CartResponse} "Cart"
// @Failure 401 {object} router.errorResponse "Cart session required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cart [get]
func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	c, err := h.uc.Get(r.Context())
	if err != nil {
		return nil, err
	}

	return h.toCartResponse(c), nil
}

// Clear drops the session cart.
// @Summary Clear cart
// @Tags Cart
// @Security CartSession
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Cart session required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/cart [delete]
func (h *HTTPEndpoint) Clear(r *router.Request) (any, error) {
	return nil, h.uc.Clear(r.Context())
}

// Add puts a product in the cart or raises the quantity of its line.
// @Summary Add to cart
// @Tags Cart
// @Security CartSession
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Product and quantity"
// @Success 200 {object} router.successResponse{data=CartResponse} "Added to cart"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Product not found"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/cart/items [post]
func (h *HTTPEndpoint) Add(r *router.Request) (any, error) {
	var req AddItemRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.Add(r.Context(), usecase.AddInput{ProductID: req.ProductID, Quantity: req.Quantity})
	if err != nil {
		return nil, err
	}

	return AddItemResponse{CartResponse: h.toCartResponse(c)}, nil
}

// Increment raises the quantity of a product by one.
// @Summary Increment quantity
// @Tags Cart
// @Security CartSession
// @Produce json
// @Param product_id path string true "Product ID"
// @Param quantity query int false "Selector quantity used while the product is not in the cart"
// @Success 200 {object} router.successResponse{data=QuantityResponse} "Quantity"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/cart/items/{product_id}/increment [post]
func (h *HTTPEndpoint) Increment(r *router.Request) (any, error) {
	in, err := itemInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Increment(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return h.toQuantityResponse(out), nil
}

// Decrement lowers the quantity of a product by one, removing the line at 1.
// @Summary Decrement quantity
// @Tags Cart
// @Security CartSession
// @Produce json
// @Param product_id path string true "Product ID"
// @Param quantity query int false "Selector quantity used while the product is not in the cart"
// @Success 200 {object} router.successResponse{data=QuantityResponse} "Quantity"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/cart/items/{product_id}/decrement [post]
func (h *HTTPEndpoint) Decrement(r *router.Request) (any, error) {
	in, err := itemInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Decrement(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return h.toQuantityResponse(out), nil
}

// UpdateQuantity sets the quantity of a line; below 1 removes it.
// @Summary Update quantity
// @Tags Cart
// @Security CartSession
// @Accept json
// @Produce json
// @Param product_id path string true "Product ID"
// @Param request body UpdateQuantityRequest true "New quantity"
// @Success 200 {object} router.successResponse{data=CartResponse} "Cart"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Router /api/v1/cart/items/{product_id} [put]
func (h *HTTPEndpoint) UpdateQuantity(r *router.Request) (any, error) {
	var req UpdateQuantityRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.UpdateQuantity(r.Context(), usecase.UpdateQuantityInput{
		ProductID: r.GetParam("product_id"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	return h.toCartResponse(c), nil
}

// Remove deletes a line from the cart.
// @Summary Remove from cart
// @Tags Cart
// @Security CartSession
// @Produce json
// @Param product_id path string true "Product ID"
// @Success 200 {object} router.successResponse{data=CartResponse} "Cart"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Router /api/v1/cart/items/{product_id} [delete]
func (h *HTTPEndpoint) Remove(r *router.Request) (any, error) {
	c, err := h.uc.Remove(r.Context(), usecase.ItemInput{ProductID: r.GetParam("product_id")})
	if err != nil {
		return nil, err
	}

	return h.toCartResponse(c), nil
}

// TotalPrice prices the quantity selector of a product.
// @Summary Line total
// @Tags Cart
// @Security CartSession
// @Produce json
// @Param product_id path string true "Product ID"
// @Param quantity query int false "Selector quantity used while the product is not in the cart"
// @Success 200 {object} router.successResponse{data=QuantityResponse} "Quantity and total"
// @Failure 400 {object} router.errorResponse "Invalid query quantity"
// @Router /api/v1/cart/items/{product_id}/total [get]
func (h *HTTPEndpoint) TotalPrice(r *router.Request) (any, error) {
	in, err := itemInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.TotalPrice(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return h.toQuantityResponse(out), nil
}

// Confirm snapshots the cart as the confirmed cart.
// @Summary Confirm cart
// @Tags Cart
// @Security CartSession
// @Produce json
// @Success 200 {object} router.successResponse{data=ConfirmedResponse} "Confirmed cart"
// @Failure 409 {object} router.errorResponse "Cart already checked out"
// @Failure 422 {object} router.errorResponse "Cart is empty"
// @Router /api/v1/cart/confirm [post]
func (h *HTTPEndpoint) Confirm(r *router.Request) (any, error) {
	cf, err := h.uc.Confirm(r.Context())
	if err != nil {
		return nil, err
	}

	return h.toConfirmedResponse(cf), nil
}

// Confirmed returns the confirmed cart snapshot.
// @Summary Confirmed cart
// @Tags Cart
// @Security CartSession
// @Produce json
// @Success 200 {object} router.successResponse{data=ConfirmedResponse} "Confirmed cart"
// @Failure 404 {object} router.errorResponse "No confirmed cart"
// @Router /api/v1/cart/confirmed [get]
func (h *HTTPEndpoint) Confirmed(r *router.Request) (any, error) {
	cf, err := h.uc.Confirmed(r.Context())
	if err != nil {
		return nil, err
	}

	return h.toConfirmedResponse(cf), nil
}

func itemInput(r *router.Request) (usecase.ItemInput, error) {
	q, err := r.GetQueryInt("quantity", 1)
	if err != nil {
		return usecase.ItemInput{}, err
	}

	return usecase.ItemInput{ProductID: r.GetParam("product_id"), Quantity: q}, nil
}

func (h *HTTPEndpoint) toLines(lines []entity.Line) []LineResponse {
	return lo.Map(lines, func(l entity.Line, _ int) LineResponse {
		return LineResponse{
			ProductID:     l.ProductID,
			Title:         l.Title,
			Quantity:      l.Quantity,
			Price:         l.Price.StringFixed(2),
			Subtotal:      l.Subtotal().StringFixed(2),
			SubtotalLabel: h.uc.FormatPrice(l.Subtotal()),
		}
	})
}

func (h *HTTPEndpoint) toCartResponse(c *entity.Cart) CartResponse {
	return CartResponse{
		Status:     string(c.Status),
		Lines:      h.toLines(c.Lines),
		ItemCount:  c.ItemCount(),
		Total:      c.Total().StringFixed(2),
		TotalLabel: h.uc.FormatPrice(c.Total()),
	}
}

func (h *HTTPEndpoint) toQuantityResponse(out *usecase.QuantityOutput) QuantityResponse {
	return QuantityResponse{
		ProductID:       out.ProductID,
		Quantity:        out.Quantity,
		Removed:         out.Removed,
		InCart:          out.InCart,
		TotalPrice:      out.TotalPrice.StringFixed(2),
		TotalPriceLabel: h.uc.FormatPrice(out.TotalPrice),
	}
}

func (h *HTTPEndpoint) toConfirmedResponse(cf *entity.Confirmed) ConfirmedResponse {
	resp := ConfirmedResponse{
		Lines:       h.toLines(cf.Lines),
		ItemCount:   cf.ItemCount(),
		Total:       cf.Total().StringFixed(2),
		TotalLabel:  h.uc.FormatPrice(cf.Total()),
		ConfirmedAt: cf.ConfirmedAt,
	}
	if cf.AddressID > 0 {
		resp.AddressID = strconv.FormatInt(cf.AddressID, 10)
	}
	return resp
}
