package inbound

import (
	"github.com/shandysiswandi/gomart/internal/checkout/entity"
	"github.com/shandysiswandi/gomart/internal/checkout/usecase"
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

const headerIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// SubmitAddress validates the shipping form and stores it for the session.
// @Summary Submit shipping address
// @Description Validates every field at once. Field errors are returned under "error" keyed by field name.
// @Tags Checkout
// @Security CartSession
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Rejects replays of the same submission"
// @Param request body AddressRequest true "Raw form values"
// @Success 200 {object} router.successResponse{data=AddressResponse} "Shipping address confirmed"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Cart session required"
// @Failure 409 {object} router.errorResponse "Duplicate submission"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/checkout/address [post]
func (h *HTTPEndpoint) SubmitAddress(r *router.Request) (any, error) {
	var req AddressRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	addr, err := h.uc.SubmitAddress(r.Context(), usecase.SubmitAddressInput{
		Form: entity.AddressFormInput{
			Name:     req.Name,
			Lastname: req.Lastname,
			Address:  req.Address,
			Zipcode:  req.Zipcode,
			City:     req.City,
			Email:    req.Email,
			Phone:    req.Phone,
		},
		IdempotencyKey: r.Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return nil, err
	}

	return SubmitAddressResponse{AddressResponse: toAddressResponse(addr)}, nil
}

// GetAddress returns the last confirmed shipping address.
// @Summary Get shipping address
// @Tags Checkout
// @Security CartSession
// @Produce json
// @Success 200 {object} router.successResponse{data=AddressResponse} "Shipping address"
// @Failure 401 {object} router.errorResponse "Cart session required"
// @Failure 404 {object} router.errorResponse "No shipping address"
// @Router /api/v1/checkout/address [get]
func (h *HTTPEndpoint) GetAddress(r *router.Request) (any, error) {
	addr, err := h.uc.GetAddress(r.Context())
	if err != nil {
		return nil, err
	}

	return toAddressResponse(addr), nil
}

func toAddressResponse(a *entity.ShippingAddress) AddressResponse {
	return AddressResponse{
		ID:        formatID(a.ID),
		Valid:     true,
		Name:      a.Name,
		Lastname:  a.Lastname,
		Address:   a.Address,
		Zipcode:   a.Zipcode,
		City:      a.City,
		Email:     a.Email,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
	}
}
