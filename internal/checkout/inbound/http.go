package inbound

import (
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/checkout/address", end.SubmitAddress)
	r.GET("/api/v1/checkout/address", end.GetAddress)
}
