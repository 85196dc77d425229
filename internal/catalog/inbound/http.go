package inbound

import (
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/catalog/products", end.ListProducts)
	r.GET("/api/v1/catalog/products/:id", end.GetProduct)
}
