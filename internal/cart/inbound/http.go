package inbound

import (
	"github.com/shandysiswandi/gomart/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/cart/session", end.IssueSession)

	r.GET("/api/v1/cart", end.Get)
	r.DELETE("/api/v1/cart", end.Clear)

	r.POST("/api/v1/cart/items", end.Add)
	r.PUT("/api/v1/cart/items/:product_id", end.UpdateQuantity)
	r.DELETE("/api/v1/cart/items/:product_id", end.Remove)
	r.POST("/api/v1/cart/items/:product_id/increment", end.Increment)
	r.POST("/api/v1/cart/items/:product_id/decrement", end.Decrement)
	r.GET("/api/v1/cart/items/:product_id/total", end.TotalPrice)

	r.POST("/api/v1/cart/confirm", end.Confirm)
	r.GET("/api/v1/cart/confirmed", end.Confirmed)
}
