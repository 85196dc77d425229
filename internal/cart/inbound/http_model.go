package inbound

import (
	"net/http"
	"time"
)

type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (SessionResponse) StatusCode() int {
	return http.StatusCreated
}

func (SessionResponse) Message() string {
	return "Cart session created"
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type LineResponse struct {
	ProductID     string `json:"product_id"`
	Title         string `json:"title"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
	Subtotal      string `json:"subtotal"`
	SubtotalLabel string `json:"subtotal_label"`
}

type CartResponse struct {
	Status     string         `json:"status"`
	Lines      []LineResponse `json:"lines"`
	ItemCount  int            `json:"item_count"`
	Total      string         `json:"total"`
	TotalLabel string         `json:"total_label"`
}

// AddItemResponse is the cart after an add; its message drives the toast.
type AddItemResponse struct {
	CartResponse
}

func (AddItemResponse) Message() string {
	return "Added to cart"
}

type QuantityResponse struct {
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	Removed         bool   `json:"removed"`
	InCart          bool   `json:"in_cart"`
	TotalPrice      string `json:"total_price"`
	TotalPriceLabel string `json:"total_price_label"`
}

type ConfirmedResponse struct {
	Lines       []LineResponse `json:"lines"`
	ItemCount   int            `json:"item_count"`
	Total       string         `json:"total"`
	TotalLabel  string         `json:"total_label"`
	ConfirmedAt time.Time      `json:"confirmed_at"`
	AddressID   string         `json:"address_id,omitempty"`
}
