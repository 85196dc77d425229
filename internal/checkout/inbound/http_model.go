package inbound

import (
	"strconv"
	"time"
)

// AddressRequest carries the form values exactly as typed.
type AddressRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Address  string `json:"address"`
	Zipcode  string `json:"zipcode"`
	City     string `json:"city"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type AddressResponse struct {
	ID        string    `json:"id"`
	Valid     bool      `json:"valid"`
	Name      string    `json:"name"`
	Lastname  string    `json:"lastname"`
	Address   string    `json:"address"`
	Zipcode   float64   `json:"zipcode"`
	City      string    `json:"city"`
	Email     string    `json:"email"`
	Phone     float64   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitAddressResponse is returned once the form passed validation.
type SubmitAddressResponse struct {
	AddressResponse
}

func (SubmitAddressResponse) Message() string {
	return "Shipping address confirmed"
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
