package entity

import "time"

// AddressFormInput holds the raw strings typed into the shipping form.
type AddressFormInput struct {
	Name     string
	Lastname string
	Address  string
	Zipcode  string
	City     string
	Email    string
	Phone    string
}

// ValidatedAddress only comes out of a successful AddressValidator pass.
type ValidatedAddress struct {
	Name     string
	Lastname string
	Address  string
	Zipcode  float64
	City     string
	Email    string
	Phone    float64
}

// ShippingAddress is a ValidatedAddress stored for a cart session.
type ShippingAddress struct {
	ID        int64
	SessionID string
	ValidatedAddress
	CreatedAt time.Time
}

// FieldErrors maps a form field to its first violated rule message.
type FieldErrors map[string]string
