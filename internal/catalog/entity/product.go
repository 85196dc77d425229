package entity

import "github.com/shopspring/decimal"

// Product is immutable reference data. Image is either an absolute URL or an
// object key inside the catalog image bucket.
type Product struct {
	ID          string
	Title       string
	Description string
	Price       decimal.Decimal
	Image       string
	Position    int
}
