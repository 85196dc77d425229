package entity

import "github.com/shopspring/decimal"

// QuantityController drives the quantity selector of one product.
//
// While the product has a cart line the line quantity is the only quantity:
// reads and writes go straight to the line. Without a line the controller
// keeps a pending quantity seeded from the initial value, which moves with
// Increment and Decrement (never below 1) and leaves the cart untouched.
// Once a decrement removes the line the controller reports 0.
type QuantityController struct {
	cart      *Cart
	productID string
	pending   int
	removed   bool
}

func NewQuantityController(cart *Cart, productID string, initialQuantity int) *QuantityController {
	return &QuantityController{
		cart:      cart,
		productID: productID,
		pending:   max(initialQuantity, 1),
	}
}

func (q *QuantityController) Quantity() int {
	if l := q.cart.Line(q.productID); l != nil {
		return l.Quantity
	}
	if q.removed {
		return 0
	}
	return q.pending
}

// Increment raises the quantity by one. There is no upper bound.
func (q *QuantityController) Increment() int {
	if l := q.cart.Line(q.productID); l != nil {
		q.cart.UpdateQuantity(q.productID, l.Quantity+1)
		return l.Quantity
	}

	if q.removed {
		q.removed = false
		q.pending = 0
	}
	q.pending++
	return q.pending
}

// Decrement lowers the quantity by one. A line at quantity 1 is removed from
// the cart and removed reports true.
func (q *QuantityController) Decrement() (quantity int, removed bool) {
	if l := q.cart.Line(q.productID); l != nil {
		if l.Quantity > 1 {
			q.cart.UpdateQuantity(q.productID, l.Quantity-1)
			return l.Quantity, false
		}

		q.cart.Remove(q.productID)
		q.removed = true
		return 0, true
	}

	if q.removed {
		return 0, false
	}
	if q.pending > 1 {
		q.pending--
	}
	return q.pending, false
}

// TotalPrice multiplies the line price by the current quantity. A product
// without a line is priced at zero.
func (q *QuantityController) TotalPrice() decimal.Decimal {
	price := decimal.Zero
	if l := q.cart.Line(q.productID); l != nil {
		price = l.Price
	}
	return price.Mul(decimal.NewFromInt(int64(q.Quantity())))
}
