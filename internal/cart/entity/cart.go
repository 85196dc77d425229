package entity

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusCheckedOut Status = "checked_out"
)

// Line is one product in a cart. Price is copied from the catalog when the
// line is created and never refreshed.
type Line struct {
	ProductID string
	Title     string
	Quantity  int
	Price     decimal.Decimal
	AddedAt   time.Time
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Confirmed is the snapshot taken when the shopper confirms the cart.
type Confirmed struct {
	Lines       []Line
	ConfirmedAt time.Time
	AddressID   int64
}

func (c Confirmed) Total() decimal.Decimal {
	return sumLines(c.Lines)
}

func (c Confirmed) ItemCount() int {
	return countLines(c.Lines)
}

// Cart is the session-owned line collection. Lines are unique by product id
// and every quantity stays at or above 1.
type Cart struct {
	SessionID string
	Lines     []Line
	Confirmed *Confirmed
	Status    Status
	UpdatedAt time.Time
}

func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Status: StatusOpen}
}

// Line returns the line for productID or nil.
func (c *Cart) Line(productID string) *Line {
	i := c.index(productID)
	if i < 0 {
		return nil
	}
	return &c.Lines[i]
}

// Add appends line or, when the product is already present, adds its
// quantity to the existing line and keeps the stored price.
func (c *Cart) Add(line Line) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	if cur := c.Line(line.ProductID); cur != nil {
		cur.Quantity += line.Quantity
		return nil
	}

	c.Lines = append(c.Lines, line)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity below 1
// removes the line. It reports whether the product had a line.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}

	if quantity < 1 {
		c.Lines = slices.Delete(c.Lines, i, i+1)
		return true
	}

	c.Lines[i].Quantity = quantity
	return true
}

// Remove deletes the line for productID and reports whether it existed.
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Lines = slices.Delete(c.Lines, i, i+1)
	return true
}

func (c *Cart) Total() decimal.Decimal {
	return sumLines(c.Lines)
}

func (c *Cart) ItemCount() int {
	return countLines(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Confirm snapshots the current lines.
func (c *Cart) Confirm(now time.Time) (*Confirmed, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	c.Confirmed = &Confirmed{Lines: slices.Clone(c.Lines), ConfirmedAt: now}
	return c.Confirmed, nil
}

// CheckOut closes the cart against a confirmed shipping address. A cart that
// was never confirmed is snapshotted first.
func (c *Cart) CheckOut(addressID int64, now time.Time) {
	if c.Confirmed == nil && !c.IsEmpty() {
		_, _ = c.Confirm(now)
	}
	if c.Confirmed != nil {
		c.Confirmed.AddressID = addressID
	}
	c.Status = StatusCheckedOut
}

func (c *Cart) Clone() *Cart {
	out := *c
	out.Lines = slices.Clone(c.Lines)
	if c.Confirmed != nil {
		cf := *c.Confirmed
		cf.Lines = slices.Clone(c.Confirmed.Lines)
		out.Confirmed = &cf
	}
	return &out
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool { return l.ProductID == productID })
}

func sumLines(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func countLines(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
