package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWith(lines ...Line) *Cart {
	c := New("sid")
	for _, l := range lines {
		_ = c.Add(l)
	}
	return c
}

func TestQuantityController_Decrement(t *testing.T) {
	t.Run("AboveOneLowersQuantity", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 3, Price: decimal.NewFromInt(10)})
		qc := NewQuantityController(c, "p1", 1)

		q, removed := qc.Decrement()
		assert.Equal(t, 2, q)
		assert.False(t, removed)
		require.NotNil(t, c.Line("p1"))
		assert.Equal(t, 2, c.Line("p1").Quantity)
	})

	t.Run("AtOneRemovesLine", func(t *testing.T) {
		c := cartWith(
			Line{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)},
			Line{ProductID: "p2", Quantity: 2, Price: decimal.NewFromInt(5)},
		)
		qc := NewQuantityController(c, "p1", 1)

		q, removed := qc.Decrement()
		assert.Equal(t, 0, q)
		assert.True(t, removed)
		assert.Nil(t, c.Line("p1"))
		assert.NotNil(t, c.Line("p2"))
		assert.Equal(t, 0, qc.Quantity())

		q, removed = qc.Decrement()
		assert.Equal(t, 0, q)
		assert.False(t, removed)
	})

	t.Run("PendingHasFloorOne", func(t *testing.T) {
		c := New("sid")
		qc := NewQuantityController(c, "p1", 2)

		q, removed := qc.Decrement()
		assert.Equal(t, 1, q)
		assert.False(t, removed)

		q, _ = qc.Decrement()
		assert.Equal(t, 1, q)
		assert.True(t, c.IsEmpty())
	})
}

func TestQuantityController_Increment(t *testing.T) {
	t.Run("WritesThroughToLine", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 4, Price: decimal.NewFromInt(10)})
		qc := NewQuantityController(c, "p1", 1)

		assert.Equal(t, 5, qc.Increment())
		assert.Equal(t, 5, c.Line("p1").Quantity)
		assert.Equal(t, 5, qc.Quantity())
	})

	t.Run("LineIsSourceOfTruth", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 4, Price: decimal.NewFromInt(10)})
		qc := NewQuantityController(c, "p1", 9)

		assert.Equal(t, 4, qc.Quantity())
		c.UpdateQuantity("p1", 7)
		assert.Equal(t, 7, qc.Quantity())
	})

	t.Run("WithoutLineMovesPending", func(t *testing.T) {
		c := New("sid")
		qc := NewQuantityController(c, "p1", 0)

		assert.Equal(t, 1, qc.Quantity())
		assert.Equal(t, 2, qc.Increment())
		assert.True(t, c.IsEmpty())
	})

	t.Run("AfterRemovalStartsFromZero", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)})
		qc := NewQuantityController(c, "p1", 5)

		qc.Decrement()
		assert.Equal(t, 1, qc.Increment())
	})
}

func TestQuantityController_TotalPrice(t *testing.T) {
	t.Run("UsesLinePrice", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 3, Price: decimal.RequireFromString("99.90")})
		qc := NewQuantityController(c, "p1", 1)

		assert.True(t, qc.TotalPrice().Equal(decimal.RequireFromString("299.70")))
	})

	t.Run("AbsentLineIsZero", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 3, Price: decimal.NewFromInt(10)})
		for _, q := range []int{1, 7, 1000} {
			qc := NewQuantityController(c, "missing", q)
			assert.True(t, qc.TotalPrice().IsZero())
		}
	})
}

func TestCart(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("AddAccumulatesAndKeepsPrice", func(t *testing.T) {
		c := New("sid")
		require.NoError(t, c.Add(Line{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)}))
		require.NoError(t, c.Add(Line{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(99)}))

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 3, c.Lines[0].Quantity)
		assert.True(t, c.Lines[0].Price.Equal(decimal.NewFromInt(10)))
		assert.ErrorIs(t, c.Add(Line{ProductID: "p2"}), ErrInvalidQuantity)
	})

	t.Run("UpdateQuantityBelowOneRemoves", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(10)})

		assert.False(t, c.UpdateQuantity("nope", 5))
		assert.True(t, c.UpdateQuantity("p1", 0))
		assert.True(t, c.IsEmpty())
		assert.False(t, c.Remove("p1"))
	})

	t.Run("TotalsAndConfirm", func(t *testing.T) {
		c := New("sid")
		_, err := c.Confirm(now)
		require.ErrorIs(t, err, ErrEmptyCart)

		_ = c.Add(Line{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(10)})
		_ = c.Add(Line{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("4.5")})
		assert.Equal(t, 3, c.ItemCount())
		assert.True(t, c.Total().Equal(decimal.RequireFromString("24.5")))

		cf, err := c.Confirm(now)
		require.NoError(t, err)
		c.Remove("p1")
		assert.Len(t, cf.Lines, 2)
		assert.Equal(t, 3, cf.ItemCount())
	})

	t.Run("CheckOutSnapshotsUnconfirmedCart", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)})
		c.CheckOut(42, now)

		assert.Equal(t, StatusCheckedOut, c.Status)
		require.NotNil(t, c.Confirmed)
		assert.Equal(t, int64(42), c.Confirmed.AddressID)
	})

	t.Run("CloneIsDeep", func(t *testing.T) {
		c := cartWith(Line{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(10)})
		_, _ = c.Confirm(now)

		cl := c.Clone()
		cl.Lines[0].Quantity = 9
		cl.Confirmed.Lines[0].Quantity = 9

		assert.Equal(t, 1, c.Lines[0].Quantity)
		assert.Equal(t, 1, c.Confirmed.Lines[0].Quantity)
	})
}
