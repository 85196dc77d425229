package tests

import (
	"net/http"
	"testing"
)

func TestCart(t *testing.T) {
	t.Run("RequiresSession", func(t *testing.T) {
		// Act
		status, _ := doJSON(t, http.MethodGet, "/api/v1/cart", nil, "")

		// Assert
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("AddAccumulates", func(t *testing.T) {
		// Arrange
		token := newSession(t)
		p := firstProduct(t)

		// Act
		addToCart(t, token, p.ID, 1)
		data := addToCart(t, token, p.ID, 2)

		// Assert
		if len(data.Lines) != 1 || data.Lines[0].Quantity != 3 || data.ItemCount != 3 {
			t.Fatalf("expected one line with quantity 3, got %+v", data)
		}
	})

	t.Run("DecrementRemovesAtOne", func(t *testing.T) {
		// Arrange
		token := newSession(t)
		p := firstProduct(t)
		addToCart(t, token, p.ID, 1)

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/cart/items/"+p.ID+"/decrement", nil, token)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		var q struct {
			Quantity int  `json:"quantity"`
			Removed  bool `json:"removed"`
		}
		decodeSuccess(t, body, &q)
		if !q.Removed || q.Quantity != 0 {
			t.Fatalf("expected removal, got %+v", q)
		}

		status, body = doJSON(t, http.MethodGet, "/api/v1/cart", nil, token)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		var c cartData
		decodeSuccess(t, body, &c)
		if len(c.Lines) != 0 {
			t.Fatalf("expected empty cart, got %+v", c)
		}
	})

	t.Run("ConfirmEmpty", func(t *testing.T) {
		// Arrange
		token := newSession(t)

		// Act
		status, body := doJSON(t, http.MethodPost, "/api/v1/cart/confirm", nil, token)

		// Assert
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", status)
		}
		if msg := decodeError(t, body).Message; msg != "Cart is empty" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("ConfirmSnapshot", func(t *testing.T) {
		// Arrange
		token := newSession(t)
		p := firstProduct(t)
		added := addToCart(t, token, p.ID, 2)

		// Act
		status, _ := doJSON(t, http.MethodPost, "/api/v1/cart/confirm", nil, token)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		status, body := doJSON(t, http.MethodGet, "/api/v1/cart/confirmed", nil, token)

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		var snap struct {
			Total string `json:"total"`
		}
		decodeSuccess(t, body, &snap)
		if snap.Total != added.Total {
			t.Fatalf("expected total %s, got %s", added.Total, snap.Total)
		}
	})
}
