package tests

import (
	"net/http"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Run("ListIsPublic", func(t *testing.T) {
		// Act
		p := firstProduct(t)

		// Assert
		if p.ID == "" || p.Title == "" || p.PriceLabel == "" {
			t.Fatalf("expected id, title and price label, got %+v", p)
		}
	})

	t.Run("Detail", func(t *testing.T) {
		// Arrange
		p := firstProduct(t)

		// Act
		status, body := doJSON(t, http.MethodGet, "/api/v1/catalog/products/"+p.ID, nil, "")

		// Assert
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		var got productData
		decodeSuccess(t, body, &got)
		if got.ID != p.ID || got.Price != p.Price {
			t.Fatalf("detail mismatch: %+v vs %+v", got, p)
		}
	})

	t.Run("DetailNotFound", func(t *testing.T) {
		// Act
		status, body := doJSON(t, http.MethodGet, "/api/v1/catalog/products/does-not-exist", nil, "")

		// Assert
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		if msg := decodeError(t, body).Message; msg != "Product not found" {
			t.Fatalf("unexpected message %q", msg)
		}
	})
}
