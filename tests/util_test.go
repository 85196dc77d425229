package tests

import (
	"net/http"
	"testing"
)

type productData struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	PriceLabel string `json:"price_label"`
	Image      string `json:"image"`
}

type cartData struct {
	Status string `json:"status"`
	Lines  []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Subtotal  string `json:"subtotal"`
	} `json:"lines"`
	ItemCount int    `json:"item_count"`
	Total     string `json:"total"`
}

func newSession(t *testing.T) string {
	t.Helper()

	status, body := doJSON(t, http.MethodPost, "/api/v1/cart/session", nil, "")
	if status != http.StatusCreated {
		errEnv := decodeError(t, body)
		t.Fatalf("create session failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Token string `json:"token"`
	}
	decodeSuccess(t, body, &data)
	if data.Token == "" {
		t.Fatal("missing session token")
	}

	return data.Token
}

func firstProduct(t *testing.T) productData {
	t.Helper()

	status, body := doJSON(t, http.MethodGet, "/api/v1/catalog/products", nil, "")
	if status != http.StatusOK {
		t.Fatalf("list products failed: status=%d", status)
	}

	var data struct {
		Products []productData `json:"products"`
	}
	decodeSuccess(t, body, &data)
	if len(data.Products) == 0 {
		t.Fatal("catalog is empty")
	}

	return data.Products[0]
}

func addToCart(t *testing.T, token, productID string, quantity int) cartData {
	t.Helper()

	payload := map[string]any{"product_id": productID, "quantity": quantity}
	status, body := doJSON(t, http.MethodPost, "/api/v1/cart/items", payload, token)
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("add to cart failed: status=%d message=%q", status, errEnv.Message)
	}

	var data cartData
	env := decodeSuccess(t, body, &data)
	if env.Message != "Added to cart" {
		t.Fatalf("unexpected add message %q", env.Message)
	}

	return data
}
