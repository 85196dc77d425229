package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasbin_Allow(t *testing.T) {
	a, err := NewCasbin(Config{
		Policies: []string{
			"anonymous, /api/v1/catalog/*, GET",
			"anonymous, /api/v1/cart/session, POST",
			"shopper, /api/v1/cart, *",
			"shopper, /api/v1/cart/items/:product_id/increment, POST",
		},
		Roles: []string{"shopper, anonymous"},
	})
	require.NoError(t, err)

	tests := []struct {
		role, route, method string
		want                bool
	}{
		{"anonymous", "/api/v1/catalog/products", "GET", true},
		{"anonymous", "/api/v1/cart/session", "POST", true},
		{"anonymous", "/api/v1/cart", "GET", false},
		{"shopper", "/api/v1/cart", "GET", true},
		{"shopper", "/api/v1/catalog/products/1", "GET", true},
		{"shopper", "/api/v1/cart/items/:product_id/increment", "POST", true},
		{"shopper", "/api/v1/cart/items/:product_id/decrement", "POST", false},
	}
	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.route, func(t *testing.T) {
			got, err := a.Allow(tt.role, tt.route, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCasbin_InvalidPolicy(t *testing.T) {
	_, err := NewCasbin(Config{Policies: []string{"anonymous, /x"}})
	assert.ErrorIs(t, err, ErrInvalidPolicy)

	_, err = NewCasbin(Config{Roles: []string{"a, b, c"}})
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}
