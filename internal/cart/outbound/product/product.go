package product

import (
	"context"

	"github.com/shandysiswandi/gomart/internal/catalog"
	"github.com/shandysiswandi/gomart/internal/cart/usecase"
)

// Catalog adapts the catalog module to the product lookup the cart needs.
type Catalog struct {
	finder catalog.Finder
}

func New(finder catalog.Finder) *Catalog {
	return &Catalog{finder: finder}
}

func (c *Catalog) FindProduct(ctx context.Context, id string) (*usecase.Product, error) {
	p, err := c.finder.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	return &usecase.Product{ID: p.ID, Title: p.Title, Price: p.Price}, nil
}
