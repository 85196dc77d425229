package inbound

type ProductResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	PriceLabel  string `json:"price_label"`
	Image       string `json:"image"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

func (r ListProductsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Products)}
}
