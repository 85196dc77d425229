package event

const CartItemAddedTopic string = "cart.item_added"

// CartItemAddedMessage is published after a product is added to a cart.
type CartItemAddedMessage struct {
	SessionID string `json:"session_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	AddedAt   int64  `json:"added_at"`
}
